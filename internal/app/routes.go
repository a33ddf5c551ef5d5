package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Inline rendering
	r.HandleFunc("/api/heatmap", deps.HeatmapHandler.Render).Methods("POST")

	// Datasets
	r.HandleFunc("/api/dataset", deps.DatasetHandler.CreateDataset).Methods("POST")
	r.HandleFunc("/api/dataset", deps.DatasetHandler.ListDatasets).Methods("GET")
	r.HandleFunc("/api/dataset/{uid}", deps.DatasetHandler.GetDataset).Methods("GET")
	r.HandleFunc("/api/dataset/{uid}", deps.DatasetHandler.DeleteDataset).Methods("DELETE")
	r.HandleFunc("/api/dataset/{uid}/events", deps.DatasetHandler.ReplaceEventDates).Methods("PUT")
	r.HandleFunc("/api/dataset/{uid}/heatmap", deps.DatasetHandler.RenderHeatmap).Queries("year", "{year}").Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GcalHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/dataset/{uid}/events/import-from-google", deps.ImportHandler.ImportEventDates).
		Queries("calendarId", "{calendarId}", "year", "{year}").Methods("POST")
}
