package gcal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Q07K/event-calplot/internal/rest"
	"github.com/Q07K/event-calplot/pkg/dataset"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type importResult struct {
	Imported int `json:"imported"`
}

// ImportHandler copies a Google Calendar's event dates onto a stored dataset,
// replacing its previous event dates.
type ImportHandler struct {
	gcalService    Service
	datasetService dataset.Service
}

func NewImportHandler(gcalService Service, datasetService dataset.Service) *ImportHandler {
	return &ImportHandler{gcalService: gcalService, datasetService: datasetService}
}

func (h *ImportHandler) ImportEventDates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	calendarId := r.URL.Query().Get("calendarId")
	if calendarId == "" {
		writeError(w, http.StatusBadRequest, "Missing calendarId", "calendarId query parameter is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", "year must be an integer")
		return
	}

	dates, err := h.gcalService.ImportEventDates(r.Context(), calendarId, year)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		log.Errorf("failed to import event dates from Google: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.datasetService.ReplaceEventDates(r.Context(), uid, dates, "google"); err != nil {
		if errors.Is(err, dataset.ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "Dataset not found", uid)
			return
		}
		log.Errorf("failed to store imported event dates: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(importResult{Imported: len(dates)}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
