package dataset

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Q07K/event-calplot/internal/config"
	"github.com/Q07K/event-calplot/internal/rest"
	"github.com/Q07K/event-calplot/pkg/grid"
	"github.com/Q07K/event-calplot/pkg/heatmap"
	"github.com/Q07K/event-calplot/pkg/locale"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CreateDatasetRequest struct {
	Name       string           `json:"name"`
	DateCol    string           `json:"dateCol"`
	ValueCol   string           `json:"valueCol"`
	Data       []map[string]any `json:"data"`
	EventDates []string         `json:"eventDates,omitempty"`
}

type DatasetDTO struct {
	Uid          string   `json:"uid"`
	Name         string   `json:"name"`
	CreatedAt    string   `json:"createdAt"`
	Observations int      `json:"observations"`
	EventDates   []string `json:"eventDates"`
	Years        []int    `json:"years"`
}

type EventDatesRequest struct {
	EventDates []string `json:"eventDates"`
}

type Handler struct {
	service  Service
	defaults config.Heatmap
}

func NewHandler(service Service, defaults config.Heatmap) *Handler {
	return &Handler{service: service, defaults: defaults}
}

// CreateDataset stores a new observation series.
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if request.Name == "" || request.DateCol == "" || request.ValueCol == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields", "name, dateCol and valueCol are required")
		return
	}

	observations, err := grid.FromTable(request.Data, request.DateCol, request.ValueCol)
	if err != nil {
		var invalidDate *grid.InvalidDateError
		if errors.As(err, &invalidDate) {
			writeError(w, http.StatusBadRequest, "Invalid date in data", invalidDate.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid data", err.Error())
		return
	}

	eventDates, err := parseEventDates(request.EventDates)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event date", err.Error())
		return
	}

	dataset, err := h.service.Create(r.Context(), request.Name, observations, eventDates)
	if err != nil {
		log.Errorf("failed to create dataset: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(dataset)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	datasets, err := h.service.List(r.Context())
	if err != nil {
		log.Errorf("failed to list datasets: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]DatasetDTO, 0, len(datasets))
	for _, dataset := range datasets {
		dtos = append(dtos, toDTO(dataset))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	dataset, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "Dataset not found", uid)
			return
		}
		log.Errorf("failed to get dataset %s: %v", uid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(*dataset)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]

	if err := h.service.Delete(r.Context(), uid); err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "Dataset not found", uid)
			return
		}
		log.Errorf("failed to delete dataset %s: %v", uid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceEventDates swaps the dataset's highlighted dates.
func (h *Handler) ReplaceEventDates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	var request EventDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	dates, err := parseEventDates(request.EventDates)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event date", err.Error())
		return
	}

	if err := h.service.ReplaceEventDates(r.Context(), uid, dates, "api"); err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "Dataset not found", uid)
			return
		}
		log.Errorf("failed to replace event dates for %s: %v", uid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenderHeatmap renders one year of a stored dataset as a figure.
func (h *Handler) RenderHeatmap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	uid := mux.Vars(r)["uid"]

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", "year must be an integer")
		return
	}

	dataset, err := h.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrDatasetNotFound) {
			writeError(w, http.StatusNotFound, "Dataset not found", uid)
			return
		}
		log.Errorf("failed to get dataset %s: %v", uid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	params := h.paramsFromQuery(r, year)
	if len(dataset.EventDates) > 0 && r.URL.Query().Get("events") != "false" {
		params.EventDates = dataset.EventDates
	}

	fig, err := heatmap.Create(dataset.Observations, params)
	if err != nil {
		writeRenderError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(fig); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) paramsFromQuery(r *http.Request, year int) heatmap.Params {
	query := r.URL.Query()
	params := heatmap.Params{
		Year:          year,
		Language:      h.defaults.Language,
		MinColor:      h.defaults.MinColor,
		MaxColor:      h.defaults.MaxColor,
		LineColor:     h.defaults.LineColor,
		LineWidth:     h.defaults.LineWidth,
		EventColor:    h.defaults.EventColor,
		HoverTemplate: query.Get("hoverTemplate"),
	}
	if language := query.Get("language"); language != "" {
		params.Language = language
	}
	if color := query.Get("minColor"); color != "" {
		params.MinColor = color
	}
	if color := query.Get("maxColor"); color != "" {
		params.MaxColor = color
	}
	if color := query.Get("lineColor"); color != "" {
		params.LineColor = color
	}
	if color := query.Get("eventColor"); color != "" {
		params.EventColor = color
	}
	if width := query.Get("lineWidth"); width != "" {
		if parsed, err := strconv.ParseFloat(width, 64); err == nil {
			params.LineWidth = parsed
		}
	}
	return params
}

func toDTO(dataset Dataset) DatasetDTO {
	eventDates := make([]string, 0, len(dataset.EventDates))
	for _, date := range dataset.EventDates {
		eventDates = append(eventDates, date.Format("2006-01-02"))
	}
	return DatasetDTO{
		Uid:          dataset.Uid,
		Name:         dataset.Name,
		CreatedAt:    dataset.CreatedAt.Format(time.RFC3339),
		Observations: len(dataset.Observations),
		EventDates:   eventDates,
		Years:        grid.Years(grid.Preprocess(dataset.Observations)),
	}
}

func parseEventDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	for _, value := range raw {
		date, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// writeRenderError maps pipeline errors onto API status codes.
func writeRenderError(w http.ResponseWriter, err error) {
	var yearNotFound *heatmap.YearNotFoundError
	var unsupportedLanguage *locale.ErrUnsupportedLanguage
	var invalidDate *grid.InvalidDateError
	switch {
	case errors.As(err, &yearNotFound):
		writeError(w, http.StatusNotFound, "Year not found in data", yearNotFound.Error())
	case errors.As(err, &unsupportedLanguage):
		writeError(w, http.StatusUnprocessableEntity, "Unsupported language", unsupportedLanguage.Error())
	case errors.As(err, &invalidDate):
		writeError(w, http.StatusBadRequest, "Invalid date in data", invalidDate.Error())
	default:
		log.Errorf("failed to render heatmap: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
