package heatmap

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Q07K/event-calplot/internal/config"
	"github.com/Q07K/event-calplot/internal/rest"
	"github.com/Q07K/event-calplot/pkg/grid"
	"github.com/Q07K/event-calplot/pkg/locale"
	log "github.com/sirupsen/logrus"
)

// RenderRequest is the inline rendering payload: a row-oriented table with
// column bindings plus the year and optional style overrides.
type RenderRequest struct {
	Data          []map[string]any `json:"data"`
	DateCol       string           `json:"dateCol"`
	ValueCol      string           `json:"valueCol"`
	Year          int              `json:"year"`
	Language      string           `json:"language,omitempty"`
	MinColor      string           `json:"minColor,omitempty"`
	MaxColor      string           `json:"maxColor,omitempty"`
	LineColor     string           `json:"lineColor,omitempty"`
	LineWidth     float64          `json:"lineWidth,omitempty"`
	EventColor    string           `json:"eventColor,omitempty"`
	HoverTemplate string           `json:"hoverTemplate,omitempty"`
	EventDates    []string         `json:"eventDates,omitempty"`
}

type Handler struct {
	defaults config.Heatmap
}

func NewHandler(defaults config.Heatmap) *Handler {
	return &Handler{defaults: defaults}
}

// Render builds a figure from inline data.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if request.DateCol == "" || request.ValueCol == "" {
		h.writeError(w, http.StatusBadRequest, "Missing required fields", "dateCol and valueCol are required")
		return
	}

	params := Params{
		Year:          request.Year,
		Language:      firstNonEmpty(request.Language, h.defaults.Language),
		MinColor:      firstNonEmpty(request.MinColor, h.defaults.MinColor),
		MaxColor:      firstNonEmpty(request.MaxColor, h.defaults.MaxColor),
		LineColor:     firstNonEmpty(request.LineColor, h.defaults.LineColor),
		EventColor:    firstNonEmpty(request.EventColor, h.defaults.EventColor),
		LineWidth:     request.LineWidth,
		HoverTemplate: request.HoverTemplate,
	}
	if params.LineWidth == 0 {
		params.LineWidth = h.defaults.LineWidth
	}
	if request.EventDates != nil {
		dates := make([]time.Time, 0, len(request.EventDates))
		for _, value := range request.EventDates {
			date, err := time.Parse("2006-01-02", value)
			if err != nil {
				h.writeError(w, http.StatusBadRequest, "Invalid event date", err.Error())
				return
			}
			dates = append(dates, date)
		}
		params.EventDates = dates
	}

	fig, err := CreateFromTable(request.Data, request.DateCol, request.ValueCol, params)
	if err != nil {
		h.writeFigureError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(fig); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeFigureError(w http.ResponseWriter, err error) {
	var yearNotFound *YearNotFoundError
	var unsupportedLanguage *locale.ErrUnsupportedLanguage
	var invalidDate *grid.InvalidDateError
	switch {
	case errors.As(err, &yearNotFound):
		h.writeError(w, http.StatusNotFound, "Year not found in data", yearNotFound.Error())
	case errors.As(err, &unsupportedLanguage):
		h.writeError(w, http.StatusUnprocessableEntity, "Unsupported language", unsupportedLanguage.Error())
	case errors.As(err, &invalidDate):
		h.writeError(w, http.StatusBadRequest, "Invalid date in data", invalidDate.Error())
	default:
		log.Errorf("failed to render heatmap: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, details string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
