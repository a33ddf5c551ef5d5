// Package heatmap assembles GitHub-style calendar heatmap figures from
// observation series: one year per figure, weeks as columns, weekdays as
// rows, optional highlighted event dates and month separator lines.
package heatmap

import (
	"fmt"
	"slices"
	"time"

	"github.com/Q07K/event-calplot/pkg/figure"
	"github.com/Q07K/event-calplot/pkg/grid"
	"github.com/Q07K/event-calplot/pkg/locale"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultLanguage      = "en"
	DefaultMinColor      = "#eeeeee"
	DefaultMaxColor      = "#678fae"
	DefaultLineColor     = "#9e9e9e"
	DefaultLineWidth     = 1.5
	DefaultEventColor    = "#76cf61"
	defaultHoverTemplate = "%{text}<br>Count: %{z}"
)

// Params controls rendering of one calendar year. Zero-valued fields fall
// back to the defaults above; EventDates nil means no event overlay (an
// empty non-nil slice still produces the overlay trace).
type Params struct {
	Year          int
	Language      string
	MinColor      string
	MaxColor      string
	LineColor     string
	LineWidth     float64
	HoverTemplate string
	EventDates    []time.Time
	EventColor    string
}

func (p Params) withDefaults() Params {
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if p.MinColor == "" {
		p.MinColor = DefaultMinColor
	}
	if p.MaxColor == "" {
		p.MaxColor = DefaultMaxColor
	}
	if p.LineColor == "" {
		p.LineColor = DefaultLineColor
	}
	if p.LineWidth == 0 {
		p.LineWidth = DefaultLineWidth
	}
	if p.HoverTemplate == "" {
		p.HoverTemplate = defaultHoverTemplate
	}
	if p.EventColor == "" {
		p.EventColor = DefaultEventColor
	}
	return p
}

// YearNotFoundError reports a requested year absent from the input data,
// carrying the years that are available.
type YearNotFoundError struct {
	Year      int
	Available []int
}

func (e *YearNotFoundError) Error() string {
	return fmt.Sprintf("year %d not found in data, available years: %v", e.Year, e.Available)
}

// Create builds the calendar heatmap figure for one year of observations.
// The input series may be sparse; missing days render as zero. The returned
// figure is a structured render request for the external renderer, layered
// back to front: month separators, the value grid, and (when event dates
// were supplied) the event overlay.
func Create(observations []grid.Observation, params Params) (*figure.Figure, error) {
	params = params.withDefaults()

	labels, err := locale.Get(params.Language)
	if err != nil {
		return nil, err
	}

	rows := grid.Preprocess(observations)

	years := grid.Years(rows)
	if !slices.Contains(years, params.Year) {
		return nil, &YearNotFoundError{Year: params.Year, Available: years}
	}

	yearRows := grid.FilterYear(rows, params.Year)
	if params.EventDates != nil {
		yearRows = grid.MarkEvents(yearRows, params.EventDates)
	}
	log.Debugf("rendering heatmap for year %d: %d rows, %d event dates", params.Year, len(yearRows), len(params.EventDates))

	positions := monthPositions(daysInMonths(yearRows))
	layout := buildLayout(positions, labels, params.Year)

	traces := separatorTraces(yearRows, params.LineColor, params.LineWidth)
	traces = append(traces, valueTrace(yearRows, params.MinColor, params.MaxColor, params.HoverTemplate))
	if params.EventDates != nil {
		traces = append(traces, eventTrace(yearRows, params.EventColor))
	}

	return &figure.Figure{Data: traces, Layout: layout}, nil
}

// CreateFromTable is Create for row-oriented input with explicit column
// name bindings, the shape the HTTP API accepts.
func CreateFromTable(rows []map[string]any, dateCol, valueCol string, params Params) (*figure.Figure, error) {
	observations, err := grid.FromTable(rows, dateCol, valueCol)
	if err != nil {
		return nil, err
	}
	return Create(observations, params)
}
