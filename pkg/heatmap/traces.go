package heatmap

import (
	"github.com/Q07K/event-calplot/pkg/figure"
	"github.com/Q07K/event-calplot/pkg/grid"
)

// lineOffset shifts separator lines from cell centers onto cell borders.
const lineOffset = 0.5

// SeparatorGeometry is the month-boundary line work anchored at a month's
// first day. The start segment is always present; the connector and closing
// segments exist only when the month does not begin on a Monday, closing the
// boundary into a continuous border around the mid-week corner.
type SeparatorGeometry struct {
	StartX  float64
	StartY1 float64
	StartY2 float64

	HasConnector bool
	ConnectorX1  float64
	ConnectorX2  float64
	ConnectorY   float64
	ClosingX     float64
	ClosingY1    float64
	ClosingY2    float64
}

// separatorGeometry returns the boundary segments for a row, or nil for rows
// that are not the first day of a month.
func separatorGeometry(row grid.Row) *SeparatorGeometry {
	if row.Date.Day() != 1 {
		return nil
	}

	week := float64(row.WeekNum)
	weekday := float64(row.Weekday)

	geometry := &SeparatorGeometry{
		StartX:  week - lineOffset,
		StartY1: weekday - lineOffset,
		StartY2: 6 + lineOffset,
	}
	if row.Weekday != 0 {
		geometry.HasConnector = true
		geometry.ConnectorX1 = week - lineOffset
		geometry.ConnectorX2 = week + lineOffset
		geometry.ConnectorY = weekday - lineOffset
		geometry.ClosingX = week + lineOffset
		geometry.ClosingY1 = weekday - lineOffset
		geometry.ClosingY2 = -lineOffset
	}
	return geometry
}

// separatorTraces renders all month boundaries as three null-gapped line
// traces: the verticals at month starts, the horizontal connectors, and the
// closing verticals for months starting mid-week.
func separatorTraces(rows []grid.Row, color string, width float64) []figure.Trace {
	line := &figure.Line{Color: color, Width: width}

	var startX, startY, connectorX, connectorY, closingX, closingY []*float64
	for _, row := range rows {
		geometry := separatorGeometry(row)
		if geometry == nil {
			continue
		}

		startX = appendSegment(startX, geometry.StartX, geometry.StartX)
		startY = appendSegment(startY, geometry.StartY1, geometry.StartY2)
		if geometry.HasConnector {
			connectorX = appendSegment(connectorX, geometry.ConnectorX1, geometry.ConnectorX2)
			connectorY = appendSegment(connectorY, geometry.ConnectorY, geometry.ConnectorY)
			closingX = appendSegment(closingX, geometry.ClosingX, geometry.ClosingX)
			closingY = appendSegment(closingY, geometry.ClosingY1, geometry.ClosingY2)
		}
	}

	traces := make([]figure.Trace, 0, 3)
	for _, segment := range [][2][]*float64{
		{startX, startY},
		{connectorX, connectorY},
		{closingX, closingY},
	} {
		traces = append(traces, figure.ScatterTrace{
			Type:      "scatter",
			X:         segment[0],
			Y:         segment[1],
			Mode:      "lines",
			Line:      line,
			HoverInfo: "skip",
		})
	}
	return traces
}

// appendSegment adds one two-point segment followed by a null gap so the
// next segment does not connect to it.
func appendSegment(coords []*float64, a, b float64) []*float64 {
	return append(coords, figure.Float(a), figure.Float(b), nil)
}

func valueTrace(rows []grid.Row, minColor, maxColor, hoverTemplate string) figure.HeatmapTrace {
	x := make([]int, len(rows))
	y := make([]int, len(rows))
	z := make([]float64, len(rows))
	text := make([]string, len(rows))
	for i, row := range rows {
		x[i] = row.WeekNum
		y[i] = row.Weekday
		z[i] = row.Value
		text[i] = row.Date.Format("2006-01-02")
	}

	return figure.HeatmapTrace{
		Type:          "heatmap",
		X:             x,
		Y:             y,
		Z:             z,
		XGap:          3,
		YGap:          3,
		Text:          text,
		HoverTemplate: hoverTemplate,
		HoverLabel:    &figure.HoverLabel{NameLength: 0},
		ColorScale: []figure.ColorStop{
			// Zero stays white so empty days read as background.
			{Position: 0, Color: "#ffffff"},
			{Position: 0.0001, Color: minColor},
			{Position: 1, Color: maxColor},
		},
		ShowScale: false,
	}
}

func eventTrace(rows []grid.Row, color string) figure.HeatmapTrace {
	x := make([]int, len(rows))
	y := make([]int, len(rows))
	z := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = row.WeekNum
		y[i] = row.Weekday
		if row.Event {
			z[i] = 1
		}
	}

	return figure.HeatmapTrace{
		Type:      "heatmap",
		X:         x,
		Y:         y,
		Z:         z,
		XGap:      3,
		YGap:      3,
		HoverInfo: "skip",
		ZMin:      figure.Float(0),
		ZMax:      figure.Float(1),
		ColorScale: []figure.ColorStop{
			{Position: 0, Color: "rgba(0,0,0,0)"},
			{Position: 1, Color: color},
		},
		ShowScale: false,
	}
}
