// Package figure models a renderer-agnostic plot figure. Its JSON form is
// Plotly figure JSON, which is the hand-off contract with the external
// renderer; this package does no drawing itself.
package figure

import "encoding/json"

// Figure is an ordered list of drawable traces plus the axis layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one drawable layer of a figure.
type Trace interface {
	isTrace()
}

// ScatterTrace draws polylines. Nil entries in X/Y serialize to null and
// break the line, so one trace can carry many disjoint segments.
type ScatterTrace struct {
	Type      string     `json:"type"`
	X         []*float64 `json:"x"`
	Y         []*float64 `json:"y"`
	Mode      string     `json:"mode,omitempty"`
	Line      *Line      `json:"line,omitempty"`
	HoverInfo string     `json:"hoverinfo,omitempty"`
}

func (ScatterTrace) isTrace() {}

// HeatmapTrace draws a color-scaled cell grid.
type HeatmapTrace struct {
	Type          string      `json:"type"`
	X             []int       `json:"x"`
	Y             []int       `json:"y"`
	Z             []float64   `json:"z"`
	XGap          float64     `json:"xgap,omitempty"`
	YGap          float64     `json:"ygap,omitempty"`
	Text          []string    `json:"text,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	HoverInfo     string      `json:"hoverinfo,omitempty"`
	HoverLabel    *HoverLabel `json:"hoverlabel,omitempty"`
	ColorScale    []ColorStop `json:"colorscale,omitempty"`
	ShowScale     bool        `json:"showscale"`
	ZMin          *float64    `json:"zmin,omitempty"`
	ZMax          *float64    `json:"zmax,omitempty"`
}

func (HeatmapTrace) isTrace() {}

// ColorStop anchors a color at a normalized position of the color scale.
// It serializes as the [position, color] pair Plotly expects.
type ColorStop struct {
	Position float64
	Color    string
}

func (c ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Position, c.Color})
}

func (c *ColorStop) UnmarshalJSON(data []byte) error {
	var pair [2]any
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if pos, ok := pair[0].(float64); ok {
		c.Position = pos
	}
	if color, ok := pair[1].(string); ok {
		c.Color = color
	}
	return nil
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type HoverLabel struct {
	NameLength int `json:"namelength"`
}

type Layout struct {
	Height      int     `json:"height,omitempty"`
	Title       *Title  `json:"title,omitempty"`
	XAxis       *Axis   `json:"xaxis,omitempty"`
	YAxis       *Axis   `json:"yaxis,omitempty"`
	PlotBGColor string  `json:"plot_bgcolor,omitempty"`
	Margin      *Margin `json:"margin,omitempty"`
	ShowLegend  bool    `json:"showlegend"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
}

type Axis struct {
	ShowLine  bool      `json:"showline"`
	ShowGrid  bool      `json:"showgrid"`
	ZeroLine  bool      `json:"zeroline"`
	TickMode  string    `json:"tickmode,omitempty"`
	TickText  []string  `json:"ticktext,omitempty"`
	TickVals  []float64 `json:"tickvals,omitempty"`
	AutoRange string    `json:"autorange,omitempty"`
	TickFont  *TickFont `json:"tickfont,omitempty"`
}

type TickFont struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Margin struct {
	T int `json:"t"`
}

// Float is a convenience for building nullable scatter coordinates.
func Float(v float64) *float64 {
	return &v
}
