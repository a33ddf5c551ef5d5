package heatmap

import (
	"strconv"

	"github.com/Q07K/event-calplot/pkg/figure"
	"github.com/Q07K/event-calplot/pkg/grid"
	"github.com/Q07K/event-calplot/pkg/locale"
)

// midMonthDay is subtracted from each cumulative day count so the month tick
// lands near the middle of the month's week columns.
const midMonthDay = 15

// monthPositions converts per-month day counts into x-axis tick positions in
// week units: (cumulative days through the month - 15) / 7.
func monthPositions(daysInMonths []int) []float64 {
	positions := make([]float64, len(daysInMonths))
	cumulative := 0
	for i, days := range daysInMonths {
		cumulative += days
		positions[i] = float64(cumulative-midMonthDay) / 7
	}
	return positions
}

// daysInMonths counts the rows of each month present, in calendar order.
// Rows are expected dense and chronological, as produced by grid.FilterYear.
func daysInMonths(rows []grid.Row) []int {
	var counts []int
	lastMonth := 0
	for _, row := range rows {
		month := int(row.Date.Month())
		if month != lastMonth {
			counts = append(counts, 0)
			lastMonth = month
		}
		counts[len(counts)-1]++
	}
	return counts
}

func buildLayout(positions []float64, labels locale.Labels, year int) figure.Layout {
	tickFont := &figure.TickFont{Size: 12, Color: "#9e9e9e"}
	return figure.Layout{
		Height: 250,
		Title: &figure.Title{
			Text:    strconv.Itoa(year),
			X:       0.5,
			XAnchor: "center",
		},
		YAxis: &figure.Axis{
			TickMode:  "array",
			TickText:  labels.Weekdays,
			TickVals:  []float64{0, 1, 2, 3, 4, 5, 6},
			AutoRange: "reversed",
			TickFont:  tickFont,
		},
		XAxis: &figure.Axis{
			TickMode: "array",
			TickText: labels.Months,
			TickVals: positions,
			TickFont: tickFont,
		},
		PlotBGColor: "white",
		Margin:      &figure.Margin{T: 40},
		ShowLegend:  false,
	}
}
