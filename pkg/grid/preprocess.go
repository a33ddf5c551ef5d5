package grid

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// Preprocess turns a sparse observation series into the dense calendar grid:
// dates normalized to midnight, one row per day from January 1st of the
// earliest observed year through December 31st of the latest, missing dates
// filled with value 0, and weekday/week number assigned to every row.
//
// The operation is idempotent: feeding the resulting rows back in (as
// observations) reproduces the same grid.
func Preprocess(observations []Observation) []Row {
	if len(observations) == 0 {
		return nil
	}

	valueByDate := make(map[time.Time]float64, len(observations))
	minYear := observations[0].Date.Year()
	maxYear := minYear
	for _, obs := range observations {
		date := Normalize(obs.Date)
		valueByDate[date] = obs.Value
		if y := date.Year(); y < minYear {
			minYear = y
		} else if y > maxYear {
			maxYear = y
		}
	}
	log.Debugf("filling calendar grid for years %d-%d from %d observations", minYear, maxYear, len(observations))

	start := time.Date(minYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(maxYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	rows := make([]Row, 0, int(end.Sub(start).Hours()/24)+1)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		row := Row{
			Date:    date,
			Value:   valueByDate[date],
			Weekday: Weekday(date),
			WeekNum: weekNum(date),
		}
		rows = append(rows, row)
	}
	return rows
}

// weekNum maps a date to its grid column: the ISO week of year, remapped at
// year boundaries so columns stay ordered 0..53 within a calendar year.
// January dates still in the previous year's trailing ISO week (raw week
// >= 52) move to column 0; December dates already in the next year's leading
// ISO week (raw week == 1) move to column 53. Go's ISOWeek reports a genuine
// 53rd trailing week as 53, never 1, so the December check cannot clip long
// ISO years.
func weekNum(date time.Time) int {
	_, week := date.ISOWeek()
	switch {
	case date.Month() == time.January && week >= 52:
		return 0
	case date.Month() == time.December && week == 1:
		return 53
	default:
		return week
	}
}

// Years returns the sorted distinct calendar years covered by the rows.
func Years(rows []Row) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0, 4)
	for _, row := range rows {
		year := row.Date.Year()
		if _, ok := seen[year]; !ok {
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}
	sort.Ints(years)
	return years
}

// FilterYear returns the rows belonging to the given calendar year, in
// chronological order. Week numbers are left untouched: a year's first days
// may carry column 0 and its last days column 53 from the boundary remaps.
func FilterYear(rows []Row, year int) []Row {
	filtered := make([]Row, 0, 366)
	for _, row := range rows {
		if row.Date.Year() == year {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// MarkEvents returns a copy of rows with Event set on every row whose date
// is in eventDates (compared date-only). Event dates outside the rows'
// range are ignored.
func MarkEvents(rows []Row, eventDates []time.Time) []Row {
	events := make(map[time.Time]struct{}, len(eventDates))
	for _, d := range eventDates {
		events[Normalize(d)] = struct{}{}
	}

	marked := make([]Row, len(rows))
	for i, row := range rows {
		marked[i] = row
		_, marked[i].Event = events[row.Date]
	}
	return marked
}
