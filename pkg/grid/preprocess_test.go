package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestPreprocess(t *testing.T) {
	t.Run("fills the full span with one row per day", func(t *testing.T) {
		observations := []Observation{
			{Date: day(2024, time.March, 10), Value: 3},
			{Date: day(2024, time.July, 1), Value: 7},
		}

		rows := Preprocess(observations)

		assert.Len(t, rows, 366) // 2024 is a leap year
		assert.Equal(t, day(2024, time.January, 1), rows[0].Date)
		assert.Equal(t, day(2024, time.December, 31), rows[len(rows)-1].Date)

		seen := make(map[time.Time]bool)
		for i, row := range rows {
			assert.False(t, seen[row.Date], "duplicate row for %s", row.Date)
			seen[row.Date] = true
			if i > 0 {
				assert.Equal(t, rows[i-1].Date.AddDate(0, 0, 1), row.Date, "gap before %s", row.Date)
			}
		}
	})

	t.Run("spans min to max observed year", func(t *testing.T) {
		observations := []Observation{
			{Date: day(2023, time.December, 30), Value: 1},
			{Date: day(2025, time.January, 2), Value: 2},
		}

		rows := Preprocess(observations)

		// 2023 + 2024 (leap) + 2025
		assert.Len(t, rows, 365+366+365)
		assert.Equal(t, day(2023, time.January, 1), rows[0].Date)
		assert.Equal(t, day(2025, time.December, 31), rows[len(rows)-1].Date)
	})

	t.Run("zero-fills missing dates and keeps observed values", func(t *testing.T) {
		observations := []Observation{
			{Date: day(2024, time.February, 14), Value: 42},
		}

		rows := Preprocess(observations)

		byDate := make(map[time.Time]Row)
		for _, row := range rows {
			byDate[row.Date] = row
		}
		assert.Equal(t, 42.0, byDate[day(2024, time.February, 14)].Value)
		assert.Equal(t, 0.0, byDate[day(2024, time.February, 13)].Value)
		assert.Equal(t, 0.0, byDate[day(2024, time.February, 15)].Value)
	})

	t.Run("normalizes away time of day", func(t *testing.T) {
		observations := []Observation{
			{Date: time.Date(2024, time.May, 5, 18, 30, 12, 0, time.UTC), Value: 9},
		}

		rows := Preprocess(observations)

		byDate := make(map[time.Time]Row)
		for _, row := range rows {
			byDate[row.Date] = row
		}
		assert.Equal(t, 9.0, byDate[day(2024, time.May, 5)].Value)
	})

	t.Run("assigns weekday and week number", func(t *testing.T) {
		rows := Preprocess([]Observation{{Date: day(2024, time.January, 1), Value: 1}})

		// 2024-01-01 is a Monday in ISO week 1.
		assert.Equal(t, 0, rows[0].Weekday)
		assert.Equal(t, 1, rows[0].WeekNum)
		// 2024-01-07 is the following Sunday.
		assert.Equal(t, 6, rows[6].Weekday)
		assert.Equal(t, 1, rows[6].WeekNum)
	})

	t.Run("remaps January dates of the previous ISO year to week 0", func(t *testing.T) {
		// 2023-01-01 is a Sunday in ISO week 52 of 2022.
		rows := Preprocess([]Observation{{Date: day(2023, time.June, 1), Value: 1}})

		assert.Equal(t, day(2023, time.January, 1), rows[0].Date)
		assert.Equal(t, 0, rows[0].WeekNum)
		// 2023-01-02 is a Monday starting ISO week 1.
		assert.Equal(t, 1, rows[1].WeekNum)
	})

	t.Run("remaps December dates of the next ISO year to week 53", func(t *testing.T) {
		// 2024-12-30 and 31 fall in ISO week 1 of 2025.
		rows := Preprocess([]Observation{{Date: day(2024, time.June, 1), Value: 1}})

		byDate := make(map[time.Time]Row)
		for _, row := range rows {
			byDate[row.Date] = row
		}
		assert.Equal(t, 52, byDate[day(2024, time.December, 29)].WeekNum)
		assert.Equal(t, 53, byDate[day(2024, time.December, 30)].WeekNum)
		assert.Equal(t, 53, byDate[day(2024, time.December, 31)].WeekNum)
	})

	t.Run("keeps a genuine trailing ISO week 53", func(t *testing.T) {
		// 2020 is a long ISO year: Dec 28-31 are in ISO week 53 of 2020.
		rows := Preprocess([]Observation{{Date: day(2020, time.June, 1), Value: 1}})

		byDate := make(map[time.Time]Row)
		for _, row := range rows {
			byDate[row.Date] = row
		}
		assert.Equal(t, 53, byDate[day(2020, time.December, 28)].WeekNum)
		assert.Equal(t, 53, byDate[day(2020, time.December, 31)].WeekNum)
	})

	t.Run("week numbers are non-decreasing within a year apart from the remaps", func(t *testing.T) {
		rows := Preprocess([]Observation{{Date: day(2024, time.June, 1), Value: 1}})

		for i := 1; i < len(rows); i++ {
			prev, curr := rows[i-1].WeekNum, rows[i].WeekNum
			assert.GreaterOrEqual(t, curr, prev, "week number decreased at %s", rows[i].Date)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		rows := Preprocess([]Observation{
			{Date: day(2024, time.March, 3), Value: 5},
			{Date: day(2024, time.March, 9), Value: 2},
		})

		again := make([]Observation, len(rows))
		for i, row := range rows {
			again[i] = Observation{Date: row.Date, Value: row.Value}
		}

		assert.Equal(t, rows, Preprocess(again))
	})

	t.Run("duplicate dates keep the last value", func(t *testing.T) {
		rows := Preprocess([]Observation{
			{Date: day(2024, time.April, 1), Value: 1},
			{Date: day(2024, time.April, 1), Value: 8},
		})

		byDate := make(map[time.Time]Row)
		for _, row := range rows {
			byDate[row.Date] = row
		}
		assert.Equal(t, 8.0, byDate[day(2024, time.April, 1)].Value)
	})

	t.Run("empty input yields no rows", func(t *testing.T) {
		assert.Empty(t, Preprocess(nil))
	})
}

func TestYears(t *testing.T) {
	rows := Preprocess([]Observation{
		{Date: day(2023, time.May, 1), Value: 1},
		{Date: day(2024, time.May, 1), Value: 1},
	})

	assert.Equal(t, []int{2023, 2024}, Years(rows))
	assert.Empty(t, Years(nil))
}

func TestFilterYear(t *testing.T) {
	rows := Preprocess([]Observation{
		{Date: day(2023, time.May, 1), Value: 1},
		{Date: day(2024, time.May, 1), Value: 1},
	})

	filtered := FilterYear(rows, 2024)

	assert.Len(t, filtered, 366)
	assert.Equal(t, day(2024, time.January, 1), filtered[0].Date)
	assert.Equal(t, day(2024, time.December, 31), filtered[len(filtered)-1].Date)
	// Boundary remaps survive the filter.
	assert.Equal(t, 53, filtered[len(filtered)-1].WeekNum)

	assert.Empty(t, FilterYear(rows, 2020))
}

func TestMarkEvents(t *testing.T) {
	rows := FilterYear(Preprocess([]Observation{{Date: day(2024, time.June, 1), Value: 1}}), 2024)

	t.Run("marks exactly the matching dates", func(t *testing.T) {
		marked := MarkEvents(rows, []time.Time{day(2024, time.February, 14)})

		eventCount := 0
		for _, row := range marked {
			if row.Event {
				eventCount++
				assert.Equal(t, day(2024, time.February, 14), row.Date)
			}
		}
		assert.Equal(t, 1, eventCount)
	})

	t.Run("normalizes event timestamps before matching", func(t *testing.T) {
		marked := MarkEvents(rows, []time.Time{time.Date(2024, time.February, 14, 23, 1, 2, 0, time.UTC)})

		byDate := make(map[time.Time]Row)
		for _, row := range marked {
			byDate[row.Date] = row
		}
		assert.True(t, byDate[day(2024, time.February, 14)].Event)
	})

	t.Run("ignores event dates outside the range", func(t *testing.T) {
		marked := MarkEvents(rows, []time.Time{day(2019, time.January, 1)})

		for _, row := range marked {
			assert.False(t, row.Event)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		MarkEvents(rows, []time.Time{day(2024, time.February, 14)})

		for _, row := range rows {
			assert.False(t, row.Event)
		}
	})
}
