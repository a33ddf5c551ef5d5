package grid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromTable(t *testing.T) {
	t.Run("binds date and value columns by name", func(t *testing.T) {
		rows := []map[string]any{
			{"day": "2024-01-01", "count": 3.0},
			{"day": "2024-01-02", "count": 5},
		}

		observations, err := FromTable(rows, "day", "count")

		assert.NoError(t, err)
		assert.Equal(t, []Observation{
			{Date: day(2024, time.January, 1), Value: 3},
			{Date: day(2024, time.January, 2), Value: 5},
		}, observations)
	})

	t.Run("accepts native time values and RFC3339 strings", func(t *testing.T) {
		rows := []map[string]any{
			{"date": time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC), "value": 1.0},
			{"date": "2024-03-02T10:30:00Z", "value": json.Number("2")},
			{"date": "2024-03-03", "value": "3.5"},
		}

		observations, err := FromTable(rows, "date", "value")

		assert.NoError(t, err)
		assert.Len(t, observations, 3)
		assert.Equal(t, 2.0, observations[1].Value)
		assert.Equal(t, 3.5, observations[2].Value)
	})

	t.Run("missing values default to zero", func(t *testing.T) {
		observations, err := FromTable([]map[string]any{{"date": "2024-01-01"}}, "date", "value")

		assert.NoError(t, err)
		assert.Equal(t, 0.0, observations[0].Value)
	})

	t.Run("fails with InvalidDateError on unparsable dates", func(t *testing.T) {
		rows := []map[string]any{{"date": "not-a-date", "value": 1.0}}

		_, err := FromTable(rows, "date", "value")

		var invalidDate *InvalidDateError
		assert.ErrorAs(t, err, &invalidDate)
		assert.Equal(t, "date", invalidDate.Column)
		assert.Equal(t, "not-a-date", invalidDate.Value)
	})

	t.Run("fails with InvalidDateError on a missing date column", func(t *testing.T) {
		rows := []map[string]any{{"value": 1.0}}

		_, err := FromTable(rows, "date", "value")

		var invalidDate *InvalidDateError
		assert.ErrorAs(t, err, &invalidDate)
	})

	t.Run("fails on non-numeric values", func(t *testing.T) {
		rows := []map[string]any{{"date": "2024-01-01", "value": []string{"nope"}}}

		_, err := FromTable(rows, "date", "value")

		assert.Error(t, err)
	})
}
