package grid

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// InvalidDateError reports an input cell that could not be interpreted as a
// calendar date.
type InvalidDateError struct {
	Column string
	Value  any
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date value %v in column %q", e.Value, e.Column)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FromTable converts a row-oriented table into an observation series using
// the given column name bindings. Dates may arrive as time.Time values or as
// strings in ISO date / RFC3339 layouts; values as any numeric JSON shape.
func FromTable(rows []map[string]any, dateCol, valueCol string) ([]Observation, error) {
	observations := make([]Observation, 0, len(rows))
	for i, row := range rows {
		rawDate, ok := row[dateCol]
		if !ok {
			return nil, &InvalidDateError{Column: dateCol, Value: nil}
		}
		date, err := parseDate(rawDate)
		if err != nil {
			return nil, &InvalidDateError{Column: dateCol, Value: rawDate}
		}

		value, err := parseValue(row[valueCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value in column %q: %w", i, valueCol, err)
		}

		observations = append(observations, Observation{Date: date, Value: value})
	}
	return observations, nil
}

func parseDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date format: %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", raw)
	}
}

func parseValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported value type %T", raw)
	}
}
