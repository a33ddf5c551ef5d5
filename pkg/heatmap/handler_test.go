package heatmap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Q07K/event-calplot/internal/config"
	"github.com/stretchr/testify/assert"
)

var handlerDefaults = config.Heatmap{
	Language:   "en",
	MinColor:   "#eeeeee",
	MaxColor:   "#678fae",
	LineColor:  "#9e9e9e",
	LineWidth:  1.5,
	EventColor: "#76cf61",
}

func renderRequestBody(t *testing.T, request RenderRequest) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(request)
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

func tableData(days int) []map[string]any {
	data := make([]map[string]any, days)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range data {
		data[i] = map[string]any{
			"date":  start.AddDate(0, 0, i).Format("2006-01-02"),
			"count": float64(i % 7),
		}
	}
	return data
}

func TestRenderHandler(t *testing.T) {
	handler := NewHandler(handlerDefaults)

	t.Run("renders a figure from inline data", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{
			Data:     tableData(31),
			DateCol:  "date",
			ValueCol: "count",
			Year:     2024,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var decoded struct {
			Data   []map[string]any `json:"data"`
			Layout map[string]any   `json:"layout"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
		assert.Len(t, decoded.Data, 4)
		assert.Equal(t, "2024", decoded.Layout["title"].(map[string]any)["text"])
	})

	t.Run("includes the event overlay when event dates are given", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{
			Data:       tableData(31),
			DateCol:    "date",
			ValueCol:   "count",
			Year:       2024,
			EventDates: []string{"2024-01-15"},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var decoded struct {
			Data []map[string]any `json:"data"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
		assert.Len(t, decoded.Data, 5)
	})

	t.Run("rejects missing column bindings", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{Data: tableData(5), Year: 2024})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("404 for a year absent from the data", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{
			Data:     tableData(5),
			DateCol:  "date",
			ValueCol: "count",
			Year:     2019,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		var errResponse struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Year not found in data", errResponse.Error)
		assert.Contains(t, errResponse.Details, "2024")
	})

	t.Run("422 for an unsupported language", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{
			Data:     tableData(5),
			DateCol:  "date",
			ValueCol: "count",
			Year:     2024,
			Language: "fr",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("400 for an unparsable date value", func(t *testing.T) {
		data := tableData(5)
		data[2]["date"] = "01/15/2024"
		body := renderRequestBody(t, RenderRequest{
			Data:     data,
			DateCol:  "date",
			ValueCol: "count",
			Year:     2024,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse struct {
			Error string `json:"error"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Equal(t, "Invalid date in data", errResponse.Error)
	})

	t.Run("400 for an unparsable event date", func(t *testing.T) {
		body := renderRequestBody(t, RenderRequest{
			Data:       tableData(5),
			DateCol:    "date",
			ValueCol:   "count",
			Year:       2024,
			EventDates: []string{"not-a-date"},
		})
		req := httptest.NewRequest(http.MethodPost, "/api/heatmap", body)
		w := httptest.NewRecorder()

		handler.Render(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
