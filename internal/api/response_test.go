package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/internal/apperror"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("Classified", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, req, apperror.NotFound("Todo list not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Todo list not found", decodeError(t, rec))
	})

	t.Run("Unclassified", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, req, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Database error", decodeError(t, rec))
	})
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Title string `json:"title"`
	}

	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Milk"}`))
	require.NoError(t, DecodeJSON(rec, req, &body))
	assert.Equal(t, "Milk", body.Title)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.NoError(t, DecodeJSON(rec, req, &body))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{title:"))
	err := DecodeJSON(rec, req, &body)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	var body struct {
		Title string `json:"title"`
	}
	payload := `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	err := DecodeJSON(rec, req, &body)
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPStatus())
	assert.Equal(t, "Request body too large", appErr.Message)
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw string
		id  int64
		ok  bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.raw})
			id, err := PathID(req, "id", "Task not found")
			if !tt.ok {
				assert.True(t, apperror.Is(err, apperror.KindNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}
}
