// Package api holds the JSON request/response helpers shared by the HTTP
// handlers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"todo-app/internal/apperror"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto its HTTP status and writes {"error": message}.
// Errors outside the apperror taxonomy are reported as store failures.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Store(err)
	}

	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("kind", appErr.Kind.String()).Msg("request failed")
	}
	WriteJSON(w, status, ErrorResponse{Error: appErr.Message})
}

// MaxBodyBytes caps the size of a JSON request body.
const MaxBodyBytes = 100 << 10

// DecodeJSON decodes the request body into v. An empty body leaves v
// untouched so that required-field checks report the missing fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &apperror.Error{Kind: apperror.KindValidation, Status: http.StatusRequestEntityTooLarge, Message: "Request body too large"}
	}
	return apperror.Validation("Invalid request format")
}

// PathID parses the named numeric route variable.
func PathID(r *http.Request, name, notFoundMessage string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound(notFoundMessage)
	}
	return id, nil
}
