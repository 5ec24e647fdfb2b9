package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/apperror"
)

const maxJSONBody = 1 << 20

type errorBody struct {
	Message string                `json:"message"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// writeError maps the error taxonomy onto status codes. Anything that is
// not a caller mistake is logged.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody{Message: "Validation error", Errors: ve.Fields})
	case errors.Is(err, apperror.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperror.ErrNotConfigured):
		log.Error("document store not configured", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Document store is not configured")
	default:
		log.Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads one JSON object from the body into dst. A value of the
// wrong type for a known field is reported as a validation error on that
// field; anything else unreadable is a bad payload.
func decodeJSON(w http.ResponseWriter, r *http.Request, log *zap.Logger, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			writeError(w, log, &apperror.ValidationError{Fields: []apperror.FieldError{{
				Field:   ute.Field,
				Message: typeMessage(ute.Type),
			}}})
			return false
		}
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	if _, err := dec.Token(); err != io.EOF {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func typeMessage(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "Invalid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "Expected a string"
	case reflect.Bool:
		return "Expected true or false"
	case reflect.Struct, reflect.Map:
		return "Expected an object"
	}
	return "Invalid value"
}
