package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"finanger/internal/core"
	"finanger/internal/csvimport"
	"finanger/internal/currency"
	"finanger/internal/services"
	"finanger/internal/settings"
	"finanger/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps the domain's sentinel errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrSecurityAnswerMismatch):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrDuplicateTransaction):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrExportUnavailable),
		errors.Is(err, services.ErrChatUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, csvimport.ErrHeaderMismatch),
		errors.Is(err, currency.ErrUnsupportedCurrency),
		errors.Is(err, services.ErrDeadlinePassed),
		errors.Is(err, services.ErrEmptyUsername),
		errors.Is(err, services.ErrEmptyPassword),
		errors.Is(err, settings.ErrInvalidTheme),
		errors.Is(err, settings.ErrInvalidLanguage),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCurrency),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrInvalidGoalType),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrInvalidDeadline):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes the body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
