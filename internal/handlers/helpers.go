package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/zml18x/SMS-Backend-sub000/internal/config"
	"github.com/zml18x/SMS-Backend-sub000/internal/models"
	"github.com/zml18x/SMS-Backend-sub000/internal/service"
	"github.com/zml18x/SMS-Backend-sub000/internal/validation"
)

const maxBodyBytes = 1 << 20

// --- Helper Functions ---

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(config.RequestIDKey).(string); ok {
		return requestID
	}
	return "unknown"
}

// actorFromContext returns the caller placed in the context by the JWT middleware.
func actorFromContext(ctx context.Context) models.Actor {
	userID, _ := ctx.Value(config.UserIDKey).(string)
	roles, _ := ctx.Value(config.RolesKey).([]string)
	return models.Actor{UserID: userID, Roles: roles}
}

func writeJSON(w http.ResponseWriter, app *config.Application, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.Logger.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func writeResponse(w http.ResponseWriter, app *config.Application, status int, success bool, data interface{}, message string) {
	response := map[string]interface{}{
		"success": success,
		"message": message,
	}

	if data != nil {
		response["data"] = data
	}

	if !success {
		response["error"] = message
	}

	writeJSON(w, app, status, response)
}

func writeSuccess(w http.ResponseWriter, app *config.Application, data interface{}, message string) {
	writeResponse(w, app, http.StatusOK, true, data, message)
}

func writeCreated(w http.ResponseWriter, app *config.Application, data interface{}, message string) {
	writeResponse(w, app, http.StatusCreated, true, data, message)
}

func writeError(w http.ResponseWriter, app *config.Application, status int, message string) {
	writeResponse(w, app, status, false, nil, message)
}

// writeServiceError maps service sentinels to status codes. Unknown errors are logged and
// reported as a generic 500 with fallback as the message.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.app.Logger.Error().
			Str("request_id", getRequestID(r.Context())).
			Str("path", r.URL.Path).
			Err(err).
			Msg(fallback)
		writeError(w, h.app, status, fallback)
		return
	}
	writeError(w, h.app, status, err.Error())
}

// decodeAndValidate reads a JSON body into dst and runs its validation rules.
// It writes the 400 response itself and returns false when the body is unusable.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	requestID := getRequestID(r.Context())

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		h.app.Logger.Warn().
			Str("request_id", requestID).
			Str("path", r.URL.Path).
			Err(err).
			Msg("Invalid JSON in request")
		writeError(w, h.app, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := validation.ValidateStruct(dst); err != nil {
		h.app.Logger.Warn().
			Str("request_id", requestID).
			Str("path", r.URL.Path).
			Err(err).
			Msg("Request validation failed")
		writeError(w, h.app, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// pageParams reads ?page= and ?limit=. Invalid values fall back to the service defaults.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
