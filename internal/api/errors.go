// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/playcore/internal/log"
	"github.com/ManuGH/playcore/internal/player"
)

// APIError is the error body of every failed request.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Error codes.
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeUnknownTrack      = "UNKNOWN_TRACK"
	CodeUnknownSpeed      = "UNKNOWN_SPEED"
	CodeUnavailable       = "PLAYER_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, APIError{
		Code:      code,
		Message:   message,
		RequestID: log.RequestIDFromContext(r.Context()),
	})
}

// writePlayerError maps player errors onto HTTP status codes.
func writePlayerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, player.ErrInvalidRequest):
		writeError(w, r, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, player.ErrUnknownTrack):
		writeError(w, r, http.StatusUnprocessableEntity, CodeUnknownTrack, err.Error())
	case errors.Is(err, player.ErrUnknownSpeed):
		writeError(w, r, http.StatusUnprocessableEntity, CodeUnknownSpeed, err.Error())
	case errors.Is(err, player.ErrIllegalTransition):
		writeError(w, r, http.StatusConflict, CodeIllegalTransition, err.Error())
	case errors.Is(err, player.ErrClosed):
		writeError(w, r, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
	default:
		logger := log.WithContext(r.Context(), log.WithComponent("api"))
		logger.Error().Err(err).Msg("player call failed")
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "internal error")
	}
}
