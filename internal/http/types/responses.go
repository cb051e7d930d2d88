// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"

	"github.com/velocityonboard/onboard-service/internal/types"
)

// ErrorResponse is the JSON shape of every failed API call.
type ErrorResponse struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// Response wraps successful payloads.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// StatusFromError maps an error category to its HTTP status code.
func StatusFromError(err error) int {
	switch types.KindOf(err) {
	case types.KindAuth:
		return http.StatusUnauthorized
	case types.KindInvite:
		return http.StatusUnprocessableEntity
	case types.KindAuthorization:
		return http.StatusForbidden
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindConflict:
		return http.StatusConflict
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindBackend:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// ErrorResponseFromError renders err the way the frontend displays it.
// Authorization failures never leak their cause.
func ErrorResponseFromError(err error) *ErrorResponse {
	status := StatusFromError(err)

	msg := err.Error()
	if status == http.StatusForbidden {
		msg = types.ErrNotAuthorized.Message
	}

	return &ErrorResponse{
		Status:  status,
		Message: msg,
	}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a successful payload wrapped in a Response.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Response{Status: status, Data: data})
}

func WriteError(w http.ResponseWriter, err error) {
	resp := ErrorResponseFromError(err)
	WriteJSON(w, resp.Status, resp)
}
