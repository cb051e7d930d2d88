// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
)

type API struct {
	service ServiceInterface
	apiKey  string

	logger logging.LoggerInterface
}

// NewAPI builds the hook endpoints; an empty apiKey leaves them unauthenticated.
func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(a.requireAPIKey)
		r.Post("/webhooks/registration", a.registration)
		r.Post("/webhooks/token", a.tokenHook)
	})
}

func (a *API) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) != 1 {
			a.logger.Security().AuthzFailure("webhook", r.URL.Path)
			httptypes.WriteJSON(w, http.StatusUnauthorized, httptypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "invalid webhook key"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var identity KratosIdentity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		a.logger.Errorf("invalid registration hook body: %v", err)
		httptypes.WriteError(w, types.NewValidationError("invalid request body"))
		return
	}

	a.logger.Debugf("registration hook received for %s", identity.ID)

	if err := a.service.HandleRegistration(r.Context(), identity.ID, identity.email()); err != nil {
		a.logger.Errorf("registration hook failed: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *API) tokenHook(w http.ResponseWriter, r *http.Request) {
	req := new(oauth2.TokenHookRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		a.logger.Errorf("invalid token hook body: %v", err)
		httptypes.WriteError(w, types.NewValidationError("invalid request body"))
		return
	}

	resp, err := a.service.HandleTokenHook(r.Context(), req)
	if err != nil {
		a.logger.Errorf("token hook failed: %v", err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, resp)
}
