// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

// RegisterPublicEndpoints mounts the signup and login routes.
func (a *API) RegisterPublicEndpoints(r chi.Router) {
	r.Post("/auth/agent/signup", a.signup(a.service.AgentSignup))
	r.Post("/auth/agency/signup", a.signup(a.service.AgencySignup))
	r.Post("/auth/agent/login", a.login(a.service.AgentLogin))
	r.Post("/auth/agency/login", a.login(a.service.AgencyLogin))
}

// RegisterEndpoints mounts the session routes; r must already authenticate requests.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/auth/session", a.session)
	r.Post("/auth/password", a.setPassword)
}

func (a *API) signup(flow func(context.Context, *SignupInput) (*Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupInput
		if err := httptypes.Decode(r, &req); err != nil {
			httptypes.WriteError(w, err)
			return
		}

		res, err := flow(r.Context(), &req)
		if err != nil {
			httptypes.WriteError(w, err)
			return
		}

		writeResult(w, res)
	}
}

func (a *API) login(flow func(context.Context, *LoginInput) (*Result, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginInput
		if err := httptypes.Decode(r, &req); err != nil {
			httptypes.WriteError(w, err)
			return
		}

		res, err := flow(r.Context(), &req)
		if err != nil {
			httptypes.WriteError(w, err)
			return
		}

		writeResult(w, res)
	}
}

func (a *API) session(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	httptypes.WriteData(w, http.StatusOK, a.service.Session(r.Context(), p))
}

func (a *API) setPassword(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req PasswordInput
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	res, err := a.service.SetPassword(r.Context(), p, authentication.BearerTokenFromContext(r.Context()), &req)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	writeResult(w, res)
}

func writeResult(w http.ResponseWriter, res *Result) {
	if res.Status == StatusConfirmationRequired {
		httptypes.WriteJSON(w, http.StatusAccepted, httptypes.Response{Status: http.StatusAccepted, Message: res.Message, Data: res})
		return
	}

	httptypes.WriteData(w, http.StatusOK, res)
}
