// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type StatusResponse struct {
	IsAdmin bool `json:"is_admin"`
}

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

// RegisterEndpoints mounts the routes open to any authenticated principal.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/admin/me", a.me)
}

// RegisterAdminEndpoints mounts the allowlist management routes; r must
// already require an admin.
func (a *API) RegisterAdminEndpoints(r chi.Router) {
	r.Get("/admin/admins", a.list)
	r.Post("/admin/admins", a.add)
	r.Delete("/admin/admins/{email}", a.remove)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	// the frontend hides admin entry points on any failure
	admin, err := a.service.IsCurrentAdmin(r.Context(), p)
	if err != nil {
		a.logger.Errorf("admin status refresh failed for %s: %v", p.ID, err)
		admin = false
	}

	httptypes.WriteData(w, http.StatusOK, StatusResponse{IsAdmin: admin})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	admins, err := a.service.List(r.Context())
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, admins)
}

func (a *API) add(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req AddAdminRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	added, err := a.service.Add(r.Context(), p, req.Email)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, added)
}

func (a *API) remove(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		email = chi.URLParam(r, "email")
	}

	if err := a.service.Remove(r.Context(), p, email); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: "admin removed"})
}
