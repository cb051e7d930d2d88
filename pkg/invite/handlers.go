// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

type CreateInviteRequest struct {
	Role    string `json:"role" validate:"required,oneof=owner manager agent"`
	MaxUses int    `json:"max_uses" validate:"gte=0"`
	Days    int    `json:"days" validate:"gte=0"`
}

type RedeemInviteRequest struct {
	Code string `json:"code" validate:"required,max=64"`
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

// RegisterEndpoints mounts the invite routes; r must already authenticate requests.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/agencies/{agencyID}/invites", a.create)
	r.Get("/agencies/{agencyID}/invites", a.list)
	r.Post("/invites/{inviteID}/disable", a.disable)
	r.Post("/invites/redeem", a.redeem)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateInviteRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	inv, err := a.service.Create(r.Context(), p, chi.URLParam(r, "agencyID"), types.Role(req.Role), req.MaxUses, req.Days)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, inv)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	invites, err := a.service.List(r.Context(), p, chi.URLParam(r, "agencyID"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, invites)
}

func (a *API) disable(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	if err := a.service.Disable(r.Context(), p, chi.URLParam(r, "inviteID")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: "invite disabled"})
}

func (a *API) redeem(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req RedeemInviteRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	redemption, err := a.service.Redeem(r.Context(), p, req.Code, "")
	if err != nil {
		a.logger.Debugf("redeem failed for %s: %v", p.ID, err)
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, redemption)
}
