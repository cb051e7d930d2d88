// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

type PublishRequest struct {
	IsPublic   bool   `json:"is_public"`
	PublicSlug string `json:"public_slug" validate:"omitempty,max=80"`
}

// UpdateAgencyRequest mirrors a field mask update: only the columns listed
// in update_mask are written.
type UpdateAgencyRequest struct {
	Agency     Input    `json:"agency"`
	UpdateMask []string `json:"update_mask" validate:"required,min=1"`
}

type SuspendRequest struct {
	Suspended bool `json:"suspended"`
}

type MemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=manager agent"`
}

type API struct {
	service ServiceInterface
	admin   AdminServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, admin AdminServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		admin:   admin,
		logger:  logger,
	}
}

// RegisterPublicEndpoints mounts the unauthenticated tenant page lookup.
func (a *API) RegisterPublicEndpoints(r chi.Router) {
	r.Get("/public/agencies/{publicSlug}", a.resolvePublic)
}

// RegisterEndpoints mounts the owner routes; r must already authenticate requests.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/me/agency", a.getMine)
	r.Put("/me/agency", a.upsertMine)
	r.Post("/me/agency/publish", a.publish)
	r.Get("/me/agency/members", a.listMembers)
	r.Get("/me/memberships", a.listMyMemberships)
}

// RegisterAdminEndpoints mounts the operator routes; r must already require an admin.
func (a *API) RegisterAdminEndpoints(r chi.Router) {
	r.Get("/admin/agencies", a.listAll)
	r.Post("/admin/agencies", a.provision)
	r.Patch("/admin/agencies/{agencyID}", a.update)
	r.Post("/admin/agencies/{agencyID}/suspend", a.suspend)
	r.Get("/admin/agencies/{agencyID}/members", a.listAgencyMembers)
	r.Put("/admin/agencies/{agencyID}/members/{userID}", a.setMemberRole)
	r.Delete("/admin/agencies/{agencyID}/members/{userID}", a.removeMember)
}

func (a *API) resolvePublic(w http.ResponseWriter, r *http.Request) {
	public, err := a.service.ResolvePublic(r.Context(), chi.URLParam(r, "publicSlug"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, public)
}

func (a *API) getMine(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	agency, err := a.service.GetMine(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, agency)
}

func (a *API) upsertMine(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req Input
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	agency, err := a.service.UpsertMine(r.Context(), p, &req)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, agency)
}

func (a *API) publish(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req PublishRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	agency, err := a.service.SetPublished(r.Context(), p, req.IsPublic, req.PublicSlug)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, agency)
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	members, err := a.service.ListMembers(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, members)
}

func (a *API) listMyMemberships(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	memberships, err := a.service.ListMyMemberships(r.Context(), p)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, memberships)
}

func (a *API) listAll(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 0)

	agencies, err := a.admin.ListAll(r.Context(), page, size)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, agencies)
}

func (a *API) provision(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req ProvisionInput
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	result, err := a.admin.Provision(r.Context(), p, &req)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, result)
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req UpdateAgencyRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	agency, err := a.admin.Update(r.Context(), p, chi.URLParam(r, "agencyID"), &req.Agency, req.UpdateMask)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, agency)
}

func (a *API) suspend(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req SuspendRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	if err := a.admin.SetSuspended(r.Context(), p, chi.URLParam(r, "agencyID"), req.Suspended); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	msg := "agency resumed"
	if req.Suspended {
		msg = "agency suspended"
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: msg})
}

func (a *API) listAgencyMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.admin.ListAgencyMembers(r.Context(), chi.URLParam(r, "agencyID"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusOK, members)
}

func (a *API) setMemberRole(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req MemberRoleRequest
	if err := httptypes.Decode(r, &req); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	err := a.admin.SetMemberRole(r.Context(), p, chi.URLParam(r, "agencyID"), chi.URLParam(r, "userID"), types.Role(req.Role))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: "member updated"})
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	if err := a.admin.RemoveMember(r.Context(), p, chi.URLParam(r, "agencyID"), chi.URLParam(r, "userID")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, httptypes.Response{Status: http.StatusOK, Message: "member removed"})
}

func queryInt(r *http.Request, name string, fallback int64) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
