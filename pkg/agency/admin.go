// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"context"
	"errors"
	"slices"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var adminEditable = []string{"name", "slug", "logo_url", "theme", "is_public", "public_slug", "legal_name", "calendly_url"}

// Provision creates or updates the agency keyed by its slug and binds it to
// the owner email. An existing identity becomes the owner straight away;
// otherwise the agency waits for that email to sign in, and a recovery link
// is issued for a freshly created identity.
func (s *Service) Provision(ctx context.Context, p types.Principal, in *ProvisionInput) (*ProvisionResult, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.Provision")
	defer span.End()

	a := in.agency()
	if a.Name == "" {
		return nil, types.NewValidationError("name is required")
	}
	if a.Slug == "" {
		a.Slug = Slugify(a.Name)
	}
	if a.IsPublic && a.PublicSlug == "" {
		a.PublicSlug = a.Slug
	}

	email := types.NormalizeEmail(in.OwnerEmail)
	if email == "" {
		return nil, types.NewValidationError("owner_email is required")
	}

	release, err := s.guard.Acquire(ctx, inflight.Key("agency.provision", a.Slug))
	if err != nil {
		return nil, err
	}
	defer release()

	identityID, err := s.kratos.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		s.logger.Errorf("failed to look up identity for %s: %v", email, err)
		return nil, types.NewBackendError(err)
	}

	provisioned, err := s.storage.ProvisionAgency(ctx, a, identityID, email)
	if err != nil {
		return nil, s.writeError(err)
	}

	a.ID = provisioned.ID
	if provisioned, err = s.storage.UpdateAgency(ctx, a, s.provisionPaths(in)); err != nil {
		return nil, s.writeError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "agency_provision", logging.WithContext("agency", provisioned.ID))

	result := &ProvisionResult{Agency: provisioned, Status: StatusAssigned}
	if provisioned.OwnerUserID != "" {
		return result, nil
	}
	result.Status = StatusPending

	// the agency stays pending until the new identity signs in and claims it
	if identityID, err = s.kratos.CreateIdentity(ctx, email); err != nil {
		s.logger.Errorf("failed to create identity for %s: %v", email, err)
		return nil, types.NewBackendError(err)
	}
	s.logger.Security().UserCreated(identityID)

	link, code, err := s.kratos.CreateRecoveryLink(ctx, identityID, s.invitationLifetime)
	if err != nil {
		s.logger.Errorf("failed to create recovery link: %v", err)
		return nil, types.NewBackendError(err)
	}

	result.RecoveryLink = link
	result.RecoveryCode = code

	return result, nil
}

func (s *Service) provisionPaths(in *ProvisionInput) []string {
	paths := []string{"theme", "is_public"}
	if in.LogoURL != "" {
		paths = append(paths, "logo_url")
	}
	if in.LegalName != "" {
		paths = append(paths, "legal_name")
	}
	if in.CalendlyURL != "" {
		paths = append(paths, "calendly_url")
	}
	if in.IsPublic || in.PublicSlug != "" {
		paths = append(paths, "public_slug")
	}
	return paths
}

func (s *Service) ListAll(ctx context.Context, page, size int64) ([]*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.ListAll")
	defer span.End()

	agencies, err := s.storage.ListAgencies(ctx, page, size)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return agencies, nil
}

// Update applies the fields named in paths to agency id.
func (s *Service) Update(ctx context.Context, p types.Principal, id string, in *Input, paths []string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.Update")
	defer span.End()

	if len(paths) == 0 {
		return nil, types.NewValidationError("no fields to update")
	}

	for _, path := range paths {
		if !slices.Contains(adminEditable, path) {
			return nil, types.NewValidationError("unknown field " + path)
		}
	}

	a := in.agency()
	a.ID = id

	if slices.Contains(paths, "name") && a.Name == "" {
		return nil, types.NewValidationError("name is required")
	}
	if slices.Contains(paths, "slug") && a.Slug == "" {
		return nil, types.NewValidationError("slug is required")
	}

	updated, err := s.storage.UpdateAgency(ctx, a, paths)
	if err != nil {
		return nil, s.writeError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "agency_update", logging.WithContext("agency", id))

	return updated, nil
}

func (s *Service) SetSuspended(ctx context.Context, p types.Principal, id string, suspended bool) error {
	ctx, span := s.tracer.Start(ctx, "agency.Service.SetSuspended")
	defer span.End()

	if err := s.storage.SetAgencySuspended(ctx, id, suspended); err != nil {
		return s.writeError(err)
	}

	action := "agency_resume"
	if suspended {
		action = "agency_suspend"
	}
	s.logger.Security().AuthzAdmin(p.ID, action, logging.WithContext("agency", id))

	return nil
}

func (s *Service) ListAgencyMembers(ctx context.Context, id string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.ListAgencyMembers")
	defer span.End()

	if _, err := s.storage.GetAgencyByID(ctx, id); err != nil {
		return nil, s.writeError(err)
	}

	members, err := s.storage.ListMembersByAgencyID(ctx, id)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return members, nil
}

// SetMemberRole switches a member between manager and agent. The owner
// membership cannot be changed this way.
func (s *Service) SetMemberRole(ctx context.Context, p types.Principal, agencyID, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "agency.Service.SetMemberRole")
	defer span.End()

	switch role {
	case types.RoleManager, types.RoleAgent:
	case types.RoleOwner:
		return types.NewValidationError("ownership cannot be assigned as a member role")
	default:
		return types.NewValidationError("role must be one of: manager, agent")
	}

	if err := s.storage.UpdateMemberRole(ctx, agencyID, userID, role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.NewNotFoundError("member not found")
		}
		return types.NewBackendError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "member_role", logging.WithContext("agency", agencyID), logging.WithContext("member", userID))

	return nil
}

// RemoveMember drops a non owner member from an agency.
func (s *Service) RemoveMember(ctx context.Context, p types.Principal, agencyID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "agency.Service.RemoveMember")
	defer span.End()

	if err := s.storage.RemoveMember(ctx, agencyID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.NewNotFoundError("member not found")
		}
		return types.NewBackendError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "member_remove", logging.WithContext("agency", agencyID), logging.WithContext("member", userID))

	return nil
}
