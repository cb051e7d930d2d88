// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"context"
	"errors"
	"strings"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/theme"
)

// ownerEditable are the columns an owner may change on their own agency.
var ownerEditable = []string{"name", "slug", "logo_url", "theme", "legal_name", "calendly_url"}

var (
	_ ServiceInterface      = (*Service)(nil)
	_ AdminServiceInterface = (*Service)(nil)
)

type Service struct {
	storage StorageInterface
	kratos  KratosClientInterface
	guard   GuardInterface

	defaultLegalName   string
	invitationLifetime string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	kratos KratosClientInterface,
	guard GuardInterface,
	defaultLegalName string,
	invitationLifetime string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:            storage,
		kratos:             kratos,
		guard:              guard,
		defaultLegalName:   defaultLegalName,
		invitationLifetime: invitationLifetime,
		tracer:             tracer,
		monitor:            monitor,
		logger:             logger,
	}
}

// GetMine returns the agency p owns, or else the first one p manages.
func (s *Service) GetMine(ctx context.Context, p types.Principal) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.GetMine")
	defer span.End()

	a, err := s.storage.GetAgencyByOwner(ctx, p.ID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, types.NewBackendError(err)
	}

	memberships, err := s.storage.ListMembershipsByUserID(ctx, p.ID)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	for _, m := range memberships {
		if !m.Role.ManagesAgency() {
			continue
		}

		a, err := s.storage.GetAgencyByID(ctx, m.AgencyID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, types.NewBackendError(err)
		}
		return a, nil
	}

	return nil, types.NewNotFoundError("no agency yet")
}

// UpsertMine updates the agency owned by p, creating it together with the
// owner membership when p owns none yet.
func (s *Service) UpsertMine(ctx context.Context, p types.Principal, in *Input) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.UpsertMine")
	defer span.End()

	a := in.agency()
	if a.Name == "" {
		return nil, types.NewValidationError("name is required")
	}
	if a.Slug == "" {
		a.Slug = Slugify(a.Name)
	}

	current, err := s.storage.GetAgencyByOwner(ctx, p.ID)
	switch {
	case err == nil:
		a.ID = current.ID
		updated, err := s.storage.UpdateAgency(ctx, a, ownerEditable)
		if err != nil {
			return nil, s.writeError(err)
		}
		return updated, nil
	case !errors.Is(err, storage.ErrNotFound):
		return nil, types.NewBackendError(err)
	}

	release, err := s.guard.Acquire(ctx, inflight.Key("agency.create", p.ID))
	if err != nil {
		return nil, err
	}
	defer release()

	a.IsPublic = false
	a.PublicSlug = ""

	created, err := s.storage.CreateAgencyWithOwner(ctx, a, p)
	if err != nil {
		return nil, s.writeError(err)
	}

	s.logger.Infof("agency %s created by %s", created.ID, p.ID)

	return created, nil
}

// SetPublished toggles the public page of the agency owned by p. An empty
// publicSlug keeps the current one, falling back to the agency slug.
func (s *Service) SetPublished(ctx context.Context, p types.Principal, public bool, publicSlug string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.SetPublished")
	defer span.End()

	current, err := s.storage.GetAgencyByOwner(ctx, p.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NewNotFoundError("no agency yet")
		}
		return nil, types.NewBackendError(err)
	}

	slug := Slugify(publicSlug)
	if slug == "" {
		slug = current.PublicSlug
	}
	if slug == "" {
		slug = current.Slug
	}

	updated, err := s.storage.UpdateAgency(ctx, &types.Agency{ID: current.ID, IsPublic: public, PublicSlug: slug}, []string{"is_public", "public_slug"})
	if err != nil {
		return nil, s.writeError(err)
	}

	return updated, nil
}

// ListMembers lists the members of the agency p manages.
func (s *Service) ListMembers(ctx context.Context, p types.Principal) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.ListMembers")
	defer span.End()

	a, err := s.GetMine(ctx, p)
	if err != nil {
		return nil, err
	}

	members, err := s.storage.ListMembersByAgencyID(ctx, a.ID)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return members, nil
}

func (s *Service) ListMyMemberships(ctx context.Context, p types.Principal) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.ListMyMemberships")
	defer span.End()

	memberships, err := s.storage.ListMembershipsByUserID(ctx, p.ID)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return memberships, nil
}

// ResolvePublic returns the public snapshot for publicSlug. Unknown,
// unpublished and suspended agencies are all reported as unavailable.
func (s *Service) ResolvePublic(ctx context.Context, publicSlug string) (*PublicAgency, error) {
	ctx, span := s.tracer.Start(ctx, "agency.Service.ResolvePublic")
	defer span.End()

	slug := strings.ToLower(strings.TrimSpace(publicSlug))
	if slug == "" {
		return nil, types.ErrAgencyUnavailable
	}

	a, err := s.storage.GetPublicAgency(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrAgencyUnavailable
		}
		return nil, types.NewBackendError(err)
	}

	if !a.IsPublic || a.Suspended || a.PublicSlug != slug {
		return nil, types.ErrAgencyUnavailable
	}

	t := theme.Normalize(a.Theme)

	legalName := a.LegalName
	if legalName == "" {
		legalName = s.defaultLegalName
	}

	return &PublicAgency{
		Name:         a.Name,
		PublicSlug:   a.PublicSlug,
		LogoURL:      a.LogoURL,
		Theme:        t,
		CSSVariables: t.CSSVariables(),
		LegalName:    legalName,
		CalendlyURL:  a.CalendlyURL,
	}, nil
}

// writeError turns constraint violations into messages a user can act on.
func (s *Service) writeError(err error) error {
	var e *types.Error
	switch {
	case errors.As(err, &e):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return types.NewNotFoundError("agency not found")
	case errors.Is(err, storage.ErrDuplicateKey) && strings.Contains(err.Error(), "public_slug"):
		return types.NewValidationError("public slug already taken")
	case errors.Is(err, storage.ErrDuplicateKey):
		return types.NewValidationError("slug already taken")
	}

	s.logger.Errorf("agency write failed: %v", err)
	return types.NewBackendError(err)
}
