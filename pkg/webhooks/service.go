// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package webhooks serves the Kratos registration hook and the Hydra token hook.
package webhooks

import (
	"context"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	identities IdentityInterface
	reconciler ReconcilerInterface
	router     RouterInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	identities IdentityInterface,
	reconciler ReconcilerInterface,
	router RouterInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		identities: identities,
		reconciler: reconciler,
		router:     router,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// HandleRegistration claims whatever was provisioned for the new identity.
// Claim failures are left to the retries scheduled by the reconciler.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	email = types.NormalizeEmail(email)
	if identityID == "" || email == "" {
		return types.NewValidationError("identity id and email are required")
	}

	s.logger.Debugf("registration hook for identity %s", identityID)

	claimed := s.reconciler.Reconcile(ctx, types.Principal{ID: identityID, Email: email})
	if len(claimed) > 0 {
		s.logger.Infof("identity %s claimed agencies %v on registration", identityID, claimed)
	}

	return nil
}

// HandleTokenHook adds the subject's agencies and console to the issued tokens.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil || req.Session.DefaultSession.Subject == "" {
		return nil, types.NewValidationError("token hook session has no subject")
	}

	p, err := s.principal(ctx, req.Session.DefaultSession.Subject)
	if err != nil {
		return nil, err
	}

	s.reconciler.Reconcile(ctx, p)

	memberships, err := s.storage.ListMembershipsByUserID(ctx, p.ID)
	if err != nil {
		return nil, types.NewBackendError(fmt.Errorf("failed to list memberships: %w", err))
	}

	claims := Claims{"console": string(s.router.Route(ctx, p))}
	if len(memberships) > 0 {
		agencies := make([]string, 0, len(memberships))
		for _, m := range memberships {
			agencies = append(agencies, m.AgencyID)
		}
		claims["agencies"] = agencies
	}

	s.logger.Debugf("token hook for %s: %v", p.ID, claims)

	resp := new(TokenHookResponse)
	resp.Session.IDToken = claims
	resp.Session.AccessToken = claims

	return resp, nil
}

func (s *Service) principal(ctx context.Context, subject string) (types.Principal, error) {
	identity, err := s.identities.GetIdentity(ctx, subject)
	if err != nil {
		return types.Principal{}, types.NewBackendError(err)
	}

	p := types.Principal{ID: identity.GetId()}
	if traits, ok := identity.GetTraits().(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			p.Email = types.NormalizeEmail(email)
		}
	}

	return p, nil
}
