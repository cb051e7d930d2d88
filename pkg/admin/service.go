// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"context"
	"errors"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// IsCurrentAdmin reports whether the email of p is on the allowlist.
func (s *Service) IsCurrentAdmin(ctx context.Context, p types.Principal) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.IsCurrentAdmin")
	defer span.End()

	ok, err := s.storage.IsAdmin(ctx, p.Email)
	if err != nil {
		return false, types.NewBackendError(err)
	}

	return ok, nil
}

func (s *Service) List(ctx context.Context) ([]*types.AdminUser, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.List")
	defer span.End()

	admins, err := s.storage.ListAdmins(ctx)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return admins, nil
}

func (s *Service) Add(ctx context.Context, p types.Principal, email string) (*types.AdminUser, error) {
	ctx, span := s.tracer.Start(ctx, "admin.Service.Add")
	defer span.End()

	email = types.NormalizeEmail(email)
	if email == "" {
		return nil, types.NewValidationError("email is required")
	}

	a, err := s.storage.AddAdmin(ctx, email)
	if err != nil {
		s.logger.Errorf("failed to add admin: %v", err)
		return nil, types.NewBackendError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "admin_add", logging.WithContext("target", email))

	return a, nil
}

// Remove drops email from the allowlist. Admins cannot remove themselves.
func (s *Service) Remove(ctx context.Context, p types.Principal, email string) error {
	ctx, span := s.tracer.Start(ctx, "admin.Service.Remove")
	defer span.End()

	email = types.NormalizeEmail(email)
	if email == "" {
		return types.NewValidationError("email is required")
	}

	if email == p.NormalizedEmail() {
		return types.NewValidationError("you cannot remove yourself from the admin list")
	}

	if err := s.storage.RemoveAdmin(ctx, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.NewNotFoundError("admin not found")
		}
		s.logger.Errorf("failed to remove admin: %v", err)
		return types.NewBackendError(err)
	}

	s.logger.Security().AuthzAdmin(p.ID, "admin_remove", logging.WithContext("target", email))

	return nil
}
