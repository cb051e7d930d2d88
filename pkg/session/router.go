// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package session decides where an authenticated principal lands.
package session

import (
	"context"
	"errors"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ RouterInterface = (*Router)(nil)

type Router struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewRouter(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Router {
	return &Router{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Route picks the console for p. Admins always land on the super console,
// even when they also own an agency; a failed admin lookup treats p as a
// regular user.
func (r *Router) Route(ctx context.Context, p types.Principal) types.Console {
	ctx, span := r.tracer.Start(ctx, "session.Router.Route")
	defer span.End()

	admin, err := r.storage.IsAdmin(ctx, p.Email)
	if err != nil {
		r.logger.Errorf("admin check failed for %s, routing as non admin: %v", p.ID, err)
	} else if admin {
		return types.ConsoleSuper
	}

	if r.managesAgency(ctx, p) {
		return types.ConsoleAgency
	}

	return types.ConsoleAgent
}

func (r *Router) managesAgency(ctx context.Context, p types.Principal) bool {
	memberships, err := r.storage.ListMembershipsByUserID(ctx, p.ID)
	if err != nil {
		r.logger.Errorf("failed to list memberships for %s: %v", p.ID, err)
	}

	for _, m := range memberships {
		switch m.Role {
		case types.RoleOwner, types.RoleManager:
			return true
		case types.RoleAgent:
		}
	}

	if _, err := r.storage.GetAgencyByOwner(ctx, p.ID); err == nil {
		return true
	} else if !errors.Is(err, storage.ErrNotFound) {
		r.logger.Errorf("failed to look up agency owned by %s: %v", p.ID, err)
	}

	return false
}
