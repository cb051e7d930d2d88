// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"context"
	"errors"
	"time"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

const (
	defaultLifetimeDays = 7
	maxCodeAttempts     = 5
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	guard      GuardInterface
	codeLength int
	now        func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	guard GuardInterface,
	codeLength int,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		guard:      guard,
		codeLength: codeLength,
		now:        time.Now,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// Create issues a new active invite for agencyID.
//
// Admins may issue any role, owners may issue manager and agent invites and
// managers may only issue agent invites.
func (s *Service) Create(ctx context.Context, p types.Principal, agencyID string, role types.Role, maxUses, days int) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invite.Service.Create")
	defer span.End()

	if !role.Valid() {
		return nil, types.NewValidationError("role must be one of: owner, manager, agent")
	}

	release, err := s.guard.Acquire(ctx, inflight.Key("invite.create", p.ID, agencyID))
	if err != nil {
		return nil, err
	}
	defer release()

	a, err := s.agency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	admin := s.isAdmin(ctx, p)
	callerRole, err := s.roleIn(ctx, a, p)
	if err != nil {
		return nil, err
	}

	if !admin && !canIssue(callerRole, role) {
		s.logger.Security().AuthzFailure(p.ID, "invite:"+a.ID)
		return nil, types.ErrNotAuthorized
	}

	uses := max(1, maxUses)
	if days == 0 {
		days = defaultLifetimeDays
	}
	expiresAt := s.now().Add(time.Duration(max(1, days)) * 24 * time.Hour)

	inv := &types.Invite{
		AgencyID:  a.ID,
		Role:      role,
		MaxUses:   &uses,
		ExpiresAt: &expiresAt,
		CreatedBy: p.ID,
	}

	for range maxCodeAttempts {
		code, err := GenerateCode(s.codeLength)
		if err != nil {
			return nil, types.NewBackendError(err)
		}
		inv.Code = code

		created, err := s.storage.CreateInvite(ctx, inv)
		if err == nil {
			s.logger.Infof("invite %s created for agency %s by %s", created.ID, a.ID, p.ID)
			return created, nil
		}

		if !errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Errorf("failed to create invite: %v", err)
			return nil, types.NewBackendError(err)
		}

		s.logger.Debugf("invite code collision, retrying")
	}

	return nil, types.NewConflictError("could not allocate a unique invite code, try again")
}

// Disable retires an invite. Its creator, the agency owner and admins may do so.
func (s *Service) Disable(ctx context.Context, p types.Principal, inviteID string) error {
	ctx, span := s.tracer.Start(ctx, "invite.Service.Disable")
	defer span.End()

	inv, err := s.storage.GetInviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.NewNotFoundError("invite not found")
		}
		return types.NewBackendError(err)
	}

	if inv.CreatedBy != p.ID && !s.isAdmin(ctx, p) {
		a, err := s.agency(ctx, inv.AgencyID)
		if err != nil {
			return err
		}

		role, err := s.roleIn(ctx, a, p)
		if err != nil {
			return err
		}

		if role != types.RoleOwner {
			s.logger.Security().AuthzFailure(p.ID, "invite:"+inv.ID)
			return types.ErrNotAuthorized
		}
	}

	if err := s.storage.DisableInvite(ctx, inv.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.NewNotFoundError("invite not found")
		}
		return types.NewBackendError(err)
	}

	return nil
}

// List returns the invites of an agency to its owner, its managers and admins.
func (s *Service) List(ctx context.Context, p types.Principal, agencyID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invite.Service.List")
	defer span.End()

	a, err := s.agency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if !s.isAdmin(ctx, p) {
		role, err := s.roleIn(ctx, a, p)
		if err != nil {
			return nil, err
		}

		if !role.ManagesAgency() {
			s.logger.Security().AuthzFailure(p.ID, "invites:"+a.ID)
			return nil, types.ErrNotAuthorized
		}
	}

	invites, err := s.storage.ListInvitesByAgencyID(ctx, a.ID)
	if err != nil {
		return nil, types.NewBackendError(err)
	}

	return invites, nil
}

// Redeem turns code into a membership of its agency for p.
//
// Validation runs inside the storage transaction against the locked invite,
// so concurrent redemptions never consume more uses than the invite allows.
func (s *Service) Redeem(ctx context.Context, p types.Principal, code string, wantRole types.Role) (*types.Redemption, error) {
	ctx, span := s.tracer.Start(ctx, "invite.Service.Redeem")
	defer span.End()

	code = NormalizeCode(code)
	if code == "" {
		s.countRedemption(types.ErrInviteNotFound, nil)
		return nil, types.ErrInviteNotFound
	}

	release, err := s.guard.Acquire(ctx, inflight.Key("invite.redeem", p.ID, code))
	if err != nil {
		return nil, err
	}
	defer release()

	r, err := s.storage.RedeemInvite(ctx, code, p, func(inv *types.Invite) error {
		return Check(inv, s.now(), wantRole)
	})
	if errors.Is(err, storage.ErrNotFound) {
		err = types.ErrInviteNotFound
	}

	s.countRedemption(err, r)

	if err != nil {
		var e *types.Error
		if !errors.As(err, &e) {
			s.logger.Errorf("failed to redeem invite: %v", err)
			return nil, types.NewBackendError(err)
		}
		s.logger.Debugf("invite redemption rejected for %s: %v", p.ID, err)
		return nil, err
	}

	if r.Created {
		s.logger.Infof("principal %s joined agency %s as %s", p.ID, r.AgencyID, r.Role)
	}

	return r, nil
}

// Peek validates code without consuming it.
func (s *Service) Peek(ctx context.Context, code string, wantRole types.Role) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "invite.Service.Peek")
	defer span.End()

	code = NormalizeCode(code)
	if code == "" {
		return nil, types.ErrInviteNotFound
	}

	inv, err := s.storage.GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrInviteNotFound
		}
		return nil, types.NewBackendError(err)
	}

	if err := Check(inv, s.now(), wantRole); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) agency(ctx context.Context, id string) (*types.Agency, error) {
	a, err := s.storage.GetAgencyByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.NewNotFoundError("agency not found")
		}
		return nil, types.NewBackendError(err)
	}
	return a, nil
}

// isAdmin fails closed: a failed lookup counts as not an admin.
func (s *Service) isAdmin(ctx context.Context, p types.Principal) bool {
	ok, err := s.storage.IsAdmin(ctx, p.Email)
	if err != nil {
		s.logger.Errorf("failed to check admin allowlist: %v", err)
		return false
	}
	return ok
}

// roleIn returns the role of p in a, or an empty role for non members.
func (s *Service) roleIn(ctx context.Context, a *types.Agency, p types.Principal) (types.Role, error) {
	if a.OwnerUserID != "" && a.OwnerUserID == p.ID {
		return types.RoleOwner, nil
	}

	m, err := s.storage.GetMembership(ctx, a.ID, p.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", types.NewBackendError(err)
	}

	return m.Role, nil
}

func (s *Service) countRedemption(err error, r *types.Redemption) {
	outcome := "error"
	switch {
	case err == nil && r != nil && r.Created:
		outcome = "created"
	case err == nil:
		outcome = "existing"
	case errors.Is(err, types.ErrInviteNotFound):
		outcome = "not_found"
	case errors.Is(err, types.ErrInviteInactive):
		outcome = "inactive"
	case errors.Is(err, types.ErrInviteExpired):
		outcome = "expired"
	case errors.Is(err, types.ErrInviteExhausted):
		outcome = "exhausted"
	case errors.Is(err, types.ErrInviteRoleMismatch):
		outcome = "role_mismatch"
	case errors.Is(err, types.ErrOwnerTaken):
		outcome = "owner_taken"
	}

	if err := s.monitor.IncInviteRedemption(map[string]string{"outcome": outcome}); err != nil {
		s.logger.Debugf("failed to record redemption metric: %v", err)
	}
}

func canIssue(issuer, role types.Role) bool {
	switch issuer {
	case types.RoleOwner:
		return role == types.RoleManager || role == types.RoleAgent
	case types.RoleManager:
		return role == types.RoleAgent
	case types.RoleAgent:
		return false
	}
	return false
}
