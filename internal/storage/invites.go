// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/velocityonboard/onboard-service/internal/types"
)

// activeFirst picks the active invite when a code was reused after an older one retired.
const activeFirst = "(status = 'active') DESC, created_at DESC"

func (s *Storage) CreateInvite(ctx context.Context, inv *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	var maxUses, expiresAt any
	if inv.MaxUses != nil {
		maxUses = *inv.MaxUses
	}
	if inv.ExpiresAt != nil {
		expiresAt = *inv.ExpiresAt
	}

	row := s.db.Statement(ctx).
		Insert(invitesTable).
		Columns("id", "agency_id", "code", "role", "status", "max_uses", "uses", "expires_at", "created_by").
		Values(id.String(), inv.AgencyID, inv.Code, inv.Role.String(), string(types.InviteActive), maxUses, 0, expiresAt, inv.CreatedBy).
		Suffix("RETURNING " + columnList(inviteColumns)).
		QueryRowContext(ctx)

	created, err := scanInvite(row)
	if err != nil {
		return nil, wrapWriteError(err, "insert invite")
	}

	return created, nil
}

func (s *Storage) GetInviteByCode(ctx context.Context, code string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByCode")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(inviteColumns...).
		From(invitesTable).
		Where(sq.Eq{"code": code}).
		OrderBy(activeFirst).
		Limit(1).
		QueryRowContext(ctx)

	return s.scanOneInvite(row)
}

func (s *Storage) GetInviteByID(ctx context.Context, id string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByID")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := s.db.Statement(ctx).
		Select(inviteColumns...).
		From(invitesTable).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	return s.scanOneInvite(row)
}

func (s *Storage) scanOneInvite(row sq.RowScanner) (*types.Invite, error) {
	inv, err := scanInvite(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	return inv, nil
}

func (s *Storage) ListInvitesByAgencyID(ctx context.Context, agencyID string) ([]*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListInvitesByAgencyID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(inviteColumns...).
		From(invitesTable).
		Where(sq.Eq{"agency_id": agencyID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	invites := make([]*types.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invites, nil
}

// DisableInvite retires an active invite; retired invites are left as they are.
func (s *Storage) DisableInvite(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DisableInvite")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(invitesTable).
		Set("status", string(types.InviteDisabled)).
		Where(sq.Eq{"id": id, "status": string(types.InviteActive)}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to disable invite: %w", err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		if _, err := s.GetInviteByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// RedeemInvite consumes one use of the invite identified by code for p.
//
// The invite row is locked for the whole transaction, so check sees the
// latest uses count and concurrent redemptions of the same code are applied
// one at a time. A principal that is already a member of the agency gets a
// successful redemption with Created false, and no use is consumed.
func (s *Storage) RedeemInvite(ctx context.Context, code string, p types.Principal, check InviteCheck) (*types.Redemption, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RedeemInvite")
	defer span.End()

	var redemption *types.Redemption
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		row := s.db.Statement(ctx).
			Select(inviteColumns...).
			From(invitesTable).
			Where(sq.Eq{"code": code}).
			OrderBy(activeFirst).
			Limit(1).
			Suffix("FOR UPDATE").
			QueryRowContext(ctx)

		inv, err := s.scanOneInvite(row)
		if err != nil {
			return err
		}

		if err := check(inv); err != nil {
			return err
		}

		redemption = &types.Redemption{AgencyID: inv.AgencyID, Role: inv.Role}

		if _, err := s.GetMembership(ctx, inv.AgencyID, p.ID); err == nil {
			return nil
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		if inv.Role == types.RoleOwner {
			res, err := s.db.Statement(ctx).
				Update(agenciesTable).
				Set("owner_user_id", p.ID).
				Set("pending_owner_email", nil).
				Set("updated_at", sq.Expr("now()")).
				Where(sq.Eq{"id": inv.AgencyID}).
				Where(sq.Or{sq.Eq{"owner_user_id": nil}, sq.Eq{"owner_user_id": p.ID}}).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("failed to assign agency owner: %w", err)
			}
			if n, err := res.RowsAffected(); err != nil {
				return fmt.Errorf("failed to check rows affected: %w", err)
			} else if n == 0 {
				return types.ErrOwnerTaken
			}
		}

		// the invite lock does not cover the membership row, a concurrent
		// redemption of another invite of the same agency may insert it first
		res, err := s.db.Statement(ctx).
			Insert(membershipsTable).
			Columns("agency_id", "user_id", "user_email", "role", "progress").
			Values(inv.AgencyID, p.ID, nullable(p.NormalizedEmail()), inv.Role.String(), 0).
			Suffix("ON CONFLICT (agency_id, user_id) DO NOTHING").
			ExecContext(ctx)
		if err != nil {
			return wrapWriteError(err, "insert membership")
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		} else if n == 0 {
			return nil
		}

		update := s.db.Statement(ctx).
			Update(invitesTable).
			Set("uses", sq.Expr("uses + 1"))
		if inv.MaxUses != nil && inv.Uses+1 >= *inv.MaxUses {
			update = update.Set("status", string(types.InviteUsed))
		}
		if _, err := update.Where(sq.Eq{"id": inv.ID}).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to consume invite: %w", err)
		}

		redemption.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return redemption, nil
}
