// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/velocityonboard/onboard-service/internal/types"
)

func (s *Storage) GetMembership(ctx context.Context, agencyID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(membershipColumns...).
		From(membershipsTable).
		Where(sq.Eq{"agency_id": agencyID, "user_id": userID}).
		QueryRowContext(ctx)

	m, err := scanMembership(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

func (s *Storage) ListMembersByAgencyID(ctx context.Context, agencyID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByAgencyID")
	defer span.End()

	return s.listMemberships(ctx, sq.Eq{"agency_id": agencyID})
}

func (s *Storage) ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembershipsByUserID")
	defer span.End()

	return s.listMemberships(ctx, sq.Eq{"user_id": userID})
}

func (s *Storage) listMemberships(ctx context.Context, where sq.Sqlizer) ([]*types.Membership, error) {
	rows, err := s.db.Statement(ctx).
		Select(membershipColumns...).
		From(membershipsTable).
		Where(where).
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	members := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// UpdateMemberRole changes a non-owner member's role; owner rows are left untouched.
func (s *Storage) UpdateMemberRole(ctx context.Context, agencyID, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update(membershipsTable).
		Set("role", role.String()).
		Where(sq.Eq{"agency_id": agencyID, "user_id": userID}).
		Where(sq.NotEq{"role": types.RoleOwner.String()}).
		ExecContext(ctx)
	if err != nil {
		return wrapWriteError(err, "update member")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) RemoveMember(ctx context.Context, agencyID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete(membershipsTable).
		Where(sq.Eq{"agency_id": agencyID, "user_id": userID}).
		Where(sq.NotEq{"role": types.RoleOwner.String()}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
