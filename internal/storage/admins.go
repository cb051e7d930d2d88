// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/velocityonboard/onboard-service/internal/types"
)

func (s *Storage) IsAdmin(ctx context.Context, email string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IsAdmin")
	defer span.End()

	email = types.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	var exists bool
	err := s.db.Statement(ctx).
		Select("1").
		Prefix("SELECT EXISTS (").
		From(adminsTable).
		Where(sq.Eq{"email": email}).
		Suffix(")").
		QueryRowContext(ctx).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check admin allowlist: %w", err)
	}

	return exists, nil
}

func (s *Storage) ListAdmins(ctx context.Context) ([]*types.AdminUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAdmins")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("email", "created_at").
		From(adminsTable).
		OrderBy("email").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	admins := make([]*types.AdminUser, 0)
	for rows.Next() {
		var a types.AdminUser
		if err := rows.Scan(&a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return admins, nil
}

// AddAdmin is idempotent: adding a listed email returns the existing entry.
func (s *Storage) AddAdmin(ctx context.Context, email string) (*types.AdminUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddAdmin")
	defer span.End()

	var a types.AdminUser
	err := s.db.Statement(ctx).
		Insert(adminsTable).
		Columns("email").
		Values(types.NormalizeEmail(email)).
		Suffix("ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email RETURNING email, created_at").
		QueryRowContext(ctx).
		Scan(&a.Email, &a.CreatedAt)
	if err != nil {
		return nil, wrapWriteError(err, "add admin")
	}

	return &a, nil
}

func (s *Storage) RemoveAdmin(ctx context.Context, email string) error {
	ctx, span := s.tracer.Start(ctx, "storage.RemoveAdmin")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete(adminsTable).
		Where(sq.Eq{"email": types.NormalizeEmail(email)}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove admin: %w", err)
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
