// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/velocityonboard/onboard-service/internal/db"
	"github.com/velocityonboard/onboard-service/internal/types"
)

func (s *Storage) selectAgencies(ctx context.Context) sq.SelectBuilder {
	return s.db.Statement(ctx).Select(agencyColumns...).From(agenciesTable)
}

// CreateAgencyWithOwner inserts the agency and its owner membership atomically.
func (s *Storage) CreateAgencyWithOwner(ctx context.Context, a *types.Agency, owner types.Principal) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAgencyWithOwner")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency ID: %w", err)
	}

	theme, err := encodeTheme(a.Theme)
	if err != nil {
		return nil, err
	}

	var created *types.Agency
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		row := s.db.Statement(ctx).
			Insert(agenciesTable).
			Columns("id", "name", "slug", "owner_user_id", "logo_url", "theme", "legal_name", "calendly_url").
			Values(id.String(), a.Name, a.Slug, owner.ID, nullable(a.LogoURL), theme, nullable(a.LegalName), nullable(a.CalendlyURL)).
			Suffix("RETURNING " + columnList(agencyColumns)).
			QueryRowContext(ctx)

		created, err = scanAgency(row)
		if err != nil {
			return wrapWriteError(err, "insert agency")
		}

		return s.upsertOwnerMembership(ctx, created.ID, owner)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateAgency applies PATCH semantics: only the columns named in paths change.
func (s *Storage) UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateAgency")
	defer span.End()

	fields, err := agencyFields(a, paths)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.GetAgencyByID(ctx, a.ID)
	}

	row := s.db.Statement(ctx).
		Update(agenciesTable).
		SetMap(fields).
		Where(sq.Eq{"id": a.ID}).
		Suffix("RETURNING " + columnList(agencyColumns)).
		QueryRowContext(ctx)

	updated, err := scanAgency(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, wrapWriteError(err, "update agency")
	}

	return updated, nil
}

func (s *Storage) GetAgencyByID(ctx context.Context, id string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAgencyByID")
	defer span.End()

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	return s.getAgency(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetAgencyByOwner(ctx context.Context, userID string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetAgencyByOwner")
	defer span.End()

	return s.getAgency(ctx, sq.Eq{"owner_user_id": userID})
}

// GetPublicAgency only resolves agencies that are currently published and not suspended.
func (s *Storage) GetPublicAgency(ctx context.Context, publicSlug string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPublicAgency")
	defer span.End()

	return s.getAgency(ctx, sq.Eq{
		"public_slug": publicSlug,
		"is_public":   true,
		"suspended":   false,
	})
}

func (s *Storage) getAgency(ctx context.Context, where sq.Sqlizer) (*types.Agency, error) {
	row := s.selectAgencies(ctx).
		Where(where).
		OrderBy("created_at").
		Limit(1).
		QueryRowContext(ctx)

	a, err := scanAgency(row)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get agency: %w", err)
	}

	return a, nil
}

func (s *Storage) ListAgencies(ctx context.Context, page, size int64) ([]*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAgencies")
	defer span.End()

	pageSize := db.PageSize(size)

	rows, err := s.db.Statement(ctx).
		Select(append(prefixed("a", agencyColumns), "COUNT(m.user_id)")...).
		From(agenciesTable + " a").
		LeftJoin(membershipsTable + " m ON m.agency_id = a.id").
		GroupBy("a.id").
		OrderBy("a.created_at DESC").
		Limit(pageSize).
		Offset(db.Offset(page, pageSize)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}
	defer rows.Close()

	agencies := make([]*types.Agency, 0)
	for rows.Next() {
		var count int
		a, err := scanAgency(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agency: %w", err)
		}
		a.MemberCount = count
		agencies = append(agencies, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agency rows: %w", err)
	}

	return agencies, nil
}

func (s *Storage) SetAgencySuspended(ctx context.Context, id string, suspended bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetAgencySuspended")
	defer span.End()

	_, err := s.UpdateAgency(ctx, &types.Agency{ID: id, Suspended: suspended}, []string{"suspended"})
	return err
}

// ProvisionAgency upserts the agency keyed by slug and binds its owner in one transaction.
// With an ownerUserID the owner is assigned immediately, otherwise ownerEmail is
// recorded as pending. An agency already owned by someone else yields ErrOwnerTaken.
func (s *Storage) ProvisionAgency(ctx context.Context, a *types.Agency, ownerUserID, ownerEmail string) (*types.Agency, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ProvisionAgency")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate agency ID: %w", err)
	}

	ownerEmail = types.NormalizeEmail(ownerEmail)

	var provisioned *types.Agency
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		row := s.db.Statement(ctx).
			Insert(agenciesTable).
			Columns("id", "name", "slug").
			Values(id.String(), a.Name, a.Slug).
			Suffix("ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, updated_at = now() RETURNING " + columnList(agencyColumns)).
			QueryRowContext(ctx)

		// The upsert holds the row lock until commit, serialising concurrent
		// provisioning of the same slug.
		current, err := scanAgency(row)
		if err != nil {
			return wrapWriteError(err, "upsert agency")
		}

		switch {
		case current.OwnerUserID != "" && current.OwnerUserID != ownerUserID:
			return types.ErrOwnerTaken
		case current.OwnerUserID != "":
			provisioned = current
			return nil
		}

		update := s.db.Statement(ctx).Update(agenciesTable).Set("updated_at", sq.Expr("now()"))
		if ownerUserID != "" {
			update = update.Set("owner_user_id", ownerUserID).Set("pending_owner_email", nil)
		} else {
			update = update.Set("pending_owner_email", ownerEmail)
		}

		row = update.
			Where(sq.Eq{"id": current.ID}).
			Suffix("RETURNING " + columnList(agencyColumns)).
			QueryRowContext(ctx)

		provisioned, err = scanAgency(row)
		if err != nil {
			return wrapWriteError(err, "bind agency owner")
		}

		if ownerUserID == "" {
			return nil
		}

		return s.upsertOwnerMembership(ctx, provisioned.ID, types.Principal{ID: ownerUserID, Email: ownerEmail})
	})
	if err != nil {
		return nil, err
	}

	return provisioned, nil
}

// ClaimPendingAgencies converts pending ownership for the principal's email into
// real ownership. Running it again once everything is claimed changes nothing.
func (s *Storage) ClaimPendingAgencies(ctx context.Context, p types.Principal) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ClaimPendingAgencies")
	defer span.End()

	email := p.NormalizedEmail()
	if email == "" || p.ID == "" {
		return nil, nil
	}

	claimed := make([]string, 0)
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		rows, err := s.db.Statement(ctx).
			Select("id").
			From(agenciesTable).
			Where(sq.Expr("lower(pending_owner_email) = ?", email)).
			Where(sq.Eq{"owner_user_id": nil}).
			Suffix("FOR UPDATE").
			QueryContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to select pending agencies: %w", err)
		}

		var ids []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan pending agency: %w", err)
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating pending agencies: %w", err)
		}

		for _, id := range ids {
			if _, err := s.db.Statement(ctx).
				Update(agenciesTable).
				Set("owner_user_id", p.ID).
				Set("pending_owner_email", nil).
				Set("updated_at", sq.Expr("now()")).
				Where(sq.Eq{"id": id, "owner_user_id": nil}).
				ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to claim agency %s: %w", id, err)
			}

			if err := s.upsertOwnerMembership(ctx, id, p); err != nil {
				return err
			}
			claimed = append(claimed, id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (s *Storage) upsertOwnerMembership(ctx context.Context, agencyID string, owner types.Principal) error {
	_, err := s.db.Statement(ctx).
		Insert(membershipsTable).
		Columns("agency_id", "user_id", "user_email", "role", "progress").
		Values(agencyID, owner.ID, nullable(owner.NormalizedEmail()), types.RoleOwner.String(), 0).
		Suffix("ON CONFLICT (agency_id, user_id) DO UPDATE SET role = EXCLUDED.role").
		ExecContext(ctx)

	return wrapWriteError(err, "upsert owner membership")
}
