// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/velocityonboard/onboard-service/internal/db"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

const (
	agenciesTable    = "agencies"
	membershipsTable = "memberships"
	invitesTable     = "invites"
	adminsTable      = "admin_users"
)

var agencyColumns = []string{
	"id", "name", "slug", "owner_user_id", "pending_owner_email", "logo_url", "theme",
	"is_public", "public_slug", "legal_name", "calendly_url", "suspended", "created_at", "updated_at",
}

var membershipColumns = []string{"agency_id", "user_id", "user_email", "role", "progress", "created_at"}

var inviteColumns = []string{
	"id", "agency_id", "code", "role", "status", "max_uses", "uses", "created_at", "expires_at", "created_by",
}

// Storage is the PostgreSQL tenancy store.
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}

func prefixed(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

func scanAgency(row scanner, extra ...any) (*types.Agency, error) {
	var (
		a                                             types.Agency
		owner, pending, logo, publicSlug, legal, link sql.NullString
		theme                                         []byte
	)

	dest := []any{
		&a.ID, &a.Name, &a.Slug, &owner, &pending, &logo, &theme,
		&a.IsPublic, &publicSlug, &legal, &link, &a.Suspended, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	a.OwnerUserID = owner.String
	a.PendingOwnerEmail = pending.String
	a.LogoURL = logo.String
	a.PublicSlug = publicSlug.String
	a.LegalName = legal.String
	a.CalendlyURL = link.String

	a.Theme = types.ThemeTokens{}
	if len(theme) > 0 {
		if err := json.Unmarshal(theme, &a.Theme); err != nil {
			return nil, fmt.Errorf("failed to decode theme: %w", err)
		}
	}

	return &a, nil
}

func scanMembership(row scanner) (*types.Membership, error) {
	var (
		m     types.Membership
		email sql.NullString
	)

	if err := row.Scan(&m.AgencyID, &m.UserID, &email, &m.Role, &m.Progress, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.UserEmail = email.String

	return &m, nil
}

func scanInvite(row scanner) (*types.Invite, error) {
	var (
		inv     types.Invite
		maxUses sql.NullInt64
		expires sql.NullTime
	)

	if err := row.Scan(&inv.ID, &inv.AgencyID, &inv.Code, &inv.Role, &inv.Status, &maxUses, &inv.Uses, &inv.CreatedAt, &expires, &inv.CreatedBy); err != nil {
		return nil, err
	}

	if maxUses.Valid {
		n := int(maxUses.Int64)
		inv.MaxUses = &n
	}
	if expires.Valid {
		t := expires.Time
		inv.ExpiresAt = &t
	}

	return &inv, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func encodeTheme(t types.ThemeTokens) (string, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode theme: %w", err)
	}
	return string(b), nil
}

// agencyFields maps updatable paths onto column values.
func agencyFields(a *types.Agency, paths []string) (map[string]any, error) {
	fields := make(map[string]any)
	for _, p := range paths {
		switch p {
		case "name":
			fields["name"] = a.Name
		case "slug":
			fields["slug"] = a.Slug
		case "logo_url":
			fields["logo_url"] = nullable(a.LogoURL)
		case "theme":
			theme, err := encodeTheme(a.Theme)
			if err != nil {
				return nil, err
			}
			fields["theme"] = theme
		case "is_public":
			fields["is_public"] = a.IsPublic
		case "public_slug":
			fields["public_slug"] = nullable(a.PublicSlug)
		case "legal_name":
			fields["legal_name"] = nullable(a.LegalName)
		case "calendly_url":
			fields["calendly_url"] = nullable(a.CalendlyURL)
		case "suspended":
			fields["suspended"] = a.Suspended
		}
	}
	if len(fields) > 0 {
		fields["updated_at"] = sq.Expr("now()")
	}
	return fields, nil
}
