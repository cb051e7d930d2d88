// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

// Principal is an authenticated identity as issued by the identity provider.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NormalizedEmail returns the lowercased, trimmed email used for comparisons.
func (p Principal) NormalizedEmail() string {
	return NormalizeEmail(p.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ThemeTokens is the raw, possibly partial branding record stored with an agency.
type ThemeTokens map[string]any

type Agency struct {
	ID                string      `db:"id" json:"id"`
	Name              string      `db:"name" json:"name"`
	Slug              string      `db:"slug" json:"slug"`
	OwnerUserID       string      `db:"owner_user_id" json:"owner_user_id,omitempty"`
	PendingOwnerEmail string      `db:"pending_owner_email" json:"pending_owner_email,omitempty"`
	LogoURL           string      `db:"logo_url" json:"logo_url,omitempty"`
	Theme             ThemeTokens `db:"theme" json:"theme"`
	IsPublic          bool        `db:"is_public" json:"is_public"`
	PublicSlug        string      `db:"public_slug" json:"public_slug,omitempty"`
	LegalName         string      `db:"legal_name" json:"legal_name,omitempty"`
	CalendlyURL       string      `db:"calendly_url" json:"calendly_url,omitempty"`
	Suspended         bool        `db:"suspended" json:"suspended"`
	CreatedAt         time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time   `db:"updated_at" json:"updated_at"`

	// MemberCount is only populated by admin listings.
	MemberCount int `db:"-" json:"member_count,omitempty"`
}

// Pending reports whether the agency is waiting for its owner to claim it.
func (a *Agency) Pending() bool {
	return a.OwnerUserID == "" && a.PendingOwnerEmail != ""
}

type Membership struct {
	AgencyID  string    `db:"agency_id" json:"agency_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	UserEmail string    `db:"user_email" json:"user_email,omitempty"`
	Role      Role      `db:"role" json:"role"`
	Progress  int       `db:"progress" json:"progress"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Invite struct {
	ID        string       `db:"id" json:"id"`
	AgencyID  string       `db:"agency_id" json:"agency_id"`
	Code      string       `db:"code" json:"code"`
	Role      Role         `db:"role" json:"role"`
	Status    InviteStatus `db:"status" json:"status"`
	MaxUses   *int         `db:"max_uses" json:"max_uses,omitempty"`
	Uses      int          `db:"uses" json:"uses"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	ExpiresAt *time.Time   `db:"expires_at" json:"expires_at,omitempty"`
	CreatedBy string       `db:"created_by" json:"created_by"`
}

// Exhausted reports whether the invite has no uses left.
func (i *Invite) Exhausted() bool {
	return i.MaxUses != nil && i.Uses >= *i.MaxUses
}

type AdminUser struct {
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Redemption is the outcome of turning an invite code into a membership.
type Redemption struct {
	AgencyID string `json:"agency_id"`
	Role     Role   `json:"role"`
	// Created is false when the principal was already a member of the agency.
	Created bool `json:"created"`
}
