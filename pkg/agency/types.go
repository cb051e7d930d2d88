// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"regexp"
	"strings"

	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/theme"
)

const (
	StatusAssigned = "assigned"
	StatusPending  = "pending"
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify trims and lowercases s and replaces whitespace runs with dashes.
func Slugify(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// Input carries the editable agency fields.
type Input struct {
	Name        string            `json:"name" validate:"omitempty,max=120"`
	Slug        string            `json:"slug" validate:"omitempty,max=80"`
	LogoURL     string            `json:"logo_url" validate:"omitempty,max=2048"`
	Theme       types.ThemeTokens `json:"theme"`
	IsPublic    bool              `json:"is_public"`
	PublicSlug  string            `json:"public_slug" validate:"omitempty,max=80"`
	LegalName   string            `json:"legal_name" validate:"omitempty,max=200"`
	CalendlyURL string            `json:"calendly_url" validate:"omitempty,url"`
}

func (in *Input) agency() *types.Agency {
	return &types.Agency{
		Name:        strings.TrimSpace(in.Name),
		Slug:        Slugify(in.Slug),
		LogoURL:     strings.TrimSpace(in.LogoURL),
		Theme:       theme.Normalize(in.Theme).Tokens(),
		IsPublic:    in.IsPublic,
		PublicSlug:  Slugify(in.PublicSlug),
		LegalName:   strings.TrimSpace(in.LegalName),
		CalendlyURL: strings.TrimSpace(in.CalendlyURL),
	}
}

type ProvisionInput struct {
	Input
	OwnerEmail string `json:"owner_email" validate:"required,email"`
}

// ProvisionResult reports whether the owner was bound immediately or is
// expected to claim the agency on first login.
type ProvisionResult struct {
	Agency       *types.Agency `json:"agency"`
	Status       string        `json:"status"`
	RecoveryLink string        `json:"recovery_link,omitempty"`
	RecoveryCode string        `json:"recovery_code,omitempty"`
}

// PublicAgency is what the public tenant page renders.
type PublicAgency struct {
	Name         string            `json:"name"`
	PublicSlug   string            `json:"public_slug"`
	LogoURL      string            `json:"logo_url,omitempty"`
	Theme        theme.Theme       `json:"theme"`
	CSSVariables map[string]string `json:"css_variables"`
	LegalName    string            `json:"legal_name"`
	CalendlyURL  string            `json:"calendly_url,omitempty"`
}
