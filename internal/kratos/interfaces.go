// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	ory "github.com/ory/client-go"

	"github.com/velocityonboard/onboard-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package kratos -destination ./mock_kratos.go -source=./interfaces.go

// AdminClientInterface covers the identity management calls used by operators.
type AdminClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

// AuthClientInterface covers the self-service flows performed on behalf of a user.
type AuthClientInterface interface {
	SignUp(ctx context.Context, email, password string) (*AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	WhoAmI(ctx context.Context, sessionToken string) (*types.Principal, error)
	UpdatePassword(ctx context.Context, sessionToken, password string) error
}

type ClientInterface interface {
	AdminClientInterface
	AuthClientInterface
}
