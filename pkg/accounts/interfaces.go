// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/kratos"
	"github.com/velocityonboard/onboard-service/internal/types"
)

type ServiceInterface interface {
	AgentSignup(ctx context.Context, in *SignupInput) (*Result, error)
	AgentLogin(ctx context.Context, in *LoginInput) (*Result, error)
	AgencySignup(ctx context.Context, in *SignupInput) (*Result, error)
	AgencyLogin(ctx context.Context, in *LoginInput) (*Result, error)
	SetPassword(ctx context.Context, p types.Principal, sessionToken string, in *PasswordInput) (*Result, error)
	Session(ctx context.Context, p types.Principal) *Result
}

type AuthClientInterface interface {
	SignUp(ctx context.Context, email, password string) (*kratos.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*kratos.AuthResult, error)
	UpdatePassword(ctx context.Context, sessionToken, password string) error
}

type InviteServiceInterface interface {
	Peek(ctx context.Context, code string, wantRole types.Role) (*types.Invite, error)
	Redeem(ctx context.Context, p types.Principal, code string, wantRole types.Role) (*types.Redemption, error)
}

type ReconcilerInterface interface {
	Reconcile(ctx context.Context, p types.Principal) []string
}

type RouterInterface interface {
	Route(ctx context.Context, p types.Principal) types.Console
}

type GuardInterface interface {
	Acquire(ctx context.Context, key string) (func(), error)
}
