// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw bearer token and returns the principal it was issued to
	VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error)
}

// SessionResolverInterface resolves identity provider session tokens.
type SessionResolverInterface interface {
	WhoAmI(ctx context.Context, sessionToken string) (*types.Principal, error)
}
