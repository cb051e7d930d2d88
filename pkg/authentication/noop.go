// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"strings"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type NoopVerifier struct{}

// NewNoopVerifier returns a no-op token verifier that allows all requests.
func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

// VerifyToken reads the token as "<user id>:<email>" for development purposes.
func (n *NoopVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	id, email, _ := strings.Cut(rawToken, ":")
	if id == "" {
		return nil, fmt.Errorf("empty token")
	}
	return &types.Principal{ID: id, Email: email}, nil
}
