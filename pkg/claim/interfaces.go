// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package claim

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type ReconcilerInterface interface {
	ClaimForPrincipal(ctx context.Context, p types.Principal) ([]string, error)
	Reconcile(ctx context.Context, p types.Principal) []string
}

type StorageInterface interface {
	ClaimPendingAgencies(ctx context.Context, p types.Principal) ([]string, error)
}
