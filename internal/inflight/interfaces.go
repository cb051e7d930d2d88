// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inflight

import (
	"context"
)

//go:generate mockgen -build_flags=--mod=mod -package inflight -destination ./mock_inflight.go -source=./interfaces.go

// GuardInterface rejects a second submission of the same action while the first is still running.
type GuardInterface interface {
	// Acquire returns types.ErrRequestInProgress when key is already held.
	// The returned release func must be called once the action completes.
	Acquire(ctx context.Context, key string) (func(), error)
}
