// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import "context"

// PingerInterface is a dependency whose reachability is reported by /status.
type PingerInterface interface {
	Ping(ctx context.Context) error
}
