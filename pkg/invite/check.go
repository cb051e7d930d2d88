// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"time"

	"github.com/velocityonboard/onboard-service/internal/types"
)

// Check validates inv for redemption at now.
//
// Failures are reported in a fixed order: not found, inactive, expired,
// exhausted, role mismatch. A used invite whose uses ran out reports
// exhausted, as that status is reached by consuming the last use. An empty
// wantRole accepts any role.
func Check(inv *types.Invite, now time.Time, wantRole types.Role) error {
	if inv == nil {
		return types.ErrInviteNotFound
	}

	switch inv.Status {
	case types.InviteActive:
	case types.InviteUsed:
		if inv.Exhausted() {
			return types.ErrInviteExhausted
		}
		return types.ErrInviteInactive
	case types.InviteDisabled:
		return types.ErrInviteInactive
	default:
		return types.ErrInviteInactive
	}

	if inv.ExpiresAt != nil && now.After(*inv.ExpiresAt) {
		return types.ErrInviteExpired
	}

	if inv.Exhausted() {
		return types.ErrInviteExhausted
	}

	if wantRole != "" && inv.Role != wantRole {
		return types.ErrInviteRoleMismatch
	}

	return nil
}
