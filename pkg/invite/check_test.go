// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/velocityonboard/onboard-service/internal/types"
)

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func TestCheck(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		invite   *types.Invite
		wantRole types.Role
		expected error
	}{
		{
			name:     "missing invite",
			invite:   nil,
			expected: types.ErrInviteNotFound,
		},
		{
			name:     "valid invite",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent, MaxUses: intPtr(1), ExpiresAt: timePtr(future)},
			expected: nil,
		},
		{
			name:     "valid invite without limits",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent},
			expected: nil,
		},
		{
			name:     "disabled invite reports inactive before expiry",
			invite:   &types.Invite{Status: types.InviteDisabled, Role: types.RoleAgent, ExpiresAt: timePtr(past)},
			expected: types.ErrInviteInactive,
		},
		{
			name:     "disabled invite reports inactive before exhaustion",
			invite:   &types.Invite{Status: types.InviteDisabled, Role: types.RoleAgent, MaxUses: intPtr(1), Uses: 1},
			expected: types.ErrInviteInactive,
		},
		{
			name:     "unknown status is inactive",
			invite:   &types.Invite{Status: "archived", Role: types.RoleAgent},
			expected: types.ErrInviteInactive,
		},
		{
			name:     "used invite with no uses left is exhausted",
			invite:   &types.Invite{Status: types.InviteUsed, Role: types.RoleAgent, MaxUses: intPtr(1), Uses: 1},
			expected: types.ErrInviteExhausted,
		},
		{
			name:     "used invite with uses left is inactive",
			invite:   &types.Invite{Status: types.InviteUsed, Role: types.RoleAgent, MaxUses: intPtr(3), Uses: 1},
			expected: types.ErrInviteInactive,
		},
		{
			name:     "expired before exhausted",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent, MaxUses: intPtr(1), Uses: 1, ExpiresAt: timePtr(past)},
			expected: types.ErrInviteExpired,
		},
		{
			name:     "exhausted active invite",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent, MaxUses: intPtr(1), Uses: 1},
			expected: types.ErrInviteExhausted,
		},
		{
			name:     "exhausted before role mismatch",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent, MaxUses: intPtr(2), Uses: 2},
			wantRole: types.RoleOwner,
			expected: types.ErrInviteExhausted,
		},
		{
			name:     "role mismatch",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent},
			wantRole: types.RoleOwner,
			expected: types.ErrInviteRoleMismatch,
		},
		{
			name:     "matching role",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleOwner},
			wantRole: types.RoleOwner,
			expected: nil,
		},
		{
			name:     "expiry equal to now is still valid",
			invite:   &types.Invite{Status: types.InviteActive, Role: types.RoleAgent, ExpiresAt: timePtr(now)},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.invite, now, tt.wantRole)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestGenerateCode(t *testing.T) {
	for _, n := range []int{0, 6, 10} {
		code, err := GenerateCode(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := n
		if n == 0 {
			want = DefaultCodeLength
		}
		if len(code) != want {
			t.Errorf("expected code of length %d, got %q", want, code)
		}

		for _, c := range code {
			if !strings.ContainsRune(CodeAlphabet, c) {
				t.Errorf("code %q contains %q outside the alphabet", code, c)
			}
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  ab3kz9\n"); got != "AB3KZ9" {
		t.Errorf("expected AB3KZ9, got %q", got)
	}
}
