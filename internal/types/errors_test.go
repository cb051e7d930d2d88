// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "invite sentinel", err: ErrInviteExpired, want: KindInvite},
		{name: "wrapped sentinel", err: fmt.Errorf("redeem: %w", ErrInviteNotFound), want: KindInvite},
		{name: "authorization", err: ErrNotAuthorized, want: KindAuthorization},
		{name: "validation", err: NewValidationError("bad slug"), want: KindValidation},
		{name: "plain error", err: errors.New("boom"), want: KindBackend},
		{name: "conflict", err: ErrRequestInProgress, want: KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("expected kind %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBackendErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBackendError(cause)

	if err.Error() != "connection refused" {
		t.Errorf("expected raw message, got %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be unwrapped")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "owner", want: RoleOwner},
		{in: " Manager ", want: RoleManager},
		{in: "AGENT", want: RoleAgent},
		{in: "admin", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				if KindOf(err) != KindValidation {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConsolePath(t *testing.T) {
	for c, want := range map[Console]string{
		ConsoleAgent:  "/agent",
		ConsoleAgency: "/agency",
		ConsoleSuper:  "/super",
	} {
		if got := c.Path(); got != want {
			t.Errorf("console %q: expected %q, got %q", c, want, got)
		}
	}
}
