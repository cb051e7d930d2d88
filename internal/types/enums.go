// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleAgent   Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleAgent:
		return true
	}
	return false
}

// ManagesAgency reports whether the role grants access to the agency console.
func (r Role) ManagesAgency() bool {
	switch r {
	case RoleOwner, RoleManager:
		return true
	case RoleAgent:
		return false
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError(fmt.Sprintf("invalid role %q", s))
	}
	return r, nil
}

type InviteStatus string

const (
	InviteActive   InviteStatus = "active"
	InviteDisabled InviteStatus = "disabled"
	InviteUsed     InviteStatus = "used"
)

func (s InviteStatus) Valid() bool {
	switch s {
	case InviteActive, InviteDisabled, InviteUsed:
		return true
	}
	return false
}

// Console is the landing destination picked after authentication.
type Console string

const (
	ConsoleAgent  Console = "agent"
	ConsoleAgency Console = "agency"
	ConsoleSuper  Console = "super"
)

func (c Console) Path() string {
	switch c {
	case ConsoleSuper:
		return "/super"
	case ConsoleAgency:
		return "/agency"
	case ConsoleAgent:
		return "/agent"
	}
	return "/agent"
}
