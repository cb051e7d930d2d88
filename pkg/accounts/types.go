// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"github.com/velocityonboard/onboard-service/internal/types"
)

const (
	StatusOK                   = "ok"
	StatusConfirmationRequired = "confirmation_required"

	ConfirmationMessage = "Check your email to confirm your account"

	minPasswordLength = 8
)

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Code     string `json:"code" validate:"required,max=64"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
	// Code is an optional invite to redeem right after signing in.
	Code string `json:"code" validate:"omitempty,max=64"`
}

type PasswordInput struct {
	Password string `json:"password" validate:"required,max=128"`
	Confirm  string `json:"confirm" validate:"required,max=128"`
}

// Result is returned by every account flow. Redirect is the console path the
// frontend navigates to.
type Result struct {
	Status       string            `json:"status"`
	Message      string            `json:"message,omitempty"`
	Principal    *types.Principal  `json:"principal,omitempty"`
	SessionToken string            `json:"session_token,omitempty"`
	Console      types.Console     `json:"console,omitempty"`
	Redirect     string            `json:"redirect,omitempty"`
	Redemption   *types.Redemption `json:"redemption,omitempty"`
	Claimed      []string          `json:"claimed,omitempty"`
}
