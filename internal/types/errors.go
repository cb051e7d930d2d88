// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
)

type ErrorKind int

const (
	KindBackend ErrorKind = iota
	KindAuth
	KindInvite
	KindAuthorization
	KindValidation
	KindConflict
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindInvite:
		return "invite"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	}
	return "backend"
}

// Error is a user-facing failure carrying its category.
type Error struct {
	Kind    ErrorKind
	Message string
	// Err is the underlying cause, never shown to callers.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrInviteNotFound     = &Error{Kind: KindInvite, Message: "invite code not found"}
	ErrInviteInactive     = &Error{Kind: KindInvite, Message: "invite code is no longer active"}
	ErrInviteExpired      = &Error{Kind: KindInvite, Message: "invite code has expired"}
	ErrInviteExhausted    = &Error{Kind: KindInvite, Message: "invite code has no uses left"}
	ErrInviteRoleMismatch = &Error{Kind: KindInvite, Message: "invite code does not grant the required role"}

	ErrNotAuthorized     = &Error{Kind: KindAuthorization, Message: "not authorized"}
	ErrUnauthenticated   = &Error{Kind: KindAuth, Message: "authentication required"}
	ErrOwnerTaken        = &Error{Kind: KindConflict, Message: "agency already has an owner"}
	ErrRequestInProgress = &Error{Kind: KindConflict, Message: "request already in progress"}
	ErrAgencyUnavailable = &Error{Kind: KindNotFound, Message: "agency unavailable"}
)

func NewAuthError(msg string, err error) *Error {
	return &Error{Kind: KindAuth, Message: msg, Err: err}
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewBackendError wraps a failure from an external system, keeping its raw message.
func NewBackendError(err error) *Error {
	return &Error{Kind: KindBackend, Message: err.Error(), Err: err}
}

// KindOf returns the category of err, defaulting to KindBackend.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindBackend
}
