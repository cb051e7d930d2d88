// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package accounts drives the signup, login and password flows. Every flow
// that ends with a session redeems its invite first, then claims pending
// agencies and only then picks the console the principal lands on.
package accounts

import (
	"context"
	"fmt"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/kratos"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	auth       AuthClientInterface
	invites    InviteServiceInterface
	reconciler ReconcilerInterface
	router     RouterInterface
	guard      GuardInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	auth AuthClientInterface,
	invites InviteServiceInterface,
	reconciler ReconcilerInterface,
	router RouterInterface,
	guard GuardInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		auth:       auth,
		invites:    invites,
		reconciler: reconciler,
		router:     router,
		guard:      guard,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

// AgentSignup registers a new identity with an invite of any role.
func (s *Service) AgentSignup(ctx context.Context, in *SignupInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AgentSignup")
	defer span.End()

	return s.signup(ctx, in, "")
}

// AgencySignup registers a new identity that takes over an agency through an
// owner invite.
func (s *Service) AgencySignup(ctx context.Context, in *SignupInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AgencySignup")
	defer span.End()

	return s.signup(ctx, in, types.RoleOwner)
}

func (s *Service) signup(ctx context.Context, in *SignupInput, wantRole types.Role) (*Result, error) {
	email := types.NormalizeEmail(in.Email)
	if email == "" {
		return nil, types.NewValidationError("email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, types.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	release, err := s.guard.Acquire(ctx, inflight.Key("auth.signup", email))
	if err != nil {
		return nil, err
	}
	defer release()

	// a bad code must not leave an orphan identity behind
	if _, err := s.invites.Peek(ctx, in.Code, wantRole); err != nil {
		return nil, err
	}

	res, err := s.auth.SignUp(ctx, email, in.Password)
	if err != nil {
		s.logger.Debugf("sign up failed for %s: %v", email, err)
		return nil, err
	}

	s.logger.Security().UserCreated(res.Principal.ID)

	if res.ConfirmationRequired() {
		return &Result{
			Status:    StatusConfirmationRequired,
			Message:   ConfirmationMessage,
			Principal: &res.Principal,
		}, nil
	}

	redemption, err := s.invites.Redeem(ctx, res.Principal, in.Code, wantRole)
	if err != nil {
		// the identity exists now, pending agencies are claimed regardless
		s.reconciler.Reconcile(ctx, res.Principal)
		return nil, err
	}

	return s.complete(ctx, res, redemption), nil
}

// AgentLogin signs in and optionally redeems an invite on the way.
func (s *Service) AgentLogin(ctx context.Context, in *LoginInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AgentLogin")
	defer span.End()

	res, err := s.signIn(ctx, in)
	if err != nil {
		return nil, err
	}

	var redemption *types.Redemption
	if in.Code != "" {
		if redemption, err = s.invites.Redeem(ctx, res.Principal, in.Code, ""); err != nil {
			s.reconciler.Reconcile(ctx, res.Principal)
			return nil, err
		}
	}

	return s.complete(ctx, res, redemption), nil
}

func (s *Service) AgencyLogin(ctx context.Context, in *LoginInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AgencyLogin")
	defer span.End()

	res, err := s.signIn(ctx, in)
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, res, nil), nil
}

func (s *Service) signIn(ctx context.Context, in *LoginInput) (*kratos.AuthResult, error) {
	email := types.NormalizeEmail(in.Email)

	res, err := s.auth.SignIn(ctx, email, in.Password)
	if err != nil {
		s.logger.Security().AuthnLoginFail(email)
		return nil, err
	}

	if res.ConfirmationRequired() {
		return nil, types.NewAuthError(ConfirmationMessage, nil)
	}

	s.logger.Security().AuthnLoginSuccess(res.Principal.ID)

	return res, nil
}

// SetPassword sets the password of an identity that arrived through a
// recovery link, then lands it like a fresh login.
func (s *Service) SetPassword(ctx context.Context, p types.Principal, sessionToken string, in *PasswordInput) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.SetPassword")
	defer span.End()

	if len(in.Password) < minPasswordLength {
		return nil, types.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Password != in.Confirm {
		return nil, types.NewValidationError("passwords do not match")
	}

	if err := s.auth.UpdatePassword(ctx, sessionToken, in.Password); err != nil {
		s.logger.Debugf("password update failed for %s: %v", p.ID, err)
		return nil, err
	}

	return s.complete(ctx, &kratos.AuthResult{Principal: p}, nil), nil
}

// Session reports where p should land right now.
func (s *Service) Session(ctx context.Context, p types.Principal) *Result {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.Session")
	defer span.End()

	console := s.router.Route(ctx, p)

	return &Result{
		Status:    StatusOK,
		Principal: &p,
		Console:   console,
		Redirect:  console.Path(),
	}
}

// complete claims pending agencies and routes; it must run after any redemption.
func (s *Service) complete(ctx context.Context, res *kratos.AuthResult, redemption *types.Redemption) *Result {
	p := res.Principal

	claimed := s.reconciler.Reconcile(ctx, p)
	console := s.router.Route(ctx, p)

	return &Result{
		Status:       StatusOK,
		Principal:    &p,
		SessionToken: res.SessionToken,
		Console:      console,
		Redirect:     console.Path(),
		Redemption:   redemption,
		Claimed:      claimed,
	}
}
