// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/velocityonboard/onboard-service/internal/types"
)

const passwordMethod = "password"

// AuthResult is the outcome of a sign up or sign in.
// SessionToken is empty when the identity still has to confirm its email.
type AuthResult struct {
	Principal    types.Principal
	SessionToken string
}

// ConfirmationRequired reports whether the flow ended without a session.
func (r *AuthResult) ConfirmationRequired() bool {
	return r.SessionToken == ""
}

func principalFromIdentity(identity ory.Identity) types.Principal {
	p := types.Principal{ID: identity.Id}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			p.Email = email
		}
	}

	return p
}

func (c *Client) SignUp(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SignUp")
	defer span.End()

	flow, r, err := c.public.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return nil, c.mapError(err, r, "failed to start registration")
	}

	body := ory.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(
		&ory.UpdateRegistrationFlowWithPasswordMethod{
			Method:   passwordMethod,
			Password: password,
			Traits: map[string]interface{}{
				"email": email,
			},
		},
	)

	registration, r, err := c.public.FrontendAPI.UpdateRegistrationFlow(ctx).Flow(flow.Id).UpdateRegistrationFlowBody(body).Execute()
	if err != nil {
		return nil, c.mapError(err, r, "sign up failed")
	}

	return &AuthResult{
		Principal:    principalFromIdentity(registration.GetIdentity()),
		SessionToken: registration.GetSessionToken(),
	}, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.SignIn")
	defer span.End()

	flow, r, err := c.public.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return nil, c.mapError(err, r, "failed to start login")
	}

	body := ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(
		&ory.UpdateLoginFlowWithPasswordMethod{
			Method:     passwordMethod,
			Identifier: email,
			Password:   password,
		},
	)

	login, r, err := c.public.FrontendAPI.UpdateLoginFlow(ctx).Flow(flow.Id).UpdateLoginFlowBody(body).Execute()
	if err != nil {
		return nil, c.mapError(err, r, "invalid email or password")
	}

	session := login.GetSession()

	return &AuthResult{
		Principal:    principalFromIdentity(session.GetIdentity()),
		SessionToken: login.GetSessionToken(),
	}, nil
}

// WhoAmI resolves a session token to the principal it belongs to.
func (c *Client) WhoAmI(ctx context.Context, sessionToken string) (*types.Principal, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.WhoAmI")
	defer span.End()

	session, r, err := c.public.FrontendAPI.ToSession(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		if r != nil && (r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden) {
			return nil, types.ErrUnauthenticated
		}
		return nil, c.mapError(err, r, "failed to resolve session")
	}

	if !session.GetActive() {
		return nil, types.ErrUnauthenticated
	}

	p := principalFromIdentity(session.GetIdentity())
	return &p, nil
}

func (c *Client) UpdatePassword(ctx context.Context, sessionToken, password string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.UpdatePassword")
	defer span.End()

	flow, r, err := c.public.FrontendAPI.CreateNativeSettingsFlow(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		return c.mapError(err, r, "failed to start settings flow")
	}

	body := ory.UpdateSettingsFlowWithPasswordMethodAsUpdateSettingsFlowBody(
		&ory.UpdateSettingsFlowWithPasswordMethod{
			Method:   passwordMethod,
			Password: password,
		},
	)

	if _, r, err := c.public.FrontendAPI.UpdateSettingsFlow(ctx).Flow(flow.Id).XSessionToken(sessionToken).UpdateSettingsFlowBody(body).Execute(); err != nil {
		return c.mapError(err, r, "failed to update password")
	}

	return nil
}

func (c *Client) mapError(err error, r *http.Response, fallback string) error {
	if r == nil {
		_ = c.monitor.SetDependencyAvailability(map[string]string{"component": "kratos"}, 0)
		return types.NewBackendError(fmt.Errorf("%s: %w", fallback, err))
	}

	switch r.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict, http.StatusGone, http.StatusUnprocessableEntity:
		return types.NewAuthError(errorMessage(err, fallback), err)
	}

	c.logger.Errorf("kratos returned status %d: %v", r.StatusCode, err)
	return types.NewBackendError(fmt.Errorf("%s: %w", fallback, err))
}
