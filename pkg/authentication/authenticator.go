// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
)

// NewJWTAuthenticator initializes a JWT token verifier.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	allowedSubjects []string,
	requiredScope string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	idTokens, err := NewIDTokenVerifier(ctx, issuer, jwksURL)
	if err != nil {
		return nil, err
	}

	if jwksURL != "" {
		logger.Infof("JWT authentication is enabled for %s with keys from %s", issuer, jwksURL)
	} else {
		logger.Infof("JWT authentication is enabled for %s with OIDC discovery", issuer)
	}

	return NewJWTVerifier(idTokens, allowedSubjects, requiredScope, tracer, monitor, logger), nil
}

// Config selects how bearer tokens are verified.
type Config struct {
	// Method is one of kratos, jwt or noop.
	Method          string
	Issuer          string
	JwksURL         string
	AllowedSubjects []string
	RequiredScope   string
}

// NewAuthenticator builds the verifier for cfg.Method.
func NewAuthenticator(
	ctx context.Context,
	cfg Config,
	sessions SessionResolverInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	switch cfg.Method {
	case "kratos", "":
		logger.Info("Authenticating requests with kratos session tokens")
		return NewSessionVerifier(sessions, tracer, monitor, logger), nil
	case "jwt":
		return NewJWTAuthenticator(ctx, cfg.Issuer, cfg.JwksURL, cfg.AllowedSubjects, cfg.RequiredScope, tracer, monitor, logger)
	case "noop":
		logger.Warn("Authentication is disabled, tokens are trusted as <id>:<email>")
		return NewNoopVerifier(), nil
	}

	return nil, fmt.Errorf("unknown authentication method %q", cfg.Method)
}
