// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"
	"strings"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

// LoginRedirect is where the frontend sends unauthenticated users.
const LoginRedirect = "/login/agency"

type Middleware struct {
	verifier TokenVerifierInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Authenticate")
			defer span.End()

			token, found := m.getBearerToken(r.Header)
			if !found {
				unauthorized(w, "missing authorization header")
				return
			}

			principal, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.logger.Debugf("token verification failed: %v", err)
				unauthorized(w, "invalid token")
				return
			}

			ctx = WithPrincipal(ctx, *principal)
			ctx = WithBearerToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) getBearerToken(headers http.Header) (string, bool) {
	bearer := headers.Get("Authorization")
	if bearer == "" {
		return "", false
	}

	// Only support "Bearer <token>" format (RFC 6750)
	if !strings.HasPrefix(bearer, "Bearer ") {
		return "", false
	}

	token := strings.TrimPrefix(bearer, "Bearer ")
	return token, token != ""
}

// RequirePrincipal returns the authenticated principal of r, answering 401
// when the request carries none.
func RequirePrincipal(w http.ResponseWriter, r *http.Request) (types.Principal, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		unauthorized(w, types.ErrUnauthenticated.Message)
	}
	return p, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	httptypes.WriteJSON(w, http.StatusUnauthorized, httptypes.ErrorResponse{
		Status:   http.StatusUnauthorized,
		Message:  message,
		Redirect: LoginRedirect,
	})
}

func NewMiddleware(verifier TokenVerifierInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		verifier: verifier,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
