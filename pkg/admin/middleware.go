// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"net/http"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

type Middleware struct {
	service ServiceInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// RequireAdmin answers 403 unless the request principal is an admin.
// A failing allowlist lookup is treated as a refusal.
func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "admin.Middleware.RequireAdmin")
			defer span.End()

			p, ok := authentication.RequirePrincipal(w, r)
			if !ok {
				return
			}

			admin, err := m.service.IsCurrentAdmin(ctx, p)
			if err != nil {
				m.logger.Errorf("admin check failed for %s: %v", p.ID, err)
			}

			if err != nil || !admin {
				m.logger.Security().AuthzFailure(p.ID, r.URL.Path)
				httptypes.WriteError(w, types.ErrNotAuthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewMiddleware(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}
