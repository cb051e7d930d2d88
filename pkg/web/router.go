// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/kratos"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/objectstore"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/pkg/accounts"
	"github.com/velocityonboard/onboard-service/pkg/admin"
	"github.com/velocityonboard/onboard-service/pkg/agency"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
	"github.com/velocityonboard/onboard-service/pkg/claim"
	"github.com/velocityonboard/onboard-service/pkg/invite"
	"github.com/velocityonboard/onboard-service/pkg/logos"
	"github.com/velocityonboard/onboard-service/pkg/metrics"
	"github.com/velocityonboard/onboard-service/pkg/session"
	"github.com/velocityonboard/onboard-service/pkg/status"
	"github.com/velocityonboard/onboard-service/pkg/webhooks"
)

const (
	APIPrefix  = "/api/v0"
	LogoPrefix = "/storage/agency-logos"
)

// Config carries the tunables of the HTTP surface.
type Config struct {
	CORSAllowedOrigins []string
	WebhookAPIKey      string

	DefaultLegalName   string
	InvitationLifetime string
	InviteCodeLength   int

	ClaimRetryAttempts uint
	ClaimRetryDelay    time.Duration
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	idp kratos.ClientInterface,
	verifier authentication.TokenVerifierInterface,
	guard inflight.GuardInterface,
	bucket objectstore.BucketInterface,
	checks map[string]status.PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins),
	)

	router.Use(middlewares...)

	reconciler := claim.NewReconciler(s, cfg.ClaimRetryAttempts, cfg.ClaimRetryDelay, tracer, monitor, logger)
	consoles := session.NewRouter(s, tracer, monitor, logger)
	invites := invite.NewService(s, guard, cfg.InviteCodeLength, tracer, monitor, logger)
	agencies := agency.NewService(s, idp, guard, cfg.DefaultLegalName, cfg.InvitationLifetime, tracer, monitor, logger)
	admins := admin.NewService(s, tracer, monitor, logger)

	accountsAPI := accounts.NewAPI(accounts.NewService(idp, invites, reconciler, consoles, guard, tracer, monitor, logger), logger)
	agencyAPI := agency.NewAPI(agencies, agencies, logger)
	adminAPI := admin.NewAPI(admins, logger)
	inviteAPI := invite.NewAPI(invites, logger)
	logoAPI := logos.NewAPI(logos.NewService(bucket, tracer, logger), logger)
	webhookAPI := webhooks.NewAPI(webhooks.NewService(s, idp, reconciler, consoles, tracer, monitor, logger), cfg.WebhookAPIKey, logger)

	authn := authentication.NewMiddleware(verifier, tracer, monitor, logger)
	authz := admin.NewMiddleware(admins, tracer, logger)

	router.Route(APIPrefix, func(r chi.Router) {
		metrics.NewAPI(logger).RegisterEndpoints(r)
		status.NewAPI(checks, tracer, monitor, logger).RegisterEndpoints(r)

		r.Handle(LogoPrefix+"/*", http.StripPrefix(APIPrefix+LogoPrefix, bucket.Handler()))

		accountsAPI.RegisterPublicEndpoints(r)
		agencyAPI.RegisterPublicEndpoints(r)
		webhookAPI.RegisterEndpoints(r)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate())

			accountsAPI.RegisterEndpoints(r)
			agencyAPI.RegisterEndpoints(r)
			inviteAPI.RegisterEndpoints(r)
			logoAPI.RegisterEndpoints(r)
			adminAPI.RegisterEndpoints(r)

			r.Group(func(r chi.Router) {
				r.Use(authz.RequireAdmin())

				agencyAPI.RegisterAdminEndpoints(r)
				adminAPI.RegisterAdminEndpoints(r)
			})
		})
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
