// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/internal/config"
	"github.com/velocityonboard/onboard-service/internal/db"
	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/kratos"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring/prometheus"
	"github.com/velocityonboard/onboard-service/internal/objectstore"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/storage/memory"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
	"github.com/velocityonboard/onboard-service/pkg/status"
	"github.com/velocityonboard/onboard-service/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("onboard-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	ctx := context.Background()
	checks := make(map[string]status.PingerInterface)

	var s storage.StorageInterface
	switch specs.StorageDriver {
	case "postgres":
		dbClient, err := db.NewDBClient(
			db.Config{
				DSN:             specs.DSN,
				MaxConns:        specs.DBMaxConns,
				MinConns:        specs.DBMinConns,
				MaxConnLifetime: specs.DBMaxConnLifetime,
				MaxConnIdleTime: specs.DBMaxConnIdleTime,
				TracingEnabled:  specs.TracingEnabled,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create database client: %v", err)
		}
		defer dbClient.Close()

		s = storage.NewStorage(dbClient, tracer, monitor, logger)
		checks["database"] = dbClient
	case "memory":
		logger.Warn("Using the in-memory store, data is lost on restart")
		s = memory.NewStore(tracer)
	default:
		return fmt.Errorf("unknown storage driver %q", specs.StorageDriver)
	}

	var guard inflight.GuardInterface = inflight.NewLocalGuard()
	if specs.RedisAddr != "" {
		client, err := inflight.NewRedisClient(ctx, specs.RedisAddr, specs.RedisDB)
		if err != nil {
			return err
		}

		redisGuard := inflight.NewRedisGuard(client, specs.InflightTTL, tracer, monitor, logger)
		defer redisGuard.Close()

		guard = redisGuard
		checks["redis"] = redisGuard
		logger.Infof("In-flight guard backed by redis at %s", specs.RedisAddr)
	}

	bucket, err := objectstore.NewFilesystemBucket(specs.LogoBucketDir, specs.PublicStorageURL, tracer, logger)
	if err != nil {
		return fmt.Errorf("failed to open logo bucket: %v", err)
	}

	kratosClient := kratos.NewClient(
		specs.KratosPublicURL,
		specs.KratosAdminURL,
		&http.Client{Timeout: 10 * time.Second},
		tracer,
		monitor,
		logger,
	)

	verifier, err := authentication.NewAuthenticator(
		ctx,
		authentication.Config{
			Method:          specs.AuthenticationMethod,
			Issuer:          specs.AuthenticationIssuer,
			JwksURL:         specs.AuthenticationJwksURL,
			AllowedSubjects: specs.AuthenticationAllowedSubjects,
			RequiredScope:   specs.AuthenticationRequiredScope,
		},
		kratosClient,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to set up authentication: %v", err)
	}

	router := web.NewRouter(
		web.Config{
			CORSAllowedOrigins: specs.CORSAllowedOrigins,
			WebhookAPIKey:      specs.WebhookAPIKey,
			DefaultLegalName:   specs.DefaultLegalName,
			InvitationLifetime: specs.InvitationLifetime,
			InviteCodeLength:   specs.InviteCodeLength,
			ClaimRetryAttempts: specs.ClaimRetryAttempts,
			ClaimRetryDelay:    specs.ClaimRetryDelay,
		},
		s,
		kratosClient,
		verifier,
		guard,
		bucket,
		checks,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
