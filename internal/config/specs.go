// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	KratosPublicURL string `envconfig:"kratos_public_url" required:"true"`
	KratosAdminURL  string `envconfig:"kratos_admin_url" required:"true"`

	AuthenticationMethod          string   `envconfig:"authentication_method" default:"kratos"`
	AuthenticationIssuer          string   `envconfig:"authentication_issuer"`
	AuthenticationJwksURL         string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedSubjects []string `envconfig:"authentication_allowed_subjects"`
	AuthenticationRequiredScope   string   `envconfig:"authentication_required_scope"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	StorageDriver string `envconfig:"storage_driver" default:"postgres"`
	DSN           string `envconfig:"DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// RedisAddr empty keeps the in-flight guard in process.
	RedisAddr   string        `envconfig:"redis_addr"`
	RedisDB     int           `envconfig:"redis_db" default:"0"`
	InflightTTL time.Duration `envconfig:"inflight_ttl" default:"30s"`

	LogoBucketDir    string `envconfig:"logo_bucket_dir" default:"/var/lib/onboard/agency-logos"`
	PublicStorageURL string `envconfig:"public_storage_url" default:"/api/v0/storage/agency-logos"`

	ClaimRetryAttempts uint          `envconfig:"claim_retry_attempts" default:"5"`
	ClaimRetryDelay    time.Duration `envconfig:"claim_retry_delay" default:"2s"`

	DefaultLegalName   string `envconfig:"default_legal_name" default:"PRIETO INSURANCE SOLUTIONS LLC"`
	InviteCodeLength   int    `envconfig:"invite_code_length" default:"6"`
	InvitationLifetime string `envconfig:"invitation_lifetime" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`
	WebhookAPIKey      string   `envconfig:"webhook_api_key"`
}
