// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

const (
	appID = "onboard-service"

	eventSystemStartup  = "sys_startup"
	eventSystemShutdown = "sys_shutdown"
	eventLoginSuccess   = "authn_login_success"
	eventLoginFail      = "authn_login_fail"
	eventAuthzFail      = "authz_fail"
	eventAuthzAdmin     = "authz_admin"
	eventUserCreated    = "user_created"
	eventInputFail      = "input_validation_fail"
)

// Option adds extra structured fields to a security event.
type Option func(*[]zap.Field)

func WithRequestIP(ip string) Option {
	return func(f *[]zap.Field) {
		*f = append(*f, zap.String("source_ip", ip))
	}
}

func WithContext(key, value string) Option {
	return func(f *[]zap.Field) {
		*f = append(*f, zap.String(key, value))
	}
}

// SecurityLogger emits events following the OWASP logging vocabulary.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) emit(level string, event, description string, opts ...Option) {
	fields := []zap.Field{
		zap.String("type", "security"),
		zap.String("appid", appID),
		zap.String("event", event),
		zap.String("level", level),
		zap.String("description", description),
	}
	for _, o := range opts {
		o(&fields)
	}

	switch level {
	case "WARN":
		s.l.Warn(description, fields...)
	case "CRITICAL":
		s.l.Error(description, fields...)
	default:
		s.l.Info(description, fields...)
	}
}

func (s *SecurityLogger) SystemStartup(opts ...Option) {
	s.emit("WARN", eventSystemStartup, fmt.Sprintf("%s is starting", appID), opts...)
}

func (s *SecurityLogger) SystemShutdown(opts ...Option) {
	s.emit("WARN", eventSystemShutdown, fmt.Sprintf("%s is shutting down", appID), opts...)
}

func (s *SecurityLogger) AuthnLoginSuccess(user string, opts ...Option) {
	s.emit("INFO", fmt.Sprintf("%s:%s", eventLoginSuccess, user), fmt.Sprintf("user %s login successfully", user), opts...)
}

func (s *SecurityLogger) AuthnLoginFail(user string, opts ...Option) {
	s.emit("WARN", fmt.Sprintf("%s:%s", eventLoginFail, user), fmt.Sprintf("user %s login failed", user), opts...)
}

func (s *SecurityLogger) AuthzFailure(user, resource string, opts ...Option) {
	s.emit("CRITICAL", fmt.Sprintf("%s:%s,%s", eventAuthzFail, user, resource), fmt.Sprintf("user %s attempted to access %s without entitlement", user, resource), opts...)
}

func (s *SecurityLogger) AuthzAdmin(user, action string, opts ...Option) {
	s.emit("WARN", fmt.Sprintf("%s:%s,%s", eventAuthzAdmin, user, action), fmt.Sprintf("admin %s performed %s", user, action), opts...)
}

func (s *SecurityLogger) UserCreated(user string, opts ...Option) {
	s.emit("WARN", fmt.Sprintf("%s:%s", eventUserCreated, user), fmt.Sprintf("user %s created", user), opts...)
}

func (s *SecurityLogger) InputValidationFailure(field, reason string, opts ...Option) {
	s.emit("WARN", fmt.Sprintf("%s:%s", eventInputFail, field), reason, opts...)
}

func newSecurityLogger(z *zap.Logger) *SecurityLogger {
	hostname, _ := os.Hostname()
	return &SecurityLogger{l: z.With(zap.String("hostname", hostname))}
}
