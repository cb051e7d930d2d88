// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "error", "invalid", ""} {
		t.Run(level, func(t *testing.T) {
			l := NewLogger(level)
			if l.Security() == nil {
				t.Fatal("expected security logger")
			}
		})
	}
}

func TestSecurityLoggerEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := &SecurityLogger{l: zap.New(core)}

	s.AuthzFailure("user-1", "admin.agencies", WithRequestIP("10.0.0.1"))
	s.AuthnLoginSuccess("user-2")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["event"] != "authz_fail:user-1,admin.agencies" {
		t.Errorf("unexpected event %v", fields["event"])
	}
	if fields["source_ip"] != "10.0.0.1" {
		t.Errorf("expected source_ip option to be applied, got %v", fields["source_ip"])
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("expected authz failure at error level, got %v", entries[0].Level)
	}
	if entries[1].ContextMap()["level"] != "INFO" {
		t.Errorf("expected INFO level field, got %v", entries[1].ContextMap()["level"])
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Infof("hello %s", "world")
	l.Security().SystemStartup()
}
