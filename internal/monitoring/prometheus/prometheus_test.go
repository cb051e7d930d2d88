// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/velocityonboard/onboard-service/internal/logging"
)

func TestMonitorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMonitorWithRegistry("onboard-service", reg, logging.NewNoopLogger())

	if m.GetService() != "onboard-service" {
		t.Errorf("unexpected service %q", m.GetService())
	}

	if err := m.SetResponseTimeMetric(map[string]string{"route": "GET/api/v0/status", "status": "200"}, 0.2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.SetDependencyAvailability(map[string]string{"component": "redis"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 3 {
		if err := m.IncInviteRedemption(map[string]string{"outcome": "created"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := testutil.ToFloat64(m.dependencies.With(prometheus.Labels{"component": "redis"})); got != 1 {
		t.Errorf("expected dependency gauge 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.inviteRedemption.With(prometheus.Labels{"outcome": "created"})); got != 3 {
		t.Errorf("expected 3 redemptions, got %v", got)
	}
}

func TestMonitorUninstantiated(t *testing.T) {
	m := new(Monitor)

	if err := m.SetResponseTimeMetric(nil, 1); err == nil {
		t.Error("expected error for missing histogram")
	}
	if err := m.SetDependencyAvailability(nil, 1); err == nil {
		t.Error("expected error for missing gauge")
	}
	if err := m.IncInviteRedemption(nil); err == nil {
		t.Error("expected error for missing counter")
	}
}
