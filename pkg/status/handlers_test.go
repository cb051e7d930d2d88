// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/version"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]PingerInterface
		expectedStatus int
		expectedValue  string
	}{
		{
			name:           "no dependencies",
			expectedStatus: http.StatusOK,
			expectedValue:  okValue,
		},
		{
			name:           "all dependencies up",
			checks:         map[string]PingerInterface{"database": pinger{}, "redis": pinger{}},
			expectedStatus: http.StatusOK,
			expectedValue:  okValue,
		},
		{
			name:           "database down",
			checks:         map[string]PingerInterface{"database": pinger{err: errors.New("connection refused")}, "redis": pinger{}},
			expectedStatus: http.StatusServiceUnavailable,
			expectedValue:  degradedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := chi.NewMux()
			NewAPI(tt.checks, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var rr Status
			if err := json.NewDecoder(w.Body).Decode(&rr); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if rr.Status != tt.expectedValue {
				t.Errorf("expected %q, got %q", tt.expectedValue, rr.Status)
			}
			if len(rr.Checks) != len(tt.checks) {
				t.Errorf("expected %d checks, got %v", len(tt.checks), rr.Checks)
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	mux := chi.NewMux()
	NewAPI(nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger()).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if w.Code != http.StatusOK || info.Version != version.Version {
		t.Errorf("expected version %q, got %d %+v", version.Version, w.Code, info)
	}
}
