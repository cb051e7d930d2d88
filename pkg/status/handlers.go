// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package status serves liveness and build information.
package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/version"
)

const (
	okValue       = "ok"
	degradedValue = "degraded"

	checkTimeout = 2 * time.Second
)

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	GoVersion  string `json:"go_version,omitempty"`
}

type Status struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	BuildInfo *BuildInfo        `json:"build_info"`
}

type API struct {
	checks map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(r chi.Router) {
	r.Get("/status", a.alive)
	r.Get("/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	rr := Status{Status: okValue, BuildInfo: buildInfo()}

	names := make([]string, 0, len(a.checks))
	for name := range a.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	code := http.StatusOK
	for _, name := range names {
		if rr.Checks == nil {
			rr.Checks = make(map[string]string, len(names))
		}

		if err := a.ping(ctx, a.checks[name]); err != nil {
			a.logger.Errorf("status check %s failed: %v", name, err)
			rr.Checks[name] = err.Error()
			rr.Status = degradedValue
			code = http.StatusServiceUnavailable
			continue
		}
		rr.Checks[name] = okValue
	}

	httptypes.WriteJSON(w, code, rr)
}

func (a *API) ping(ctx context.Context, p PingerInterface) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	return p.Ping(ctx)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	httptypes.WriteJSON(w, http.StatusOK, buildInfo())
}

func buildInfo() *BuildInfo {
	info := &BuildInfo{Version: version.Version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.CommitHash = s.Value
		}
	}

	return info
}

// NewAPI reports the given named dependencies on /status.
func NewAPI(checks map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		checks:  checks,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
