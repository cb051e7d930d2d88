// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime     *prometheus.HistogramVec
	dependencies     *prometheus.GaugeVec
	inviteRedemption *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(tags).Set(value)

	return nil
}

// IncInviteRedemption counts redemption attempts by outcome.
func (m *Monitor) IncInviteRedemption(tags map[string]string) error {
	if m.inviteRedemption == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.inviteRedemption.With(tags).Inc()

	return nil
}

func (m *Monitor) registerHistograms(reg prometheus.Registerer) {
	m.responseTime = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_response_time_seconds",
			Help:        "http_response_time_seconds",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"route", "status"},
	)
}

func (m *Monitor) registerGauges(reg prometheus.Registerer) {
	m.dependencies = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "dependency_available",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"component"},
	)
}

func (m *Monitor) registerCounters(reg prometheus.Registerer) {
	m.inviteRedemption = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name:        "invite_redemptions_total",
			Help:        "invite_redemptions_total",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"outcome"},
	)
}

// NewMonitor registers the service metrics on the default Prometheus registry.
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	return NewMonitorWithRegistry(service, prometheus.DefaultRegisterer, logger)
}

func NewMonitorWithRegistry(service string, reg prometheus.Registerer, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms(reg)
	m.registerGauges(reg)
	m.registerCounters(reg)

	return m
}
