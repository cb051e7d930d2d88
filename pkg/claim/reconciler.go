// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package claim hands administratively provisioned agencies over to their
// owners once they authenticate.
package claim

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/singleflight"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ ReconcilerInterface = (*Reconciler)(nil)

type Reconciler struct {
	storage StorageInterface

	attempts uint
	delay    time.Duration

	retries singleflight.Group
	wg      sync.WaitGroup

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewReconciler(
	storage StorageInterface,
	attempts uint,
	delay time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Reconciler {
	return &Reconciler{
		storage:  storage,
		attempts: max(1, attempts),
		delay:    delay,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// ClaimForPrincipal assigns every agency pending for the email of p to p and
// returns the ids it claimed. Running it again claims nothing.
func (r *Reconciler) ClaimForPrincipal(ctx context.Context, p types.Principal) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "claim.Reconciler.ClaimForPrincipal")
	defer span.End()

	if p.ID == "" || strings.TrimSpace(p.Email) == "" {
		return nil, nil
	}

	ids, err := r.storage.ClaimPendingAgencies(ctx, p)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		r.logger.Infof("agency %s claimed by %s", id, p.ID)
	}

	return ids, nil
}

// Reconcile runs the claim for p and never fails the caller.
//
// When the claim errors it is retried in the background on a context that
// outlives the request; concurrent failures for the same principal share a
// single retry loop.
func (r *Reconciler) Reconcile(ctx context.Context, p types.Principal) []string {
	ctx, span := r.tracer.Start(ctx, "claim.Reconciler.Reconcile")
	defer span.End()

	ids, err := r.ClaimForPrincipal(ctx, p)
	if err == nil {
		return ids
	}

	r.logger.Warnf("pending ownership claim failed for %s, retrying in background: %v", p.ID, err)

	bg := context.WithoutCancel(ctx)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		_, err, _ := r.retries.Do(p.ID, func() (any, error) {
			return r.Retry(bg, p)
		})
		if err != nil {
			r.logger.Errorf("pending ownership claim abandoned for %s: %v", p.ID, err)
		}
	}()

	return nil
}

// Retry runs the claim until it succeeds or the attempts run out.
func (r *Reconciler) Retry(ctx context.Context, p types.Principal) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "claim.Reconciler.Retry")
	defer span.End()

	var ids []string
	err := retry.Do(
		func() error {
			var err error
			ids, err = r.ClaimForPrincipal(ctx, p)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Debugf("claim attempt %d for %s failed: %v", n+1, p.ID, err)
		}),
	)

	return ids, err
}

// Wait blocks until background retries have finished.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}
