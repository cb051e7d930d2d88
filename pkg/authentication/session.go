// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

// SessionVerifier accepts identity provider session tokens as bearer tokens.
type SessionVerifier struct {
	sessions SessionResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *SessionVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.SessionVerifier.VerifyToken")
	defer span.End()

	p, err := v.sessions.WhoAmI(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	if p.ID == "" {
		return nil, fmt.Errorf("session has no identity")
	}

	return p, nil
}

func NewSessionVerifier(sessions SessionResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SessionVerifier {
	return &SessionVerifier{
		sessions: sessions,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
