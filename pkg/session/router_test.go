// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_session.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

func TestRouter_Route(t *testing.T) {
	p := types.Principal{ID: "user-1", Email: "user@acme.io"}
	dbErr := errors.New("db error")

	tests := []struct {
		name       string
		setupMocks func(*MockStorageInterface, *MockLoggerInterface)
		expected   types.Console
	}{
		{
			name: "admin wins over ownership",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(true, nil)
			},
			expected: types.ConsoleSuper,
		},
		{
			name: "admin check failure fails closed",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(true, dbErr)
				l.EXPECT().Errorf(gomock.Any(), gomock.Any())
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return(nil, nil)
				s.EXPECT().GetAgencyByOwner(gomock.Any(), p.ID).Return(nil, storage.ErrNotFound)
			},
			expected: types.ConsoleAgent,
		},
		{
			name: "owner membership",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(false, nil)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return([]*types.Membership{{AgencyID: "a-1", Role: types.RoleOwner}}, nil)
			},
			expected: types.ConsoleAgency,
		},
		{
			name: "manager membership",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(false, nil)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return([]*types.Membership{
					{AgencyID: "a-1", Role: types.RoleAgent},
					{AgencyID: "a-2", Role: types.RoleManager},
				}, nil)
			},
			expected: types.ConsoleAgency,
		},
		{
			name: "owner without membership row",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(false, nil)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return(nil, nil)
				s.EXPECT().GetAgencyByOwner(gomock.Any(), p.ID).Return(&types.Agency{ID: "a-1", OwnerUserID: p.ID}, nil)
			},
			expected: types.ConsoleAgency,
		},
		{
			name: "agent only",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(false, nil)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return([]*types.Membership{{AgencyID: "a-1", Role: types.RoleAgent}}, nil)
				s.EXPECT().GetAgencyByOwner(gomock.Any(), p.ID).Return(nil, storage.ErrNotFound)
			},
			expected: types.ConsoleAgent,
		},
		{
			name: "lookup failures land on the agent console",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface) {
				s.EXPECT().IsAdmin(gomock.Any(), p.Email).Return(false, nil)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), p.ID).Return(nil, dbErr)
				s.EXPECT().GetAgencyByOwner(gomock.Any(), p.ID).Return(nil, dbErr)
				l.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(2)
			},
			expected: types.ConsoleAgent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			r := NewRouter(mockStorage, mockTracer, monitoring.NewNoopMonitor("test"), mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "session.Router.Route").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockLogger)

			if got := r.Route(context.Background(), p); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
