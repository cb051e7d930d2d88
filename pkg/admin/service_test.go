// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

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

//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_admin.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package admin -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var root = types.Principal{ID: "root-1", Email: "Root@Velocity.io"}

func TestService_IsCurrentAdmin(t *testing.T) {
	tests := []struct {
		name      string
		result    bool
		storeErr  error
		expected  bool
		expectErr bool
	}{
		{name: "listed", result: true, expected: true},
		{name: "not listed", result: false, expected: false},
		{name: "lookup failure", result: true, storeErr: errors.New("timeout"), expected: false, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			s := NewService(mockStorage, mockTracer, monitoring.NewNoopMonitor("test"), mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "admin.Service.IsCurrentAdmin").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockStorage.EXPECT().IsAdmin(gomock.Any(), root.Email).Return(tt.result, tt.storeErr)

			got, err := s.IsCurrentAdmin(context.Background(), root)
			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	s := NewService(mockStorage, mockTracer, monitoring.NewNoopMonitor("test"), mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "admin.Service.Add").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)
	mockStorage.EXPECT().AddAdmin(gomock.Any(), "ops@velocity.io").Return(&types.AdminUser{Email: "ops@velocity.io"}, nil)
	mockLogger.EXPECT().Security().Return(mockSecurity)
	mockSecurity.EXPECT().AuthzAdmin(root.ID, "admin_add", gomock.Any())

	a, err := s.Add(context.Background(), root, " OPS@velocity.io ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Email != "ops@velocity.io" {
		t.Errorf("expected normalised email, got %q", a.Email)
	}

	if _, err := s.Add(context.Background(), root, "  "); types.KindOf(err) != types.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestService_Remove(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		setupMocks func(*MockStorageInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectKind types.ErrorKind
		expectErr  bool
	}{
		{
			name:  "removes another admin",
			email: "ops@velocity.io",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface, sec *MockSecurityLoggerInterface) {
				s.EXPECT().RemoveAdmin(gomock.Any(), "ops@velocity.io").Return(nil)
				l.EXPECT().Security().Return(sec)
				sec.EXPECT().AuthzAdmin(root.ID, "admin_remove", gomock.Any())
			},
		},
		{
			name:       "self removal is rejected",
			email:      "root@velocity.io ",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface, sec *MockSecurityLoggerInterface) {},
			expectErr:  true,
			expectKind: types.KindValidation,
		},
		{
			name:  "unknown admin",
			email: "ghost@velocity.io",
			setupMocks: func(s *MockStorageInterface, l *MockLoggerInterface, sec *MockSecurityLoggerInterface) {
				s.EXPECT().RemoveAdmin(gomock.Any(), "ghost@velocity.io").Return(storage.ErrNotFound)
			},
			expectErr:  true,
			expectKind: types.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			s := NewService(mockStorage, mockTracer, monitoring.NewNoopMonitor("test"), mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "admin.Service.Remove").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockLogger, mockSecurity)

			err := s.Remove(context.Background(), root, tt.email)
			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}
			if err != nil && types.KindOf(err) != tt.expectKind {
				t.Errorf("expected %s error, got %v", tt.expectKind, err)
			}
		})
	}
}
