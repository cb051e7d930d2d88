// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package invite -destination ./mock_invite.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invite -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invite -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package invite -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	owner   = types.Principal{ID: "owner-1", Email: "owner@acme.io"}
	manager = types.Principal{ID: "manager-1", Email: "manager@acme.io"}
	admin   = types.Principal{ID: "admin-1", Email: "root@velocity.io"}
	agency  = &types.Agency{ID: "agency-1", Name: "Acme", Slug: "acme", OwnerUserID: owner.ID}
)

func noRelease() {}

func TestService_Create(t *testing.T) {
	fixed := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	dbErr := errors.New("db error")

	tests := []struct {
		name       string
		caller     types.Principal
		role       types.Role
		maxUses    int
		days       int
		setupMocks func(*MockStorageInterface)
		expectErr  error
		expectKind types.ErrorKind
		validate   func(*testing.T, *types.Invite)
	}{
		{
			name:   "owner issues agent invite with defaults",
			caller: owner,
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, inv *types.Invite) (*types.Invite, error) {
						created := *inv
						created.ID = "invite-1"
						created.Status = types.InviteActive
						return &created, nil
					},
				)
			},
			validate: func(t *testing.T, inv *types.Invite) {
				if inv.MaxUses == nil || *inv.MaxUses != 1 {
					t.Errorf("expected max uses 1, got %v", inv.MaxUses)
				}
				if inv.ExpiresAt == nil || !inv.ExpiresAt.Equal(fixed.Add(7*24*time.Hour)) {
					t.Errorf("expected a 7 day expiry, got %v", inv.ExpiresAt)
				}
				if len(inv.Code) != DefaultCodeLength {
					t.Errorf("expected a %d character code, got %q", DefaultCodeLength, inv.Code)
				}
				if inv.CreatedBy != owner.ID || inv.Role != types.RoleAgent {
					t.Errorf("unexpected invite %+v", inv)
				}
			},
		},
		{
			name:    "negative days and uses are raised to one",
			caller:  owner,
			role:    types.RoleManager,
			maxUses: -4,
			days:    -2,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, inv *types.Invite) (*types.Invite, error) {
						return inv, nil
					},
				)
			},
			validate: func(t *testing.T, inv *types.Invite) {
				if *inv.MaxUses != 1 {
					t.Errorf("expected max uses 1, got %d", *inv.MaxUses)
				}
				if !inv.ExpiresAt.Equal(fixed.Add(24 * time.Hour)) {
					t.Errorf("expected a 1 day expiry, got %v", inv.ExpiresAt)
				}
			},
		},
		{
			name:   "owner cannot issue owner invite",
			caller: owner,
			role:   types.RoleOwner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "manager issues agent invite",
			caller: manager,
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), manager.Email).Return(false, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, manager.ID).Return(&types.Membership{Role: types.RoleManager}, nil)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, inv *types.Invite) (*types.Invite, error) {
						return inv, nil
					},
				)
			},
		},
		{
			name:   "manager cannot issue manager invite",
			caller: manager,
			role:   types.RoleManager,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), manager.Email).Return(false, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, manager.ID).Return(&types.Membership{Role: types.RoleManager}, nil)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "non member is rejected",
			caller: types.Principal{ID: "stranger"},
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), "").Return(false, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, "stranger").Return(nil, storage.ErrNotFound)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "admin issues owner invite",
			caller: admin,
			role:   types.RoleOwner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), admin.Email).Return(true, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, admin.ID).Return(nil, storage.ErrNotFound)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, inv *types.Invite) (*types.Invite, error) {
						return inv, nil
					},
				)
			},
		},
		{
			name:   "admin check failure fails closed",
			caller: manager,
			role:   types.RoleOwner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), manager.Email).Return(false, dbErr)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, manager.ID).Return(&types.Membership{Role: types.RoleManager}, nil)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "code collisions are retried",
			caller: owner,
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
				gomock.InOrder(
					s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("insert invite: %w", storage.ErrDuplicateKey)),
					s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).DoAndReturn(
						func(_ context.Context, inv *types.Invite) (*types.Invite, error) {
							return inv, nil
						},
					),
				)
			},
		},
		{
			name:   "persistent collisions give up",
			caller: owner,
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
				s.EXPECT().CreateInvite(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey).Times(maxCodeAttempts)
			},
			expectKind: types.KindConflict,
		},
		{
			name:   "unknown agency",
			caller: owner,
			role:   types.RoleAgent,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(nil, storage.ErrNotFound)
			},
			expectKind: types.KindNotFound,
		},
		{
			name:       "invalid role",
			caller:     owner,
			role:       types.Role("boss"),
			setupMocks: func(s *MockStorageInterface) {},
			expectKind: types.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockGuard := NewMockGuardInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			s := NewService(mockStorage, mockGuard, 0, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
			s.now = func() time.Time { return fixed }

			mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.Create").Return(context.Background(), trace.SpanFromContext(context.Background()))
			if tt.role.Valid() {
				mockGuard.EXPECT().Acquire(gomock.Any(), "invite.create:"+tt.caller.ID+":"+agency.ID).Return(noRelease, nil)
			}
			tt.setupMocks(mockStorage)

			inv, err := s.Create(context.Background(), tt.caller, agency.ID, tt.role, tt.maxUses, tt.days)

			switch {
			case tt.expectErr != nil:
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			case tt.expectKind != types.KindBackend:
				if err == nil || types.KindOf(err) != tt.expectKind {
					t.Fatalf("expected %s error, got %v", tt.expectKind, err)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, inv)
			}
		})
	}
}

func TestService_CreateInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockGuard := NewMockGuardInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	s := NewService(mockStorage, mockGuard, 6, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.Create").Return(context.Background(), trace.SpanFromContext(context.Background()))
	mockGuard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(nil, types.ErrRequestInProgress)

	if _, err := s.Create(context.Background(), owner, agency.ID, types.RoleAgent, 1, 1); !errors.Is(err, types.ErrRequestInProgress) {
		t.Errorf("expected ErrRequestInProgress, got %v", err)
	}
}

func TestService_Disable(t *testing.T) {
	inv := &types.Invite{ID: "invite-1", AgencyID: agency.ID, CreatedBy: manager.ID, Status: types.InviteActive}

	tests := []struct {
		name       string
		caller     types.Principal
		setupMocks func(*MockStorageInterface)
		expectErr  error
		expectKind types.ErrorKind
	}{
		{
			name:   "creator disables",
			caller: manager,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetInviteByID(gomock.Any(), inv.ID).Return(inv, nil)
				s.EXPECT().DisableInvite(gomock.Any(), inv.ID).Return(nil)
			},
		},
		{
			name:   "agency owner disables",
			caller: owner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetInviteByID(gomock.Any(), inv.ID).Return(inv, nil)
				s.EXPECT().IsAdmin(gomock.Any(), owner.Email).Return(false, nil)
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().DisableInvite(gomock.Any(), inv.ID).Return(nil)
			},
		},
		{
			name:   "admin disables",
			caller: admin,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetInviteByID(gomock.Any(), inv.ID).Return(inv, nil)
				s.EXPECT().IsAdmin(gomock.Any(), admin.Email).Return(true, nil)
				s.EXPECT().DisableInvite(gomock.Any(), inv.ID).Return(nil)
			},
		},
		{
			name:   "other manager is rejected",
			caller: types.Principal{ID: "manager-2", Email: "m2@acme.io"},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetInviteByID(gomock.Any(), inv.ID).Return(inv, nil)
				s.EXPECT().IsAdmin(gomock.Any(), "m2@acme.io").Return(false, nil)
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, "manager-2").Return(&types.Membership{Role: types.RoleManager}, nil)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "unknown invite",
			caller: owner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetInviteByID(gomock.Any(), inv.ID).Return(nil, storage.ErrNotFound)
			},
			expectKind: types.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			s := NewService(mockStorage, NewMockGuardInterface(ctrl), 6, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.Disable").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage)

			err := s.Disable(context.Background(), tt.caller, inv.ID)

			switch {
			case tt.expectErr != nil:
				if !errors.Is(err, tt.expectErr) {
					t.Errorf("expected %v, got %v", tt.expectErr, err)
				}
			case tt.expectKind != types.KindBackend:
				if err == nil || types.KindOf(err) != tt.expectKind {
					t.Errorf("expected %s error, got %v", tt.expectKind, err)
				}
			case err != nil:
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	invites := []*types.Invite{{ID: "invite-1"}, {ID: "invite-2"}}

	tests := []struct {
		name       string
		caller     types.Principal
		setupMocks func(*MockStorageInterface)
		expectErr  error
		expectLen  int
	}{
		{
			name:   "manager lists",
			caller: manager,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), manager.Email).Return(false, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, manager.ID).Return(&types.Membership{Role: types.RoleManager}, nil)
				s.EXPECT().ListInvitesByAgencyID(gomock.Any(), agency.ID).Return(invites, nil)
			},
			expectLen: 2,
		},
		{
			name:   "agent is rejected",
			caller: types.Principal{ID: "agent-1", Email: "agent@acme.io"},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), "agent@acme.io").Return(false, nil)
				s.EXPECT().GetMembership(gomock.Any(), agency.ID, "agent-1").Return(&types.Membership{Role: types.RoleAgent}, nil)
			},
			expectErr: types.ErrNotAuthorized,
		},
		{
			name:   "admin lists",
			caller: admin,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByID(gomock.Any(), agency.ID).Return(agency, nil)
				s.EXPECT().IsAdmin(gomock.Any(), admin.Email).Return(true, nil)
				s.EXPECT().ListInvitesByAgencyID(gomock.Any(), agency.ID).Return(invites, nil)
			},
			expectLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			s := NewService(mockStorage, NewMockGuardInterface(ctrl), 6, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.List").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage)

			got, err := s.List(context.Background(), tt.caller, agency.ID)
			if !errors.Is(err, tt.expectErr) {
				t.Fatalf("expected %v, got %v", tt.expectErr, err)
			}
			if len(got) != tt.expectLen {
				t.Errorf("expected %d invites, got %d", tt.expectLen, len(got))
			}
		})
	}
}

func TestService_Redeem(t *testing.T) {
	p := types.Principal{ID: "agent-1", Email: "agent@acme.io"}
	dbErr := errors.New("connection reset")

	tests := []struct {
		name        string
		code        string
		setupMocks  func(*MockStorageInterface, *MockGuardInterface, *MockMonitorInterface)
		expectErr   error
		expectRole  types.Role
		expectFresh bool
	}{
		{
			name: "code is normalised before lookup",
			code: "  ab3kz9 ",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), "invite.redeem:agent-1:ab3kz9").Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "AB3KZ9", p, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, _ types.Principal, check storage.InviteCheck) (*types.Redemption, error) {
						if err := check(&types.Invite{Status: types.InviteActive, Role: types.RoleAgent}); err != nil {
							return nil, err
						}
						return &types.Redemption{AgencyID: agency.ID, Role: types.RoleAgent, Created: true}, nil
					},
				)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "created"}).Return(nil)
			},
			expectRole:  types.RoleAgent,
			expectFresh: true,
		},
		{
			name: "existing member",
			code: "AB3KZ9",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "AB3KZ9", p, gomock.Any()).Return(&types.Redemption{AgencyID: agency.ID, Role: types.RoleAgent}, nil)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "existing"}).Return(nil)
			},
			expectRole: types.RoleAgent,
		},
		{
			name: "unknown code",
			code: "NOPE22",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "NOPE22", p, gomock.Any()).Return(nil, storage.ErrNotFound)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "not_found"}).Return(nil)
			},
			expectErr: types.ErrInviteNotFound,
		},
		{
			name: "blank code",
			code: "   ",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "not_found"}).Return(nil)
			},
			expectErr: types.ErrInviteNotFound,
		},
		{
			name: "check failure is surfaced",
			code: "AB3KZ9",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "AB3KZ9", p, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, _ types.Principal, check storage.InviteCheck) (*types.Redemption, error) {
						return nil, check(&types.Invite{Status: types.InviteDisabled})
					},
				)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "inactive"}).Return(nil)
			},
			expectErr: types.ErrInviteInactive,
		},
		{
			name: "owner already taken",
			code: "AB3KZ9",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "AB3KZ9", p, gomock.Any()).Return(nil, types.ErrOwnerTaken)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "owner_taken"}).Return(nil)
			},
			expectErr: types.ErrOwnerTaken,
		},
		{
			name: "storage failure is a backend error",
			code: "AB3KZ9",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				s.EXPECT().RedeemInvite(gomock.Any(), "AB3KZ9", p, gomock.Any()).Return(nil, dbErr)
				m.EXPECT().IncInviteRedemption(map[string]string{"outcome": "error"}).Return(nil)
			},
			expectErr: dbErr,
		},
		{
			name: "duplicate submission",
			code: "AB3KZ9",
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface, m *MockMonitorInterface) {
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(nil, types.ErrRequestInProgress)
			},
			expectErr: types.ErrRequestInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockGuard := NewMockGuardInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			s := NewService(mockStorage, mockGuard, 6, mockTracer, mockMonitor, logging.NewNoopLogger())

			mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.Redeem").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage, mockGuard, mockMonitor)

			r, err := s.Redeem(context.Background(), p, tt.code, "")

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Role != tt.expectRole || r.Created != tt.expectFresh {
				t.Errorf("unexpected redemption %+v", r)
			}
		})
	}
}

func TestService_Peek(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	s := NewService(mockStorage, NewMockGuardInterface(ctrl), 6, mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	mockTracer.EXPECT().Start(gomock.Any(), "invite.Service.Peek").Return(context.Background(), trace.SpanFromContext(context.Background())).Times(2)
	mockStorage.EXPECT().GetInviteByCode(gomock.Any(), "OWN234").Return(&types.Invite{Code: "OWN234", Status: types.InviteActive, Role: types.RoleAgent}, nil).Times(2)

	if _, err := s.Peek(context.Background(), "own234", types.RoleOwner); !errors.Is(err, types.ErrInviteRoleMismatch) {
		t.Errorf("expected ErrInviteRoleMismatch, got %v", err)
	}

	inv, err := s.Peek(context.Background(), "OWN234", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Code != "OWN234" {
		t.Errorf("expected invite OWN234, got %q", inv.Code)
	}
}
