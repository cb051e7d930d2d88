// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/kratos"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage/memory"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/claim"
	"github.com/velocityonboard/onboard-service/pkg/invite"
	"github.com/velocityonboard/onboard-service/pkg/session"
)

//go:generate mockgen -build_flags=--mod=mod -package accounts -destination ./mock_accounts.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package accounts -destination ./mock_logger.go -source=../../internal/logging/interfaces.go

var agent = types.Principal{ID: "agent-1", Email: "agent@acme.io"}

func noRelease() {}

type mocks struct {
	auth       *MockAuthClientInterface
	invites    *MockInviteServiceInterface
	reconciler *MockReconcilerInterface
	router     *MockRouterInterface
	guard      *MockGuardInterface
}

func newMockedService(ctrl *gomock.Controller) (*Service, *mocks) {
	m := &mocks{
		auth:       NewMockAuthClientInterface(ctrl),
		invites:    NewMockInviteServiceInterface(ctrl),
		reconciler: NewMockReconcilerInterface(ctrl),
		router:     NewMockRouterInterface(ctrl),
		guard:      NewMockGuardInterface(ctrl),
	}

	s := NewService(m.auth, m.invites, m.reconciler, m.router, m.guard, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

	return s, m
}

func TestService_AgentSignup(t *testing.T) {
	redemption := &types.Redemption{AgencyID: "agency-1", Role: types.RoleAgent, Created: true}

	tests := []struct {
		name       string
		input      SignupInput
		setupMocks func(*mocks)
		expectErr  error
		expectKind types.ErrorKind
		validate   func(*testing.T, *Result)
	}{
		{
			name:  "redeem then claim then route",
			input: SignupInput{Email: " Agent@Acme.io", Password: "correct-horse", Code: "ab3kz9"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), inflight.Key("auth.signup", agent.Email)).Return(noRelease, nil)
				gomock.InOrder(
					m.invites.EXPECT().Peek(gomock.Any(), "ab3kz9", types.Role("")).Return(&types.Invite{}, nil),
					m.auth.EXPECT().SignUp(gomock.Any(), agent.Email, "correct-horse").Return(&kratos.AuthResult{Principal: agent, SessionToken: "ory_st_1"}, nil),
					m.invites.EXPECT().Redeem(gomock.Any(), agent, "ab3kz9", types.Role("")).Return(redemption, nil),
					m.reconciler.EXPECT().Reconcile(gomock.Any(), agent).Return(nil),
					m.router.EXPECT().Route(gomock.Any(), agent).Return(types.ConsoleAgent),
				)
			},
			validate: func(t *testing.T, r *Result) {
				if r.Status != StatusOK || r.SessionToken != "ory_st_1" {
					t.Errorf("unexpected result %+v", r)
				}
				if r.Console != types.ConsoleAgent || r.Redirect != "/agent" {
					t.Errorf("expected agent console, got %s %s", r.Console, r.Redirect)
				}
				if r.Redemption != redemption {
					t.Errorf("expected the redemption to be reported")
				}
			},
		},
		{
			name:  "unconfirmed identity stops before redemption",
			input: SignupInput{Email: agent.Email, Password: "correct-horse", Code: "AB3KZ9"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				m.invites.EXPECT().Peek(gomock.Any(), "AB3KZ9", types.Role("")).Return(&types.Invite{}, nil)
				m.auth.EXPECT().SignUp(gomock.Any(), agent.Email, "correct-horse").Return(&kratos.AuthResult{Principal: agent}, nil)
			},
			validate: func(t *testing.T, r *Result) {
				if r.Status != StatusConfirmationRequired || r.Message != ConfirmationMessage {
					t.Errorf("unexpected result %+v", r)
				}
				if r.SessionToken != "" || r.Console != "" {
					t.Errorf("expected no session, got %+v", r)
				}
			},
		},
		{
			name:  "bad code never reaches the identity provider",
			input: SignupInput{Email: agent.Email, Password: "correct-horse", Code: "NOPE00"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				m.invites.EXPECT().Peek(gomock.Any(), "NOPE00", types.Role("")).Return(nil, types.ErrInviteNotFound)
			},
			expectErr: types.ErrInviteNotFound,
		},
		{
			name:  "failed redemption still claims pending agencies",
			input: SignupInput{Email: agent.Email, Password: "correct-horse", Code: "LAST99"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				gomock.InOrder(
					m.invites.EXPECT().Peek(gomock.Any(), "LAST99", types.Role("")).Return(&types.Invite{}, nil),
					m.auth.EXPECT().SignUp(gomock.Any(), agent.Email, "correct-horse").Return(&kratos.AuthResult{Principal: agent, SessionToken: "ory_st_1"}, nil),
					m.invites.EXPECT().Redeem(gomock.Any(), agent, "LAST99", types.Role("")).Return(nil, types.ErrInviteExhausted),
					m.reconciler.EXPECT().Reconcile(gomock.Any(), agent).Return([]string{"agency-9"}),
				)
			},
			expectErr: types.ErrInviteExhausted,
		},
		{
			name:  "duplicate submission",
			input: SignupInput{Email: agent.Email, Password: "correct-horse", Code: "AB3KZ9"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(nil, types.ErrRequestInProgress)
			},
			expectErr: types.ErrRequestInProgress,
		},
		{
			name:       "short password",
			input:      SignupInput{Email: agent.Email, Password: "short", Code: "AB3KZ9"},
			setupMocks: func(*mocks) {},
			expectKind: types.KindValidation,
		},
		{
			name:  "identity provider rejects the email",
			input: SignupInput{Email: agent.Email, Password: "correct-horse", Code: "AB3KZ9"},
			setupMocks: func(m *mocks) {
				m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
				m.invites.EXPECT().Peek(gomock.Any(), gomock.Any(), gomock.Any()).Return(&types.Invite{}, nil)
				m.auth.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, types.NewAuthError("An account with the same identifier exists already.", nil))
			},
			expectKind: types.KindAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newMockedService(ctrl)
			tt.setupMocks(m)

			r, err := s.AgentSignup(context.Background(), &tt.input)

			switch {
			case tt.expectErr != nil:
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			case tt.validate == nil:
				if err == nil || types.KindOf(err) != tt.expectKind {
					t.Fatalf("expected %s error, got %v", tt.expectKind, err)
				}
				return
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			tt.validate(t, r)
		})
	}
}

func TestService_AgencySignupRequiresOwnerInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newMockedService(ctrl)

	m.guard.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(noRelease, nil)
	m.invites.EXPECT().Peek(gomock.Any(), "AGENT1", types.RoleOwner).Return(nil, types.ErrInviteRoleMismatch)

	_, err := s.AgencySignup(context.Background(), &SignupInput{Email: "boss@acme.io", Password: "correct-horse", Code: "AGENT1"})
	if !errors.Is(err, types.ErrInviteRoleMismatch) {
		t.Fatalf("expected %v, got %v", types.ErrInviteRoleMismatch, err)
	}
}

func TestService_Login(t *testing.T) {
	t.Run("agent login with code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newMockedService(ctrl)

		gomock.InOrder(
			m.auth.EXPECT().SignIn(gomock.Any(), agent.Email, "pw").Return(&kratos.AuthResult{Principal: agent, SessionToken: "tok"}, nil),
			m.invites.EXPECT().Redeem(gomock.Any(), agent, "AB3KZ9", types.Role("")).Return(&types.Redemption{AgencyID: "agency-1"}, nil),
			m.reconciler.EXPECT().Reconcile(gomock.Any(), agent).Return(nil),
			m.router.EXPECT().Route(gomock.Any(), agent).Return(types.ConsoleAgent),
		)

		r, err := s.AgentLogin(context.Background(), &LoginInput{Email: "AGENT@acme.io", Password: "pw", Code: "AB3KZ9"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Redemption == nil || r.Redemption.AgencyID != "agency-1" {
			t.Errorf("expected redemption, got %+v", r)
		}
	})

	t.Run("agent login with a spent code still claims", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newMockedService(ctrl)

		gomock.InOrder(
			m.auth.EXPECT().SignIn(gomock.Any(), agent.Email, "pw").Return(&kratos.AuthResult{Principal: agent, SessionToken: "tok"}, nil),
			m.invites.EXPECT().Redeem(gomock.Any(), agent, "LAST99", types.Role("")).Return(nil, types.ErrInviteExhausted),
			m.reconciler.EXPECT().Reconcile(gomock.Any(), agent).Return(nil),
		)

		if _, err := s.AgentLogin(context.Background(), &LoginInput{Email: agent.Email, Password: "pw", Code: "LAST99"}); !errors.Is(err, types.ErrInviteExhausted) {
			t.Fatalf("expected %v, got %v", types.ErrInviteExhausted, err)
		}
	})

	t.Run("agency login claims pending agencies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newMockedService(ctrl)
		boss := types.Principal{ID: "boss-1", Email: "boss@acme.io"}

		gomock.InOrder(
			m.auth.EXPECT().SignIn(gomock.Any(), boss.Email, "pw").Return(&kratos.AuthResult{Principal: boss, SessionToken: "tok"}, nil),
			m.reconciler.EXPECT().Reconcile(gomock.Any(), boss).Return([]string{"agency-7"}),
			m.router.EXPECT().Route(gomock.Any(), boss).Return(types.ConsoleAgency),
		)

		r, err := s.AgencyLogin(context.Background(), &LoginInput{Email: boss.Email, Password: "pw"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Redirect != "/agency" || len(r.Claimed) != 1 {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newMockedService(ctrl)
		m.auth.EXPECT().SignIn(gomock.Any(), agent.Email, "wrong").Return(nil, types.NewAuthError("invalid email or password", nil))

		if _, err := s.AgencyLogin(context.Background(), &LoginInput{Email: agent.Email, Password: "wrong"}); types.KindOf(err) != types.KindAuth {
			t.Fatalf("expected auth error, got %v", err)
		}
	})
}

func TestService_SetPassword(t *testing.T) {
	tests := []struct {
		name       string
		input      PasswordInput
		setupMocks func(*mocks)
		expectMsg  string
	}{
		{
			name:       "too short",
			input:      PasswordInput{Password: "1234567", Confirm: "1234567"},
			setupMocks: func(*mocks) {},
			expectMsg:  "password must be at least 8 characters",
		},
		{
			name:       "mismatch",
			input:      PasswordInput{Password: "12345678", Confirm: "12345679"},
			setupMocks: func(*mocks) {},
			expectMsg:  "passwords do not match",
		},
		{
			name:  "welcome flow lands in the agency console",
			input: PasswordInput{Password: "12345678", Confirm: "12345678"},
			setupMocks: func(m *mocks) {
				gomock.InOrder(
					m.auth.EXPECT().UpdatePassword(gomock.Any(), "ory_st_9", "12345678").Return(nil),
					m.reconciler.EXPECT().Reconcile(gomock.Any(), agent).Return([]string{"agency-1"}),
					m.router.EXPECT().Route(gomock.Any(), agent).Return(types.ConsoleAgency),
				)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newMockedService(ctrl)
			tt.setupMocks(m)

			r, err := s.SetPassword(context.Background(), agent, "ory_st_9", &tt.input)
			if tt.expectMsg != "" {
				if types.KindOf(err) != types.KindValidation || err.Error() != tt.expectMsg {
					t.Fatalf("expected validation error %q, got %v", tt.expectMsg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Console != types.ConsoleAgency {
				t.Errorf("expected agency console, got %s", r.Console)
			}
		})
	}
}

// The owner invite has to be redeemed before pending ownership is claimed,
// otherwise the claim would bind the agency first and the redemption would
// report it as taken.
func TestAgencySignupOrdering(t *testing.T) {
	ctx := context.Background()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	store := memory.NewStore(tracer)
	guard := inflight.NewLocalGuard()

	pending, err := store.ProvisionAgency(ctx, &types.Agency{Name: "Acme", Slug: "acme"}, "", "boss@acme.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uses := 1
	expires := time.Now().Add(time.Hour)
	inv, err := store.CreateInvite(ctx, &types.Invite{AgencyID: pending.ID, Code: "OWNER2", Role: types.RoleOwner, MaxUses: &uses, ExpiresAt: &expires, CreatedBy: "admin-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boss := types.Principal{ID: "boss-1", Email: "boss@acme.io"}
	auth := NewMockAuthClientInterface(ctrl)
	auth.EXPECT().SignUp(gomock.Any(), boss.Email, "correct-horse").Return(&kratos.AuthResult{Principal: boss, SessionToken: "tok"}, nil)

	reconciler := claim.NewReconciler(store, 1, time.Millisecond, tracer, monitor, logger)
	defer reconciler.Wait()

	s := NewService(
		auth,
		invite.NewService(store, guard, 0, tracer, monitor, logger),
		reconciler,
		session.NewRouter(store, tracer, monitor, logger),
		guard,
		tracer, monitor, logger,
	)

	r, err := s.AgencySignup(ctx, &SignupInput{Email: boss.Email, Password: "correct-horse", Code: inv.Code})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Console != types.ConsoleAgency {
		t.Errorf("expected agency console, got %s", r.Console)
	}
	if r.Redemption == nil || !r.Redemption.Created || r.Redemption.Role != types.RoleOwner {
		t.Errorf("expected an owner redemption, got %+v", r.Redemption)
	}

	a, err := store.GetAgencyByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.OwnerUserID != boss.ID || a.Pending() {
		t.Errorf("expected %s to own the agency, got %+v", boss.ID, a)
	}
}
