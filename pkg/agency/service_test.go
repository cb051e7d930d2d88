// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/velocityonboard/onboard-service/internal/inflight"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/storage/memory"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package agency -destination ./mock_agency.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package agency -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package agency -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	owner   = types.Principal{ID: "owner-1", Email: "owner@acme.io"}
	manager = types.Principal{ID: "manager-1", Email: "manager@acme.io"}
	admin   = types.Principal{ID: "admin-1", Email: "root@velocity.io"}
)

func noRelease() {}

func newTestService(s StorageInterface, k KratosClientInterface, g GuardInterface) *Service {
	return NewService(s, k, g, "Velocity Onboard LLC", "24h", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Acme Realty":         "acme-realty",
		"  Sun   Coast\tHomes": "sun-coast-homes",
		"already-a-slug":      "already-a-slug",
		"":                    "",
	}

	for in, want := range tests {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestService_GetMine(t *testing.T) {
	owned := &types.Agency{ID: "agency-1", Name: "Acme", OwnerUserID: owner.ID}
	managed := &types.Agency{ID: "agency-2", Name: "Beta"}

	tests := []struct {
		name       string
		caller     types.Principal
		setupMocks func(*MockStorageInterface)
		expectID   string
		expectKind types.ErrorKind
	}{
		{
			name:   "owned agency wins",
			caller: owner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(owned, nil)
			},
			expectID: owned.ID,
		},
		{
			name:   "managed agency is used when nothing is owned",
			caller: manager,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), manager.ID).Return(nil, storage.ErrNotFound)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), manager.ID).Return([]*types.Membership{
					{AgencyID: "agency-3", Role: types.RoleAgent},
					{AgencyID: managed.ID, Role: types.RoleManager},
				}, nil)
				s.EXPECT().GetAgencyByID(gomock.Any(), managed.ID).Return(managed, nil)
			},
			expectID: managed.ID,
		},
		{
			name:   "agents have no agency",
			caller: manager,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), manager.ID).Return(nil, storage.ErrNotFound)
				s.EXPECT().ListMembershipsByUserID(gomock.Any(), manager.ID).Return([]*types.Membership{
					{AgencyID: "agency-3", Role: types.RoleAgent},
				}, nil)
			},
			expectKind: types.KindNotFound,
		},
		{
			name:   "storage failure",
			caller: owner,
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(nil, errors.New("db down"))
			},
			expectKind: types.KindBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			s := NewService(mockStorage, nil, nil, "", "", mockTracer, monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())

			mockTracer.EXPECT().Start(gomock.Any(), "agency.Service.GetMine").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockStorage)

			a, err := s.GetMine(context.Background(), tt.caller)
			if tt.expectID == "" {
				if err == nil || types.KindOf(err) != tt.expectKind {
					t.Fatalf("expected %s error, got %v", tt.expectKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if a.ID != tt.expectID {
				t.Errorf("expected agency %s, got %s", tt.expectID, a.ID)
			}
		})
	}
}

func TestService_UpsertMine(t *testing.T) {
	existing := &types.Agency{ID: "agency-1", Name: "Acme", Slug: "acme", OwnerUserID: owner.ID}

	tests := []struct {
		name       string
		input      Input
		setupMocks func(*MockStorageInterface, *MockGuardInterface)
		expectKind types.ErrorKind
		expectMsg  string
		validate   func(*testing.T, *types.Agency)
	}{
		{
			name:       "name is required",
			input:      Input{Name: "   "},
			setupMocks: func(*MockStorageInterface, *MockGuardInterface) {},
			expectKind: types.KindValidation,
			expectMsg:  "name is required",
		},
		{
			name:  "first save creates the agency unpublished",
			input: Input{Name: "Sun Coast Homes", IsPublic: true, PublicSlug: "sun"},
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(nil, storage.ErrNotFound)
				g.EXPECT().Acquire(gomock.Any(), inflight.Key("agency.create", owner.ID)).Return(noRelease, nil)
				s.EXPECT().CreateAgencyWithOwner(gomock.Any(), gomock.Any(), owner).DoAndReturn(
					func(_ context.Context, a *types.Agency, _ types.Principal) (*types.Agency, error) {
						created := *a
						created.ID = "agency-9"
						created.OwnerUserID = owner.ID
						return &created, nil
					},
				)
			},
			validate: func(t *testing.T, a *types.Agency) {
				if a.Slug != "sun-coast-homes" {
					t.Errorf("expected derived slug, got %q", a.Slug)
				}
				if a.IsPublic || a.PublicSlug != "" {
					t.Errorf("expected a new agency to start unpublished, got %+v", a)
				}
				if a.Theme["mode"] != "light" {
					t.Errorf("expected a normalized theme, got %v", a.Theme)
				}
			},
		},
		{
			name:  "existing agency is updated in place",
			input: Input{Name: "Acme Realty", Slug: "acme"},
			setupMocks: func(s *MockStorageInterface, _ *MockGuardInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(existing, nil)
				s.EXPECT().UpdateAgency(gomock.Any(), gomock.Any(), ownerEditable).DoAndReturn(
					func(_ context.Context, a *types.Agency, _ []string) (*types.Agency, error) {
						if a.ID != existing.ID {
							t.Errorf("expected update of %s, got %s", existing.ID, a.ID)
						}
						return a, nil
					},
				)
			},
			validate: func(t *testing.T, a *types.Agency) {
				if a.Name != "Acme Realty" {
					t.Errorf("unexpected name %q", a.Name)
				}
			},
		},
		{
			name:  "slug collision",
			input: Input{Name: "Acme", Slug: "taken"},
			setupMocks: func(s *MockStorageInterface, _ *MockGuardInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(existing, nil)
				s.EXPECT().UpdateAgency(gomock.Any(), gomock.Any(), ownerEditable).
					Return(nil, fmt.Errorf("update agency: agencies_slug_key: %w", storage.ErrDuplicateKey))
			},
			expectKind: types.KindValidation,
			expectMsg:  "slug already taken",
		},
		{
			name:  "concurrent create",
			input: Input{Name: "Acme"},
			setupMocks: func(s *MockStorageInterface, g *MockGuardInterface) {
				s.EXPECT().GetAgencyByOwner(gomock.Any(), owner.ID).Return(nil, storage.ErrNotFound)
				g.EXPECT().Acquire(gomock.Any(), gomock.Any()).Return(nil, types.ErrRequestInProgress)
			},
			expectKind: types.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockGuard := NewMockGuardInterface(ctrl)
			tt.setupMocks(mockStorage, mockGuard)

			s := newTestService(mockStorage, nil, mockGuard)

			a, err := s.UpsertMine(context.Background(), owner, &tt.input)
			if tt.validate == nil {
				if err == nil || types.KindOf(err) != tt.expectKind {
					t.Fatalf("expected %s error, got %v", tt.expectKind, err)
				}
				if tt.expectMsg != "" && err.Error() != tt.expectMsg {
					t.Errorf("expected message %q, got %q", tt.expectMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, a)
		})
	}
}

func TestService_SetPublished(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(tracing.NewNoopTracer())
	s := newTestService(store, nil, inflight.NewLocalGuard())

	if _, err := s.UpsertMine(ctx, owner, &Input{Name: "Acme Realty"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := s.SetPublished(ctx, owner, true, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsPublic || a.PublicSlug != "acme-realty" {
		t.Fatalf("expected publication under the agency slug, got %+v", a)
	}

	a, err = s.SetPublished(ctx, owner, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.IsPublic || a.PublicSlug != "acme-realty" {
		t.Errorf("expected the public slug to survive unpublishing, got %+v", a)
	}

	if _, err := s.SetPublished(ctx, manager, true, ""); types.KindOf(err) != types.KindNotFound {
		t.Errorf("expected not found for a principal without agency, got %v", err)
	}

	other := types.Principal{ID: "owner-2", Email: "two@beta.io"}
	if _, err := s.UpsertMine(ctx, other, &Input{Name: "Beta"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.SetPublished(ctx, owner, true, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = s.SetPublished(ctx, other, true, "Acme Realty")
	if err == nil || err.Error() != "public slug already taken" {
		t.Errorf("expected public slug collision, got %v", err)
	}
}

func TestService_ResolvePublic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(tracing.NewNoopTracer())
	s := newTestService(store, nil, inflight.NewLocalGuard())

	created, err := s.UpsertMine(ctx, owner, &Input{
		Name:  "Acme Realty",
		Theme: types.ThemeTokens{"primary": "#ffcc00", "radius": 40},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.ResolvePublic(ctx, "acme-realty"); !errors.Is(err, types.ErrAgencyUnavailable) {
		t.Fatalf("expected unpublished agency to be unavailable, got %v", err)
	}

	if _, err := s.SetPublished(ctx, owner, true, "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	public, err := s.ResolvePublic(ctx, "  ACME ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if public.Name != "Acme Realty" || public.PublicSlug != "acme" {
		t.Errorf("unexpected snapshot %+v", public)
	}
	if public.LegalName != "Velocity Onboard LLC" {
		t.Errorf("expected the default legal name, got %q", public.LegalName)
	}
	if public.Theme.Primary != "#ffcc00" || public.Theme.PrimaryContrast != "#0b1220" {
		t.Errorf("expected primary with dark contrast, got %+v", public.Theme)
	}
	if public.CSSVariables["--vo-radius"] != "24px" {
		t.Errorf("expected the radius to be clamped, got %q", public.CSSVariables["--vo-radius"])
	}

	if err := s.SetSuspended(ctx, admin, created.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.ResolvePublic(ctx, "acme"); !errors.Is(err, types.ErrAgencyUnavailable) {
		t.Errorf("expected suspended agency to be unavailable, got %v", err)
	}

	for _, slug := range []string{"", "missing"} {
		if _, err := s.ResolvePublic(ctx, slug); !errors.Is(err, types.ErrAgencyUnavailable) {
			t.Errorf("slug %q: expected unavailable, got %v", slug, err)
		}
	}
}
