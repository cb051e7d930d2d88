// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/velocityonboard/onboard-service/internal/db"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/migrations"
)

// newTestStorage migrates the database at TEST_DSN and empties it.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("TEST_DSN not set, skipping postgres integration test")
	}

	ctx := context.Background()

	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("invalid TEST_DSN: %v", err)
	}
	sqlDB := stdlib.OpenDB(*config)
	t.Cleanup(func() { sqlDB.Close() })

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.EmbedMigrations, goose.WithLogger(goose.NopLogger()))
	if err != nil {
		t.Fatalf("failed to create goose provider: %v", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "TRUNCATE agencies, memberships, invites, admin_users CASCADE"); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}

	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test")
	logger := logging.NewNoopLogger()

	client, err := db.NewDBClient(db.Config{DSN: dsn, MaxConns: 10, MinConns: 1, MaxConnLifetime: time.Hour, MaxConnIdleTime: time.Minute}, tracer, monitor, logger)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(client.Close)

	return NewStorage(client, tracer, monitor, logger)
}

func TestStorage_RedeemConcurrently(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a, err := s.CreateAgencyWithOwner(ctx, &types.Agency{Name: "Acme", Slug: "acme"}, types.Principal{ID: "owner-1", Email: "owner@acme.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	maxUses := 3
	if _, err := s.CreateInvite(ctx, &types.Invite{AgencyID: a.ID, Code: "LAST99", Role: types.RoleAgent, MaxUses: &maxUses, CreatedBy: "owner-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := func(inv *types.Invite) error {
		if inv.Status == types.InviteUsed || inv.Exhausted() {
			return types.ErrInviteExhausted
		}
		return nil
	}

	var (
		wg        sync.WaitGroup
		ok        atomic.Int32
		exhausted atomic.Int32
	)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RedeemInvite(ctx, "LAST99", types.Principal{ID: fmt.Sprintf("agent-%d", i)}, check)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, types.ErrInviteExhausted):
				exhausted.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok.Load() != 3 || exhausted.Load() != 5 {
		t.Errorf("expected 3 redemptions and 5 rejections, got %d and %d", ok.Load(), exhausted.Load())
	}

	inv, err := s.GetInviteByCode(ctx, "LAST99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Uses != 3 || inv.Status != types.InviteUsed {
		t.Errorf("expected invite used with 3 uses, got status %s uses %d", inv.Status, inv.Uses)
	}

	r, err := s.RedeemInvite(ctx, "LAST99", types.Principal{ID: "agent-0"}, func(*types.Invite) error { return nil })
	if err == nil && r.Created {
		t.Errorf("expected an existing member not to get a second membership")
	}
}

func TestStorage_RedeemTwoInvitesOfOneAgency(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a, err := s.CreateAgencyWithOwner(ctx, &types.Agency{Name: "Gamma", Slug: "gamma"}, types.Principal{ID: "owner-1", Email: "owner@gamma.io"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	codes := []string{"TWIN22", "TWIN33"}
	for _, code := range codes {
		if _, err := s.CreateInvite(ctx, &types.Invite{AgencyID: a.ID, Code: code, Role: types.RoleAgent, CreatedBy: "owner-1"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	agent := types.Principal{ID: "agent-1", Email: "agent@gamma.io"}
	pass := func(*types.Invite) error { return nil }

	for range 5 {
		results := make([]*types.Redemption, len(codes))
		errs := make([]error, len(codes))

		var wg sync.WaitGroup
		for i, code := range codes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = s.RedeemInvite(ctx, code, agent, pass)
			}()
		}
		wg.Wait()

		created := 0
		for i, err := range errs {
			if err != nil {
				t.Fatalf("expected redeeming %s to succeed, got %v", codes[i], err)
			}
			if results[i].Created {
				created++
			}
		}
		if created != 1 {
			t.Fatalf("expected exactly one membership to be created, got %d", created)
		}
		if err := s.RemoveMember(ctx, a.ID, agent.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	uses := 0
	for _, code := range codes {
		inv, err := s.GetInviteByCode(ctx, code)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		uses += inv.Uses
	}
	if uses != 5 {
		t.Errorf("expected one use per created membership, got %d uses over 5 rounds", uses)
	}
}

func TestStorage_ProvisionAndClaim(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	a, err := s.ProvisionAgency(ctx, &types.Agency{Name: "Beta", Slug: "beta"}, "", "Boss@Beta.io")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Pending() || a.PendingOwnerEmail != "boss@beta.io" {
		t.Fatalf("expected a pending agency for boss@beta.io, got %+v", a)
	}

	p := types.Principal{ID: "boss-1", Email: "BOSS@beta.io"}

	claimed, err := s.ClaimPendingAgencies(ctx, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claimed) != 1 || claimed[0] != a.ID {
		t.Fatalf("expected %s to be claimed, got %v", a.ID, claimed)
	}

	again, err := s.ClaimPendingAgencies(ctx, p)
	if err != nil || len(again) != 0 {
		t.Errorf("expected a second claim to be a no-op, got %v %v", again, err)
	}

	m, err := s.GetMembership(ctx, a.ID, "boss-1")
	if err != nil || m.Role != types.RoleOwner {
		t.Errorf("expected an owner membership, got %+v %v", m, err)
	}

	if _, err := s.ProvisionAgency(ctx, &types.Agency{Name: "Beta again", Slug: "beta"}, "", "other@beta.io"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected a duplicate slug to be rejected, got %v", err)
	}
}

func TestStorage_Admins(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.AddAdmin(ctx, " Root@Velocity.io "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	admin, err := s.IsAdmin(ctx, "root@velocity.io")
	if err != nil || !admin {
		t.Fatalf("expected root to be an admin, got %v %v", admin, err)
	}

	if err := s.RemoveAdmin(ctx, "root@velocity.io"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RemoveAdmin(ctx, "root@velocity.io"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound removing a missing admin, got %v", err)
	}
}
