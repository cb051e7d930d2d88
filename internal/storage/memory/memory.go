// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package memory is an in-process tenancy store with the same semantics as the
// PostgreSQL store. It backs local development and concurrency tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velocityonboard/onboard-service/internal/db"
	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

var _ storage.StorageInterface = (*Store)(nil)

type membershipKey struct {
	agencyID string
	userID   string
}

type Store struct {
	mu sync.Mutex

	agencies    map[string]*types.Agency
	memberships map[membershipKey]*types.Membership
	invites     map[string]*types.Invite
	admins      map[string]*types.AdminUser

	now    func() time.Time
	tracer tracing.TracingInterface
}

func NewStore(tracer tracing.TracingInterface) *Store {
	return &Store{
		agencies:    make(map[string]*types.Agency),
		memberships: make(map[membershipKey]*types.Membership),
		invites:     make(map[string]*types.Invite),
		admins:      make(map[string]*types.AdminUser),
		now:         time.Now,
		tracer:      tracer,
	}
}

func copyAgency(a *types.Agency) *types.Agency {
	c := *a
	c.Theme = maps.Clone(a.Theme)
	if c.Theme == nil {
		c.Theme = types.ThemeTokens{}
	}
	return &c
}

func copyInvite(i *types.Invite) *types.Invite {
	c := *i
	if i.MaxUses != nil {
		n := *i.MaxUses
		c.MaxUses = &n
	}
	if i.ExpiresAt != nil {
		t := *i.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}

func copyMembership(m *types.Membership) *types.Membership {
	c := *m
	return &c
}

func (s *Store) newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

func (s *Store) slugTaken(slug, exceptID string) bool {
	for _, a := range s.agencies {
		if a.Slug == slug && a.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) publicSlugTaken(a *types.Agency) bool {
	if !a.IsPublic || a.PublicSlug == "" {
		return false
	}
	for _, other := range s.agencies {
		if other.ID != a.ID && other.IsPublic && other.PublicSlug == a.PublicSlug {
			return true
		}
	}
	return false
}

func (s *Store) ownerMembership(agencyID string) *types.Membership {
	for k, m := range s.memberships {
		if k.agencyID == agencyID && m.Role == types.RoleOwner {
			return m
		}
	}
	return nil
}

// upsertOwner mirrors ON CONFLICT (agency_id, user_id) DO UPDATE SET role = owner.
func (s *Store) upsertOwner(agencyID string, p types.Principal) error {
	if existing := s.ownerMembership(agencyID); existing != nil && existing.UserID != p.ID {
		return fmt.Errorf("memberships_single_owner_key: %w", storage.ErrDuplicateKey)
	}

	key := membershipKey{agencyID, p.ID}
	if m, ok := s.memberships[key]; ok {
		m.Role = types.RoleOwner
		return nil
	}

	s.memberships[key] = &types.Membership{
		AgencyID:  agencyID,
		UserID:    p.ID,
		UserEmail: p.NormalizedEmail(),
		Role:      types.RoleOwner,
		CreatedAt: s.now(),
	}
	return nil
}

func (s *Store) CreateAgencyWithOwner(ctx context.Context, a *types.Agency, owner types.Principal) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.CreateAgencyWithOwner")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slugTaken(a.Slug, "") {
		return nil, fmt.Errorf("insert agency: agencies_slug_key: %w", storage.ErrDuplicateKey)
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	now := s.now()
	created := copyAgency(a)
	created.ID = id
	created.OwnerUserID = owner.ID
	created.PendingOwnerEmail = ""
	created.IsPublic = false
	created.PublicSlug = ""
	created.Suspended = false
	created.CreatedAt = now
	created.UpdatedAt = now

	s.agencies[id] = created
	if err := s.upsertOwner(id, owner); err != nil {
		delete(s.agencies, id)
		return nil, err
	}

	return copyAgency(created), nil
}

func (s *Store) UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.UpdateAgency")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.agencies[a.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	next := copyAgency(current)
	for _, p := range paths {
		switch p {
		case "name":
			next.Name = a.Name
		case "slug":
			next.Slug = a.Slug
		case "logo_url":
			next.LogoURL = a.LogoURL
		case "theme":
			next.Theme = maps.Clone(a.Theme)
		case "is_public":
			next.IsPublic = a.IsPublic
		case "public_slug":
			next.PublicSlug = a.PublicSlug
		case "legal_name":
			next.LegalName = a.LegalName
		case "calendly_url":
			next.CalendlyURL = a.CalendlyURL
		case "suspended":
			next.Suspended = a.Suspended
		}
	}

	if s.slugTaken(next.Slug, next.ID) {
		return nil, fmt.Errorf("update agency: agencies_slug_key: %w", storage.ErrDuplicateKey)
	}
	if s.publicSlugTaken(next) {
		return nil, fmt.Errorf("update agency: agencies_public_slug_key: %w", storage.ErrDuplicateKey)
	}

	next.UpdatedAt = s.now()
	s.agencies[a.ID] = next

	return copyAgency(next), nil
}

func (s *Store) GetAgencyByID(ctx context.Context, id string) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetAgencyByID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agencies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyAgency(a), nil
}

func (s *Store) findAgency(match func(*types.Agency) bool) (*types.Agency, error) {
	var found *types.Agency
	for _, a := range s.agencies {
		if match(a) && (found == nil || a.CreatedAt.Before(found.CreatedAt)) {
			found = a
		}
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	return copyAgency(found), nil
}

func (s *Store) GetAgencyByOwner(ctx context.Context, userID string) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetAgencyByOwner")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findAgency(func(a *types.Agency) bool { return userID != "" && a.OwnerUserID == userID })
}

func (s *Store) GetPublicAgency(ctx context.Context, publicSlug string) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetPublicAgency")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.findAgency(func(a *types.Agency) bool {
		return a.IsPublic && !a.Suspended && a.PublicSlug == publicSlug
	})
}

func (s *Store) ListAgencies(ctx context.Context, page, size int64) ([]*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ListAgencies")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*types.Agency, 0, len(s.agencies))
	for _, a := range s.agencies {
		c := copyAgency(a)
		for k := range s.memberships {
			if k.agencyID == a.ID {
				c.MemberCount++
			}
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	pageSize := db.PageSize(size)
	offset := db.Offset(page, pageSize)
	if offset >= uint64(len(all)) {
		return []*types.Agency{}, nil
	}
	end := min(offset+pageSize, uint64(len(all)))

	return all[offset:end], nil
}

func (s *Store) SetAgencySuspended(ctx context.Context, id string, suspended bool) error {
	_, err := s.UpdateAgency(ctx, &types.Agency{ID: id, Suspended: suspended}, []string{"suspended"})
	return err
}

func (s *Store) ProvisionAgency(ctx context.Context, a *types.Agency, ownerUserID, ownerEmail string) (*types.Agency, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ProvisionAgency")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	ownerEmail = types.NormalizeEmail(ownerEmail)
	now := s.now()

	var current *types.Agency
	for _, existing := range s.agencies {
		if existing.Slug == a.Slug {
			current = existing
			break
		}
	}

	if current == nil {
		id, err := s.newID()
		if err != nil {
			return nil, err
		}
		current = &types.Agency{ID: id, Slug: a.Slug, Theme: types.ThemeTokens{}, CreatedAt: now}
		s.agencies[id] = current
	}
	current.Name = a.Name
	current.UpdatedAt = now

	switch {
	case current.OwnerUserID != "" && current.OwnerUserID != ownerUserID:
		return nil, types.ErrOwnerTaken
	case current.OwnerUserID != "":
		return copyAgency(current), nil
	}

	if ownerUserID == "" {
		current.PendingOwnerEmail = ownerEmail
		return copyAgency(current), nil
	}

	if err := s.upsertOwner(current.ID, types.Principal{ID: ownerUserID, Email: ownerEmail}); err != nil {
		return nil, err
	}
	current.OwnerUserID = ownerUserID
	current.PendingOwnerEmail = ""

	return copyAgency(current), nil
}

func (s *Store) ClaimPendingAgencies(ctx context.Context, p types.Principal) ([]string, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ClaimPendingAgencies")
	defer span.End()

	email := p.NormalizedEmail()
	if email == "" || p.ID == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	claimed := make([]string, 0)
	for _, a := range s.agencies {
		if a.OwnerUserID != "" || types.NormalizeEmail(a.PendingOwnerEmail) != email {
			continue
		}
		if err := s.upsertOwner(a.ID, p); err != nil {
			return nil, err
		}
		a.OwnerUserID = p.ID
		a.PendingOwnerEmail = ""
		a.UpdatedAt = s.now()
		claimed = append(claimed, a.ID)
	}
	slices.Sort(claimed)

	return claimed, nil
}

func (s *Store) GetMembership(ctx context.Context, agencyID, userID string) (*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetMembership")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.memberships[membershipKey{agencyID, userID}]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyMembership(m), nil
}

func (s *Store) listMemberships(match func(*types.Membership) bool) []*types.Membership {
	out := make([]*types.Membership, 0)
	for _, m := range s.memberships {
		if match(m) {
			out = append(out, copyMembership(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *Store) ListMembersByAgencyID(ctx context.Context, agencyID string) ([]*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ListMembersByAgencyID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listMemberships(func(m *types.Membership) bool { return m.AgencyID == agencyID }), nil
}

func (s *Store) ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ListMembershipsByUserID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listMemberships(func(m *types.Membership) bool { return m.UserID == userID }), nil
}

func (s *Store) UpdateMemberRole(ctx context.Context, agencyID, userID string, role types.Role) error {
	_, span := s.tracer.Start(ctx, "memory.Store.UpdateMemberRole")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.memberships[membershipKey{agencyID, userID}]
	if !ok || m.Role == types.RoleOwner {
		return storage.ErrNotFound
	}
	if role == types.RoleOwner && s.ownerMembership(agencyID) != nil {
		return fmt.Errorf("update member: memberships_single_owner_key: %w", storage.ErrDuplicateKey)
	}
	m.Role = role

	return nil
}

func (s *Store) RemoveMember(ctx context.Context, agencyID, userID string) error {
	_, span := s.tracer.Start(ctx, "memory.Store.RemoveMember")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	key := membershipKey{agencyID, userID}
	m, ok := s.memberships[key]
	if !ok || m.Role == types.RoleOwner {
		return storage.ErrNotFound
	}
	delete(s.memberships, key)

	return nil
}

func (s *Store) CreateInvite(ctx context.Context, inv *types.Invite) (*types.Invite, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.CreateInvite")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.agencies[inv.AgencyID]; !ok {
		return nil, fmt.Errorf("insert invite: %w", storage.ErrForeignKeyViolation)
	}
	for _, other := range s.invites {
		if other.Code == inv.Code && other.Status == types.InviteActive {
			return nil, fmt.Errorf("insert invite: invites_active_code_key: %w", storage.ErrDuplicateKey)
		}
	}

	id, err := s.newID()
	if err != nil {
		return nil, err
	}

	created := copyInvite(inv)
	created.ID = id
	created.Status = types.InviteActive
	created.Uses = 0
	created.CreatedAt = s.now()
	s.invites[id] = created

	return copyInvite(created), nil
}

// inviteByCode prefers the active invite, then the most recent one.
func (s *Store) inviteByCode(code string) *types.Invite {
	var found *types.Invite
	for _, inv := range s.invites {
		if inv.Code != code {
			continue
		}
		switch {
		case found == nil:
			found = inv
		case inv.Status == types.InviteActive && found.Status != types.InviteActive:
			found = inv
		case (inv.Status == types.InviteActive) == (found.Status == types.InviteActive) && inv.CreatedAt.After(found.CreatedAt):
			found = inv
		}
	}
	return found
}

func (s *Store) GetInviteByCode(ctx context.Context, code string) (*types.Invite, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetInviteByCode")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.inviteByCode(code)
	if inv == nil {
		return nil, storage.ErrNotFound
	}
	return copyInvite(inv), nil
}

func (s *Store) GetInviteByID(ctx context.Context, id string) (*types.Invite, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.GetInviteByID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invites[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyInvite(inv), nil
}

func (s *Store) ListInvitesByAgencyID(ctx context.Context, agencyID string) ([]*types.Invite, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ListInvitesByAgencyID")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.Invite, 0)
	for _, inv := range s.invites {
		if inv.AgencyID == agencyID {
			out = append(out, copyInvite(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (s *Store) DisableInvite(ctx context.Context, id string) error {
	_, span := s.tracer.Start(ctx, "memory.Store.DisableInvite")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invites[id]
	if !ok {
		return storage.ErrNotFound
	}
	if inv.Status == types.InviteActive {
		inv.Status = types.InviteDisabled
	}

	return nil
}

// RedeemInvite holds the store lock for the whole check-and-consume sequence.
func (s *Store) RedeemInvite(ctx context.Context, code string, p types.Principal, check storage.InviteCheck) (*types.Redemption, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.RedeemInvite")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := s.inviteByCode(code)
	if inv == nil {
		return nil, storage.ErrNotFound
	}

	if err := check(copyInvite(inv)); err != nil {
		return nil, err
	}

	redemption := &types.Redemption{AgencyID: inv.AgencyID, Role: inv.Role}

	key := membershipKey{inv.AgencyID, p.ID}
	if _, ok := s.memberships[key]; ok {
		return redemption, nil
	}

	agency, ok := s.agencies[inv.AgencyID]
	if !ok {
		return nil, fmt.Errorf("insert membership: %w", storage.ErrForeignKeyViolation)
	}

	if inv.Role == types.RoleOwner {
		if agency.OwnerUserID != "" {
			return nil, types.ErrOwnerTaken
		}
		if s.ownerMembership(agency.ID) != nil {
			return nil, fmt.Errorf("insert membership: memberships_single_owner_key: %w", storage.ErrDuplicateKey)
		}
		agency.OwnerUserID = p.ID
		agency.PendingOwnerEmail = ""
		agency.UpdatedAt = s.now()
	}

	s.memberships[key] = &types.Membership{
		AgencyID:  inv.AgencyID,
		UserID:    p.ID,
		UserEmail: p.NormalizedEmail(),
		Role:      inv.Role,
		CreatedAt: s.now(),
	}

	inv.Uses++
	if inv.MaxUses != nil && inv.Uses >= *inv.MaxUses {
		inv.Status = types.InviteUsed
	}

	redemption.Created = true
	return redemption, nil
}

func (s *Store) IsAdmin(ctx context.Context, email string) (bool, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.IsAdmin")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.admins[types.NormalizeEmail(email)]
	return ok, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]*types.AdminUser, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.ListAdmins")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.AdminUser, 0, len(s.admins))
	for _, email := range slices.Sorted(maps.Keys(s.admins)) {
		a := *s.admins[email]
		out = append(out, &a)
	}

	return out, nil
}

func (s *Store) AddAdmin(ctx context.Context, email string) (*types.AdminUser, error) {
	_, span := s.tracer.Start(ctx, "memory.Store.AddAdmin")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	email = types.NormalizeEmail(email)
	a, ok := s.admins[email]
	if !ok {
		a = &types.AdminUser{Email: email, CreatedAt: s.now()}
		s.admins[email] = a
	}

	c := *a
	return &c, nil
}

func (s *Store) RemoveAdmin(ctx context.Context, email string) error {
	_, span := s.tracer.Start(ctx, "memory.Store.RemoveAdmin")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	email = types.NormalizeEmail(email)
	if _, ok := s.admins[email]; !ok {
		return storage.ErrNotFound
	}
	delete(s.admins, email)

	return nil
}
