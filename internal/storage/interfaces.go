// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

// InviteCheck validates a locked invite row before it is consumed.
type InviteCheck func(*types.Invite) error

type StorageInterface interface {
	AgencyStorage
	MembershipStorage
	InviteStorage
	AdminStorage
}

type AgencyStorage interface {
	CreateAgencyWithOwner(ctx context.Context, a *types.Agency, owner types.Principal) (*types.Agency, error)
	UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error)
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)
	GetAgencyByOwner(ctx context.Context, userID string) (*types.Agency, error)
	GetPublicAgency(ctx context.Context, publicSlug string) (*types.Agency, error)
	ListAgencies(ctx context.Context, page, size int64) ([]*types.Agency, error)
	SetAgencySuspended(ctx context.Context, id string, suspended bool) error
	ProvisionAgency(ctx context.Context, a *types.Agency, ownerUserID, ownerEmail string) (*types.Agency, error)
	ClaimPendingAgencies(ctx context.Context, p types.Principal) ([]string, error)
}

type MembershipStorage interface {
	GetMembership(ctx context.Context, agencyID, userID string) (*types.Membership, error)
	ListMembersByAgencyID(ctx context.Context, agencyID string) ([]*types.Membership, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	UpdateMemberRole(ctx context.Context, agencyID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, agencyID, userID string) error
}

type InviteStorage interface {
	CreateInvite(ctx context.Context, inv *types.Invite) (*types.Invite, error)
	GetInviteByCode(ctx context.Context, code string) (*types.Invite, error)
	GetInviteByID(ctx context.Context, id string) (*types.Invite, error)
	ListInvitesByAgencyID(ctx context.Context, agencyID string) ([]*types.Invite, error)
	DisableInvite(ctx context.Context, id string) error
	RedeemInvite(ctx context.Context, code string, p types.Principal, check InviteCheck) (*types.Redemption, error)
}

type AdminStorage interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	ListAdmins(ctx context.Context) ([]*types.AdminUser, error)
	AddAdmin(ctx context.Context, email string) (*types.AdminUser, error)
	RemoveAdmin(ctx context.Context, email string) error
}
