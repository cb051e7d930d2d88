// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package agency

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type ServiceInterface interface {
	GetMine(ctx context.Context, p types.Principal) (*types.Agency, error)
	UpsertMine(ctx context.Context, p types.Principal, in *Input) (*types.Agency, error)
	SetPublished(ctx context.Context, p types.Principal, public bool, publicSlug string) (*types.Agency, error)
	ListMembers(ctx context.Context, p types.Principal) ([]*types.Membership, error)
	ListMyMemberships(ctx context.Context, p types.Principal) ([]*types.Membership, error)
	ResolvePublic(ctx context.Context, publicSlug string) (*PublicAgency, error)
}

type AdminServiceInterface interface {
	Provision(ctx context.Context, p types.Principal, in *ProvisionInput) (*ProvisionResult, error)
	ListAll(ctx context.Context, page, size int64) ([]*types.Agency, error)
	Update(ctx context.Context, p types.Principal, id string, in *Input, paths []string) (*types.Agency, error)
	SetSuspended(ctx context.Context, p types.Principal, id string, suspended bool) error
	ListAgencyMembers(ctx context.Context, id string) ([]*types.Membership, error)
	SetMemberRole(ctx context.Context, p types.Principal, agencyID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, p types.Principal, agencyID, userID string) error
}

type StorageInterface interface {
	CreateAgencyWithOwner(ctx context.Context, a *types.Agency, owner types.Principal) (*types.Agency, error)
	UpdateAgency(ctx context.Context, a *types.Agency, paths []string) (*types.Agency, error)
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)
	GetAgencyByOwner(ctx context.Context, userID string) (*types.Agency, error)
	GetPublicAgency(ctx context.Context, publicSlug string) (*types.Agency, error)
	ListAgencies(ctx context.Context, page, size int64) ([]*types.Agency, error)
	SetAgencySuspended(ctx context.Context, id string, suspended bool) error
	ProvisionAgency(ctx context.Context, a *types.Agency, ownerUserID, ownerEmail string) (*types.Agency, error)
	ListMembersByAgencyID(ctx context.Context, agencyID string) ([]*types.Membership, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	UpdateMemberRole(ctx context.Context, agencyID, userID string, role types.Role) error
	RemoveMember(ctx context.Context, agencyID, userID string) error
}

type KratosClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

type GuardInterface interface {
	Acquire(ctx context.Context, key string) (func(), error)
}
