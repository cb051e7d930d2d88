// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invite

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/storage"
	"github.com/velocityonboard/onboard-service/internal/types"
)

type ServiceInterface interface {
	Create(ctx context.Context, p types.Principal, agencyID string, role types.Role, maxUses, days int) (*types.Invite, error)
	Disable(ctx context.Context, p types.Principal, inviteID string) error
	List(ctx context.Context, p types.Principal, agencyID string) ([]*types.Invite, error)
	Redeem(ctx context.Context, p types.Principal, code string, wantRole types.Role) (*types.Redemption, error)
	Peek(ctx context.Context, code string, wantRole types.Role) (*types.Invite, error)
}

// StorageInterface is the subset of the tenancy store used by invites.
type StorageInterface interface {
	GetAgencyByID(ctx context.Context, id string) (*types.Agency, error)
	GetMembership(ctx context.Context, agencyID, userID string) (*types.Membership, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	CreateInvite(ctx context.Context, inv *types.Invite) (*types.Invite, error)
	GetInviteByCode(ctx context.Context, code string) (*types.Invite, error)
	GetInviteByID(ctx context.Context, id string) (*types.Invite, error)
	ListInvitesByAgencyID(ctx context.Context, agencyID string) ([]*types.Invite, error)
	DisableInvite(ctx context.Context, id string) error
	RedeemInvite(ctx context.Context, code string, p types.Principal, check storage.InviteCheck) (*types.Redemption, error)
}

type GuardInterface interface {
	Acquire(ctx context.Context, key string) (func(), error)
}
