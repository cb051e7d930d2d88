// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type RouterInterface interface {
	Route(ctx context.Context, p types.Principal) types.Console
}

type StorageInterface interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	GetAgencyByOwner(ctx context.Context, userID string) (*types.Agency, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
}
