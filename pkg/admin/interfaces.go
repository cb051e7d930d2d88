// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package admin

import (
	"context"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type ServiceInterface interface {
	IsCurrentAdmin(ctx context.Context, p types.Principal) (bool, error)
	List(ctx context.Context) ([]*types.AdminUser, error)
	Add(ctx context.Context, p types.Principal, email string) (*types.AdminUser, error)
	Remove(ctx context.Context, p types.Principal, email string) error
}

type StorageInterface interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	ListAdmins(ctx context.Context) ([]*types.AdminUser, error)
	AddAdmin(ctx context.Context, email string) (*types.AdminUser, error)
	RemoveAdmin(ctx context.Context, email string) error
}
