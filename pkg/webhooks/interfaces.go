// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	ory "github.com/ory/client-go"
	"github.com/ory/hydra/v2/oauth2"

	"github.com/velocityonboard/onboard-service/internal/types"
)

// StorageInterface defines the storage operations required by the webhooks package.
type StorageInterface interface {
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
}

// IdentityInterface resolves identities the token hook only knows by subject.
type IdentityInterface interface {
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
}

type ReconcilerInterface interface {
	Reconcile(ctx context.Context, p types.Principal) []string
}

type RouterInterface interface {
	Route(ctx context.Context, p types.Principal) types.Console
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) error
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}
