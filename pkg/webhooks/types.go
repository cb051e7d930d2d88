// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import "strings"

// KratosIdentity is the after-registration payload. The email may be sent
// flat or nested under traits depending on the hook's jsonnet body.
type KratosIdentity struct {
	ID     string       `json:"id"`
	Email  string       `json:"email,omitempty"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email"`
}

func (k KratosIdentity) email() string {
	if e := strings.TrimSpace(k.Email); e != "" {
		return e
	}
	return strings.TrimSpace(k.Traits.Email)
}

type Claims map[string]interface{}

// TokenHookResponse is merged by Hydra into the issued tokens.
type TokenHookResponse struct {
	Session struct {
		IDToken     Claims `json:"id_token,omitempty"`
		AccessToken Claims `json:"access_token,omitempty"`
	} `json:"session"`
}
