// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"encoding/json"
	"errors"

	ory "github.com/ory/client-go"
)

type uiMessage struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// errorBody matches both a flow returned with validation messages and a
// generic error payload.
type errorBody struct {
	UI struct {
		Messages []uiMessage `json:"messages"`
		Nodes    []struct {
			Messages []uiMessage `json:"messages"`
		} `json:"nodes"`
	} `json:"ui"`
	Error struct {
		Message string `json:"message"`
		Reason  string `json:"reason"`
	} `json:"error"`
}

// errorMessage extracts the first user-facing message from a Kratos error.
func errorMessage(err error, fallback string) string {
	var apiErr *ory.GenericOpenAPIError
	if !errors.As(err, &apiErr) {
		return fallback
	}

	var body errorBody
	if json.Unmarshal(apiErr.Body(), &body) != nil {
		return fallback
	}

	for _, m := range body.UI.Messages {
		if m.Text != "" {
			return m.Text
		}
	}
	for _, n := range body.UI.Nodes {
		for _, m := range n.Messages {
			if m.Text != "" {
				return m.Text
			}
		}
	}

	if body.Error.Reason != "" {
		return body.Error.Reason
	}
	if body.Error.Message != "" {
		return body.Error.Message
	}

	return fallback
}
