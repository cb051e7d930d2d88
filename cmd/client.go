// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type apiClient struct {
	endpoint string
	token    string
	http     *http.Client
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newAPIClient(endpoint, token string) *apiClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	return &apiClient{
		endpoint: strings.TrimSuffix(endpoint, "/") + "/api/v0",
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// getClient builds a client from the root flags.
func getClient() *apiClient {
	return newAPIClient(httpEndpoint, accessToken)
}

// do sends in as JSON and decodes the data member of the reply into out.
// It returns the message of the reply.
func (c *apiClient) do(ctx context.Context, method, path string, in, out any) (string, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return "", err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var e envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &e); err != nil {
			return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(raw))
		}
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, e.Message)
	}

	if out != nil && len(e.Data) > 0 {
		if err := json.Unmarshal(e.Data, out); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return e.Message, nil
}
