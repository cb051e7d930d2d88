// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package objectstore

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/tracing"
)

func newBucket(t *testing.T) *FilesystemBucket {
	t.Helper()

	b, err := NewFilesystemBucket(t.TempDir(), "/api/v0/storage/agency-logos/", tracing.NewNoopTracer(), logging.NewNoopLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestUploadAndServe(t *testing.T) {
	b := newBucket(t)
	ctx := context.Background()

	if err := b.Upload(ctx, "user-1/1700000000000_logo.png", strings.NewReader("png-bytes"), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user-1/1700000000000_logo.png", nil)
	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	if res.StatusCode != http.StatusOK || string(body) != "png-bytes" {
		t.Errorf("expected stored object to be served, got %d %q", res.StatusCode, body)
	}
}

func TestUploadOverwrite(t *testing.T) {
	b := newBucket(t)
	ctx := context.Background()

	if err := b.Upload(ctx, "a/b.png", strings.NewReader("one"), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Upload(ctx, "a/b.png", strings.NewReader("two"), false); !errors.Is(err, ErrObjectExists) {
		t.Errorf("expected ErrObjectExists, got %v", err)
	}
	if err := b.Upload(ctx, "a/b.png", strings.NewReader("three"), true); err != nil {
		t.Errorf("expected overwrite to succeed, got %v", err)
	}
}

func TestUploadRejectsEscapingPaths(t *testing.T) {
	b := newBucket(t)

	for _, p := range []string{"", "../etc/passwd", "a/../../b", "a//b"} {
		if err := b.Upload(context.Background(), p, strings.NewReader("x"), true); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("path %q: expected ErrInvalidPath, got %v", p, err)
		}
	}
}

func TestPublicURL(t *testing.T) {
	b := newBucket(t)

	if got := b.PublicURL("user-1/logo.png"); got != "/api/v0/storage/agency-logos/user-1/logo.png" {
		t.Errorf("unexpected url %q", got)
	}
}
