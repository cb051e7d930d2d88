// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package objectstore

import (
	"context"
	"io"
	"net/http"
)

//go:generate mockgen -build_flags=--mod=mod -package objectstore -destination ./mock_objectstore.go -source=./interfaces.go

type BucketInterface interface {
	Upload(ctx context.Context, path string, r io.Reader, allowOverwrite bool) error
	PublicURL(path string) string
	// Handler serves bucket objects for paths relative to the bucket root.
	Handler() http.Handler
}
