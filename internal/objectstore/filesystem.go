// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package objectstore keeps uploaded agency assets in a named public bucket.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/tracing"
)

var (
	ErrInvalidPath  = errors.New("invalid object path")
	ErrObjectExists = errors.New("object already exists")
)

var _ BucketInterface = (*FilesystemBucket)(nil)

// FilesystemBucket stores objects below a root directory.
type FilesystemBucket struct {
	root      string
	publicURL string

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// clean rejects absolute paths and anything escaping the bucket root.
func clean(p string) (string, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" || !fs.ValidPath(p) {
		return "", ErrInvalidPath
	}
	return filepath.FromSlash(p), nil
}

func (b *FilesystemBucket) Upload(ctx context.Context, p string, r io.Reader, allowOverwrite bool) error {
	_, span := b.tracer.Start(ctx, "objectstore.FilesystemBucket.Upload")
	defer span.End()

	rel, err := clean(p)
	if err != nil {
		return err
	}

	full := filepath.Join(b.root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !allowOverwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to open object: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(full)
		return fmt.Errorf("failed to write object: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close object: %w", err)
	}

	b.logger.Debugf("stored object %s", p)
	return nil
}

func (b *FilesystemBucket) PublicURL(p string) string {
	return strings.TrimSuffix(b.publicURL, "/") + "/" + path.Clean(strings.TrimPrefix(p, "/"))
}

func (b *FilesystemBucket) Handler() http.Handler {
	return http.FileServer(http.Dir(b.root))
}

func NewFilesystemBucket(root, publicURL string, tracer tracing.TracingInterface, logger logging.LoggerInterface) (*FilesystemBucket, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory %s: %w", root, err)
	}

	b := new(FilesystemBucket)

	b.root = root
	b.publicURL = publicURL

	b.tracer = tracer
	b.logger = logger

	return b, nil
}
