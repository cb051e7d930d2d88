// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package logos accepts agency logo uploads into the public asset bucket.
package logos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

const MaxSize = 2 << 20

var allowedTypes = []string{"image/png", "image/jpeg", "image/svg+xml", "image/webp"}

// File is an uploaded logo as received from the client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Logo struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	bucket BucketInterface
	now    func() time.Time

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewService(bucket BucketInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		bucket: bucket,
		now:    time.Now,
		tracer: tracer,
		logger: logger,
	}
}

// Upload validates f and stores it under a path owned by p.
func (s *Service) Upload(ctx context.Context, p types.Principal, f *File) (*Logo, error) {
	ctx, span := s.tracer.Start(ctx, "logos.Service.Upload")
	defer span.End()

	declared := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if !slices.Contains(allowedTypes, declared) {
		return nil, types.NewValidationError("logo must be a PNG, JPEG, SVG or WebP image")
	}
	if f.Size > MaxSize {
		return nil, types.NewValidationError("logo must be at most 2 MiB")
	}

	// the declared size is not trusted
	data, err := io.ReadAll(io.LimitReader(f.Body, MaxSize+1))
	if err != nil {
		return nil, types.NewBackendError(fmt.Errorf("failed to read logo: %w", err))
	}
	if len(data) > MaxSize {
		return nil, types.NewValidationError("logo must be at most 2 MiB")
	}
	if len(data) == 0 {
		return nil, types.NewValidationError("logo is empty")
	}

	if sniffed := mimetype.Detect(data); !allowed(sniffed) {
		s.logger.Security().InputValidationFailure(p.ID, "logo content type "+sniffed.String())
		return nil, types.NewValidationError("logo content does not match an allowed image type")
	}

	objectPath := fmt.Sprintf("%s/%d_%s", p.ID, s.now().UnixMilli(), objectName(f.Name))

	if err := s.bucket.Upload(ctx, objectPath, bytes.NewReader(data), false); err != nil {
		s.logger.Errorf("failed to store logo %s: %v", objectPath, err)
		return nil, types.NewBackendError(err)
	}

	return &Logo{Path: objectPath, URL: s.bucket.PublicURL(objectPath)}, nil
}

func allowed(m *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}

func objectName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "logo"
	}
	return strings.ReplaceAll(name, " ", "_")
}
