// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logos

import (
	"context"
	"io"

	"github.com/velocityonboard/onboard-service/internal/types"
)

type ServiceInterface interface {
	Upload(ctx context.Context, p types.Principal, f *File) (*Logo, error)
}

type BucketInterface interface {
	Upload(ctx context.Context, path string, r io.Reader, allowOverwrite bool) error
	PublicURL(path string) string
}
