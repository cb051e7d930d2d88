// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inflight

import (
	"context"
	"strings"
	"sync"
)

// Key builds a guard key from an action name and the caller-specific parts.
func Key(action string, parts ...string) string {
	return action + ":" + strings.ToLower(strings.Join(parts, ":"))
}

var _ GuardInterface = (*LocalGuard)(nil)

// LocalGuard holds keys in process memory; used when no Redis is configured.
type LocalGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]struct{})}
}

func (g *LocalGuard) Acquire(ctx context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[key]; ok {
		return nil, errInProgress
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
