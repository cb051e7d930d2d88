// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/monitoring"
	"github.com/velocityonboard/onboard-service/internal/tracing"
	"github.com/velocityonboard/onboard-service/internal/types"
)

const keyPrefix = "onboard:inflight:"

var errInProgress = types.ErrRequestInProgress

// releaseScript deletes the key only if it still carries our token, so an
// expired lease that was re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ GuardInterface = (*RedisGuard)(nil)

// RedisGuard shares in-flight keys across replicas with SET NX PX leases.
type RedisGuard struct {
	client redis.UniversalClient
	ttl    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	ctx, span := g.tracer.Start(ctx, "inflight.RedisGuard.Acquire")
	defer span.End()

	token := uuid.NewString()
	k := keyPrefix + key

	ok, err := g.client.SetNX(ctx, k, token, g.ttl).Result()
	if err != nil {
		g.setAvailability(false)
		return nil, fmt.Errorf("failed to acquire in-flight key: %w", err)
	}
	g.setAvailability(true)

	if !ok {
		return nil, errInProgress
	}

	return func() {
		// The action may have been cancelled; the lease still has to go.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second*5)
		defer cancel()

		if err := releaseScript.Run(ctx, g.client, []string{k}, token).Err(); err != nil {
			g.logger.Warnf("failed to release in-flight key %s: %v", key, err)
		}
	}, nil
}

func (g *RedisGuard) setAvailability(up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	_ = g.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, v)
}

// Ping verifies the Redis connection.
func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}

func NewRedisGuard(client redis.UniversalClient, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RedisGuard {
	g := new(RedisGuard)

	g.client = client
	g.ttl = ttl

	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}

// NewRedisClient dials Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return client, nil
}
