/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package swss provides the Redis table primitives of the switch state service:
// named databases, hash tables, keyspace subscribers and the pending-event consumer.
package swss

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-redis/redis/v8"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

const (
	ApplDB        = "APPL_DB"
	CountersDB    = "COUNTERS_DB"
	ConfigDB      = "CONFIG_DB"
	FlexCounterDB = "FLEX_COUNTER_DB"
	StateDB       = "STATE_DB"

	defaultDialTimeout = 5 * time.Second

	connectInitialBackoff = 200 * time.Millisecond
	connectMaxBackoff     = 5 * time.Second
)

// DB is one logical SONiC database on a shared Redis server.
type DB struct {
	name      string
	id        int
	separator string
	client    *redis.Client
}

// Connect opens name (selected by id) and verifies the server answers.
func Connect(ctx context.Context, cfg *models.RedisConfig, name string, id int) (*DB, error) {
	network := cfg.Network
	if network == "" {
		network = "tcp"
	}

	dialTimeout := time.Duration(cfg.DialTimeout)
	if dialTimeout == 0 {
		dialTimeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Network:     network,
		Addr:        cfg.Address,
		Password:    cfg.Password,
		DB:          id,
		PoolSize:    cfg.PoolSize,
		DialTimeout: dialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("%w: %s (db %d) at %s: %w", ErrUnreachable, name, id, cfg.Address, err)
	}

	return NewDB(client, name, id), nil
}

// ConnectWithRetry calls Connect until it succeeds or cfg.ConnectTimeout elapses.
// A zero ConnectTimeout makes a single attempt.
func ConnectWithRetry(ctx context.Context, cfg *models.RedisConfig, name string, id int, log logger.Logger) (*DB, error) {
	maxElapsed := time.Duration(cfg.ConnectTimeout)
	if maxElapsed <= 0 {
		return Connect(ctx, cfg, name, id)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectInitialBackoff
	bo.MaxInterval = connectMaxBackoff

	operation := func() (*DB, error) {
		return Connect(ctx, cfg, name, id)
	}

	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Str("db", name).Dur("retry_in", next).Msg("Database not reachable yet")
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(notify))
}

// NewDB wraps an existing client.
func NewDB(client *redis.Client, name string, id int) *DB {
	return &DB{
		name:      name,
		id:        id,
		separator: separatorFor(name),
		client:    client,
	}
}

// CONFIG_DB and STATE_DB join table and key with "|", every other database with ":".
func separatorFor(name string) string {
	switch name {
	case ConfigDB, StateDB:
		return "|"
	default:
		return ":"
	}
}

func (d *DB) Name() string      { return d.name }
func (d *DB) ID() int           { return d.id }
func (d *DB) Separator() string { return d.separator }

// Client exposes the underlying connection for operations outside the table model
// (script loading, key existence checks).
func (d *DB) Client() *redis.Client { return d.client }

// Table returns a handle on the named table in this database.
func (d *DB) Table(name string) *RedisTable {
	return &RedisTable{db: d, name: name}
}

func (d *DB) Close() error {
	return d.client.Close()
}
