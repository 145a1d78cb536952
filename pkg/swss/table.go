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

//go:generate mockgen -destination=mock_swss.go -package=swss github.com/carverauto/pfchistoryd/pkg/swss Table

package swss

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
)

const scanCount = 512

// Table is a named set of hashes in one database. Keys passed to and returned from
// a Table never include the table prefix.
type Table interface {
	Name() string
	// GetKeys lists every key currently present in the table.
	GetKeys(ctx context.Context) ([]string, error)
	// Get returns all fields of key, and false when the key does not exist.
	Get(ctx context.Context, key string) (map[string]string, bool, error)
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key, field, value string) error
	Set(ctx context.Context, key string, values map[string]string) error
	Del(ctx context.Context, key string) error
}

// RedisTable implements Table on a DB.
type RedisTable struct {
	db   *DB
	name string
}

var _ Table = (*RedisTable)(nil)

func (t *RedisTable) Name() string { return t.name }

func (t *RedisTable) prefix() string {
	return t.name + t.db.separator
}

// FullKey is the Redis key backing key.
func (t *RedisTable) FullKey(key string) string {
	return t.prefix() + key
}

func (t *RedisTable) GetKeys(ctx context.Context) ([]string, error) {
	prefix := t.prefix()

	var keys []string

	iter := t.db.client.Scan(ctx, 0, prefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), prefix))
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan %s/%s: %w", t.db.name, t.name, err)
	}

	return keys, nil
}

func (t *RedisTable) Get(ctx context.Context, key string) (map[string]string, bool, error) {
	values, err := t.db.client.HGetAll(ctx, t.FullKey(key)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("hgetall %s: %w", t.FullKey(key), err)
	}

	// HGETALL on a missing key returns an empty hash.
	if len(values) == 0 {
		return nil, false, nil
	}

	return values, true, nil
}

func (t *RedisTable) HGet(ctx context.Context, key, field string) (string, bool, error) {
	value, err := t.db.client.HGet(ctx, t.FullKey(key), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("hget %s %s: %w", t.FullKey(key), field, err)
	}

	return value, true, nil
}

func (t *RedisTable) HSet(ctx context.Context, key, field, value string) error {
	if err := t.db.client.HSet(ctx, t.FullKey(key), field, value).Err(); err != nil {
		return fmt.Errorf("hset %s %s: %w", t.FullKey(key), field, err)
	}

	return nil
}

func (t *RedisTable) Set(ctx context.Context, key string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	args := make([]interface{}, 0, len(values)*2)
	for field, value := range values {
		args = append(args, field, value)
	}

	if err := t.db.client.HSet(ctx, t.FullKey(key), args...).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", t.FullKey(key), err)
	}

	return nil
}

func (t *RedisTable) Del(ctx context.Context, key string) error {
	if err := t.db.client.Del(ctx, t.FullKey(key)).Err(); err != nil {
		return fmt.Errorf("del %s: %w", t.FullKey(key), err)
	}

	return nil
}
