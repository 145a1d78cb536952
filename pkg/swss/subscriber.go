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

package swss

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/carverauto/pfchistoryd/pkg/logger"
)

// SubscriberStateTable turns keyspace notifications for one table into
// KeyOpFieldsValues. Each notification re-reads the row, so the emitted entry
// reflects the row's current state rather than the individual Redis command.
//
// Call Subscribe before Snapshot: notifications for rows changed after the
// subscription is confirmed are buffered until Run reads them.
type SubscriberStateTable struct {
	table  *RedisTable
	logger logger.Logger
	ps     *redis.PubSub
}

func NewSubscriberStateTable(db *DB, tableName string, log logger.Logger) *SubscriberStateTable {
	return &SubscriberStateTable{
		table:  db.Table(tableName),
		logger: log,
	}
}

func (s *SubscriberStateTable) channelPrefix() string {
	return fmt.Sprintf("__keyspace@%d__:", s.table.db.id)
}

// Pattern is the PSUBSCRIBE pattern covering every row of the table.
func (s *SubscriberStateTable) Pattern() string {
	return s.channelPrefix() + s.table.prefix() + "*"
}

// Snapshot returns every existing row as a SET, so rows written before the daemon
// started are processed like fresh configuration.
func (s *SubscriberStateTable) Snapshot(ctx context.Context) ([]KeyOpFieldsValues, error) {
	keys, err := s.table.GetKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]KeyOpFieldsValues, 0, len(keys))

	for _, key := range keys {
		fields, ok, err := s.table.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		// Deleted between SCAN and HGETALL.
		if !ok {
			continue
		}

		entries = append(entries, KeyOpFieldsValues{Key: key, Op: SetCommand, Fields: fields})
	}

	return entries, nil
}

// Subscribe issues PSUBSCRIBE for the table and waits for the server to confirm it.
func (s *SubscriberStateTable) Subscribe(ctx context.Context) error {
	if s.ps != nil {
		return nil
	}

	ps := s.table.db.client.PSubscribe(ctx, s.Pattern())

	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()

		return fmt.Errorf("%w: %s: %w", errSubscriptionNotReady, s.Pattern(), err)
	}

	s.ps = ps

	s.logger.Info().Str("pattern", s.Pattern()).Msg("Subscribed to table changes")

	return nil
}

// Run forwards one entry per notification to out until ctx is done. Subscribe must
// have succeeded first.
func (s *SubscriberStateTable) Run(ctx context.Context, out chan<- KeyOpFieldsValues) error {
	if s.ps == nil {
		return errNotSubscribed
	}

	messages := s.ps.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			entry, err := s.Translate(ctx, msg)
			if err != nil {
				s.logger.Error().Err(err).Str("channel", msg.Channel).Msg("Failed to read changed row")
				continue
			}

			select {
			case out <- entry:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// Close releases the subscription. Run must have returned.
func (s *SubscriberStateTable) Close() error {
	if s.ps == nil {
		return nil
	}

	err := s.ps.Close()
	s.ps = nil

	return err
}

// Translate converts one keyspace notification into the row's current state.
func (s *SubscriberStateTable) Translate(ctx context.Context, msg *redis.Message) (KeyOpFieldsValues, error) {
	full := strings.TrimPrefix(msg.Channel, s.channelPrefix())
	if full == msg.Channel || !strings.HasPrefix(full, s.table.prefix()) {
		return KeyOpFieldsValues{}, fmt.Errorf("%w: %s", errUnexpectedKeyspace, msg.Channel)
	}

	key := strings.TrimPrefix(full, s.table.prefix())

	fields, ok, err := s.table.Get(ctx, key)
	if err != nil {
		return KeyOpFieldsValues{}, err
	}

	if !ok {
		return KeyOpFieldsValues{Key: key, Op: DelCommand}, nil
	}

	return KeyOpFieldsValues{Key: key, Op: SetCommand, Fields: fields}, nil
}
