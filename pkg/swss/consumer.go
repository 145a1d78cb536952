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
	"maps"
)

const (
	SetCommand = "SET"
	DelCommand = "DEL"

	DefaultConsumerCapacity = 4096
)

// KeyOpFieldsValues is one configuration change for a table row.
type KeyOpFieldsValues struct {
	Key    string
	Op     string
	Fields map[string]string
}

// Consumer holds the ordered, not yet processed changes of one table.
//
// A Consumer is not safe for concurrent use; it is owned by the goroutine that runs
// the task loop.
type Consumer struct {
	dbName    string
	tableName string
	capacity  int
	pending   []KeyOpFieldsValues
}

// NewConsumer creates a consumer for dbName/tableName holding at most capacity
// pending entries. A non-positive capacity selects DefaultConsumerCapacity.
func NewConsumer(dbName, tableName string, capacity int) *Consumer {
	if capacity <= 0 {
		capacity = DefaultConsumerCapacity
	}

	return &Consumer{
		dbName:    dbName,
		tableName: tableName,
		capacity:  capacity,
	}
}

func (c *Consumer) DBName() string    { return c.dbName }
func (c *Consumer) TableName() string { return c.tableName }
func (c *Consumer) Len() int          { return len(c.pending) }

// Push queues entries in order, coalescing with what is already pending:
//   - a SET for a key whose latest pending entry is a SET updates that entry's fields;
//   - a DEL removes every pending entry for its key, then queues itself.
//
// A DEL is always queued, even past capacity, so a removal is never lost. Push stops
// at the first SET that does not fit and returns ErrQueueFull.
func (c *Consumer) Push(entries ...KeyOpFieldsValues) error {
	for _, e := range entries {
		if err := c.push(e); err != nil {
			return err
		}
	}

	return nil
}

func (c *Consumer) push(e KeyOpFieldsValues) error {
	switch e.Op {
	case SetCommand:
		if i := c.lastIndex(e.Key); i >= 0 && c.pending[i].Op == SetCommand {
			if c.pending[i].Fields == nil {
				c.pending[i].Fields = make(map[string]string, len(e.Fields))
			}

			maps.Copy(c.pending[i].Fields, e.Fields)

			return nil
		}
	case DelCommand:
		kept := c.pending[:0]

		for _, p := range c.pending {
			if p.Key != e.Key {
				kept = append(kept, p)
			}
		}

		clear(c.pending[len(kept):])
		c.pending = kept
	}

	if e.Op != DelCommand && len(c.pending) >= c.capacity {
		return ErrQueueFull
	}

	c.pending = append(c.pending, KeyOpFieldsValues{
		Key:    e.Key,
		Op:     e.Op,
		Fields: maps.Clone(e.Fields),
	})

	return nil
}

func (c *Consumer) lastIndex(key string) int {
	for i := len(c.pending) - 1; i >= 0; i-- {
		if c.pending[i].Key == key {
			return i
		}
	}

	return -1
}

// Front returns the oldest pending entry without removing it.
func (c *Consumer) Front() (KeyOpFieldsValues, bool) {
	if len(c.pending) == 0 {
		return KeyOpFieldsValues{}, false
	}

	return c.pending[0], true
}

// Pop acknowledges the oldest pending entry.
func (c *Consumer) Pop() {
	if len(c.pending) == 0 {
		return
	}

	c.pending[0] = KeyOpFieldsValues{}
	c.pending = c.pending[1:]
}

// Pending returns a copy of the queue, oldest first.
func (c *Consumer) Pending() []KeyOpFieldsValues {
	out := make([]KeyOpFieldsValues, len(c.pending))
	copy(out, c.pending)

	return out
}
