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

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errInvalidDuration = errors.New("invalid duration")

// Duration is a time.Duration that unmarshals from either a Go duration string
// ("1s", "250ms") or a number of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))

		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// RedisConfig describes how to reach the switch Redis instance that hosts all
// SONiC databases.
type RedisConfig struct {
	Network     string   `json:"network"` // "unix" or "tcp"
	Address     string   `json:"address"`
	Password    string   `json:"password,omitempty" sensitive:"true"`
	PoolSize    int      `json:"pool_size,omitempty"`
	DialTimeout Duration `json:"dial_timeout,omitempty"`

	// ConnectTimeout bounds how long startup waits for redis. Zero tries once.
	ConnectTimeout Duration `json:"connect_timeout,omitempty"`
}

// DatabaseIDs maps the logical SONiC databases to Redis DB indexes.
type DatabaseIDs struct {
	ApplDB        int `json:"appl_db"`
	CountersDB    int `json:"counters_db"`
	ConfigDB      int `json:"config_db"`
	FlexCounterDB int `json:"flex_counter_db"`
}

// DefaultDatabaseIDs returns the stock database_config.json layout.
func DefaultDatabaseIDs() DatabaseIDs {
	return DatabaseIDs{
		ApplDB:        0,
		CountersDB:    2,
		ConfigDB:      4,
		FlexCounterDB: 5,
	}
}
