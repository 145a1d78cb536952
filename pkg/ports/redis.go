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

package ports

import (
	"context"
	"fmt"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/sai"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

const (
	PortNameMap = "COUNTERS_PORT_NAME_MAP"
	LagNameMap  = "COUNTERS_LAG_NAME_MAP"

	// portInitDoneKey is written to APPL_DB once every configured port exists in
	// the ASIC.
	portInitDoneKey = "PORT_TABLE:PortInitDone"
)

// RedisInventory is an Inventory snapshot rebuilt from Redis by Refresh.
type RedisInventory struct {
	applDB     *swss.DB
	countersDB *swss.DB
	logger     logger.Logger

	ready bool
	ports map[string]Port
}

var _ Inventory = (*RedisInventory)(nil)

func NewRedisInventory(applDB, countersDB *swss.DB, log logger.Logger) *RedisInventory {
	return &RedisInventory{
		applDB:     applDB,
		countersDB: countersDB,
		logger:     log,
		ports:      make(map[string]Port),
	}
}

// Refresh reloads readiness and the name maps. On error the inventory reports not
// ready until a later Refresh succeeds.
func (r *RedisInventory) Refresh(ctx context.Context) error {
	ready, ports, err := r.load(ctx)
	if err != nil {
		r.ready = false

		return err
	}

	if ready && !r.ready {
		r.logger.Info().Int("port_count", len(ports)).Msg("Ports ready")
	}

	r.ready = ready
	r.ports = ports

	return nil
}

func (r *RedisInventory) load(ctx context.Context) (bool, map[string]Port, error) {
	n, err := r.applDB.Client().Exists(ctx, portInitDoneKey).Result()
	if err != nil {
		return false, nil, fmt.Errorf("check %s: %w", portInitDoneKey, err)
	}

	if n == 0 {
		return false, nil, nil
	}

	ports := make(map[string]Port)

	if err := r.loadNameMap(ctx, PortNameMap, Phy, ports); err != nil {
		return false, nil, err
	}

	if err := r.loadNameMap(ctx, LagNameMap, Lag, ports); err != nil {
		return false, nil, err
	}

	return true, ports, nil
}

func (r *RedisInventory) loadNameMap(ctx context.Context, key string, kind Type, into map[string]Port) error {
	names, err := r.countersDB.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	for name, oid := range names {
		id, err := sai.ParseObjectID(oid)
		if err != nil {
			r.logger.Warn().Err(err).Str("port", name).Str("map", key).Msg("Skipping port with malformed object id")
			continue
		}

		into[name] = Port{Name: name, Type: kind, ID: id}
	}

	return nil
}

func (r *RedisInventory) AllPortsReady() bool {
	return r.ready
}

func (r *RedisInventory) GetPort(name string) (Port, bool) {
	p, ok := r.ports[name]

	return p, ok
}
