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

package flexcounter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

var (
	errGroupNameRequired = errors.New("flex counter group name is required")
	errHookRead          = errors.New("failed to read counter plugin")
	errHookLoad          = errors.New("failed to load counter plugin")
	errEmptyKey          = errors.New("flex counter key is empty")
)

// RedisManager implements Manager on FLEX_COUNTER_DB, loading plugins into
// COUNTERS_DB where the engine evaluates them.
type RedisManager struct {
	groups     swss.Table
	counters   swss.Table
	countersDB *swss.DB
	pluginDir  string
	logger     logger.Logger
}

var _ Manager = (*RedisManager)(nil)

// NewRedisManager builds a manager. pluginDir holds the Lua scripts named in
// RegisterHook.
func NewRedisManager(flexDB, countersDB *swss.DB, pluginDir string, log logger.Logger) *RedisManager {
	return &RedisManager{
		groups:     flexDB.Table(GroupTable),
		counters:   flexDB.Table(CounterTable),
		countersDB: countersDB,
		pluginDir:  pluginDir,
		logger:     log,
	}
}

func (m *RedisManager) RegisterHook(ctx context.Context, scriptName string) (*Hook, error) {
	path := filepath.Join(m.pluginDir, scriptName)

	script, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errHookRead, path, err)
	}

	sha, err := m.countersDB.Client().ScriptLoad(ctx, string(script)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errHookLoad, scriptName, err)
	}

	m.logger.Debug().Str("plugin", scriptName).Str("sha", sha).Msg("Loaded counter plugin")

	return &Hook{Name: scriptName, SHA: sha}, nil
}

func (m *RedisManager) ConfigureGroup(ctx context.Context, cfg GroupConfig) error {
	if cfg.Name == "" {
		return errGroupNameRequired
	}

	fields := map[string]string{
		PollIntervalField: strconv.FormatInt(cfg.PollInterval.Milliseconds(), 10),
	}

	if cfg.StatsMode != "" {
		fields[StatsModeField] = cfg.StatsMode
	}

	if cfg.Hook != nil && cfg.PluginField != "" {
		fields[cfg.PluginField] = cfg.Hook.SHA
	}

	return m.groups.Set(ctx, cfg.Name, fields)
}

func (m *RedisManager) StartPolling(ctx context.Context, key, field, counterIDs string) error {
	if key == "" {
		return errEmptyKey
	}

	return m.counters.HSet(ctx, key, field, counterIDs)
}

func (m *RedisManager) StopPolling(ctx context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	return m.counters.Del(ctx, key)
}
