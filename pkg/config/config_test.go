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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

var errNoAddress = errors.New("address required")

type testNATS struct {
	URL     string `json:"url"`
	Subject string `json:"subject"`
}

type testConfig struct {
	Redis         models.RedisConfig `json:"redis"`
	PluginDir     string             `json:"plugin_dir"`
	TaskInterval  models.Duration    `json:"task_interval"`
	QueueCapacity int                `json:"queue_capacity"`
	Debug         bool               `json:"debug"`
	Tags          []string           `json:"tags"`
	Limits        map[string]int     `json:"limits"`
	NATS          *testNATS          `json:"nats,omitempty"`
	Ignored       string             `json:"-"`

	validated bool
}

func (c *testConfig) Validate() error {
	if c.Redis.Address == "" {
		return errNoAddress
	}

	c.validated = true

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pfchistoryd.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidate_File(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{
		"redis": {"address": "127.0.0.1:6379", "password": "secret"},
		"plugin_dir": "/opt/swss",
		"task_interval": "500ms"
	}`)

	var cfg testConfig

	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.True(t, cfg.validated)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Address)
	assert.Equal(t, "/opt/swss", cfg.PluginDir)
	assert.Equal(t, 500*time.Millisecond, time.Duration(cfg.TaskInterval))
}

func TestLoadAndValidate_FileErrors(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	cfg := NewConfig(nil)

	var missing testConfig
	require.Error(t, cfg.LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "absent.json"), &missing))

	var malformed testConfig
	require.Error(t, cfg.LoadAndValidate(context.Background(), writeConfig(t, `{"redis":`), &malformed))

	var invalid testConfig
	err := cfg.LoadAndValidate(context.Background(), writeConfig(t, `{}`), &invalid)
	require.ErrorIs(t, err, errNoAddress)
}

func TestLoadAndValidate_InvalidSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	var cfg testConfig

	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestLoadAndValidate_Env(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("PFCHISTORY_REDIS_ADDRESS", "/var/run/redis/redis.sock")
	t.Setenv("PFCHISTORY_REDIS_POOL_SIZE", "4")
	t.Setenv("PFCHISTORY_REDIS_DIAL_TIMEOUT", "2s")
	t.Setenv("PFCHISTORY_TASK_INTERVAL", "250ms")
	t.Setenv("PFCHISTORY_QUEUE_CAPACITY", "64")
	t.Setenv("PFCHISTORY_DEBUG", "true")
	t.Setenv("PFCHISTORY_TAGS", "a, b")
	t.Setenv("PFCHISTORY_LIMITS", `{"ports": 128}`)

	var cfg testConfig

	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg))

	assert.True(t, cfg.validated)
	assert.Equal(t, "/var/run/redis/redis.sock", cfg.Redis.Address)
	assert.Equal(t, 4, cfg.Redis.PoolSize)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Redis.DialTimeout))
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.TaskInterval))
	assert.Equal(t, 64, cfg.QueueCapacity)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"a", "b"}, cfg.Tags)
	assert.Equal(t, map[string]int{"ports": 128}, cfg.Limits)
	assert.Nil(t, cfg.NATS)
}

func TestEnvConfigLoader_PointerSection(t *testing.T) {
	t.Setenv("TEST_REDIS_ADDRESS", "127.0.0.1:6379")
	t.Setenv("TEST_NATS_URL", "nats://127.0.0.1:4222")

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "TEST_").Load(context.Background(), "", &cfg))

	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
}

func TestEnvConfigLoader_ConfigJSON(t *testing.T) {
	t.Setenv("JSON_CONFIG_JSON", `{"redis": {"address": "10.0.0.1:6379"}, "queue_capacity": 8}`)
	t.Setenv("JSON_QUEUE_CAPACITY", "99")

	var cfg testConfig

	require.NoError(t, NewEnvConfigLoader(nil, "JSON_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "10.0.0.1:6379", cfg.Redis.Address)
	assert.Equal(t, 8, cfg.QueueCapacity)
}

func TestEnvConfigLoader_Errors(t *testing.T) {
	loader := NewEnvConfigLoader(nil, "BAD_")

	var notPtr testConfig
	require.ErrorIs(t, loader.Load(context.Background(), "", notPtr), ErrDstMustBeNonNilPointer)

	s := "x"
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)

	t.Setenv("BAD_QUEUE_CAPACITY", "many")

	var cfg testConfig
	require.ErrorIs(t, loader.Load(context.Background(), "", &cfg), errInvalidEnvValue)
}

func TestSanitizeForLogging(t *testing.T) {
	cfg := testConfig{Redis: models.RedisConfig{Address: "127.0.0.1:6379", Password: "secret"}}

	out, err := SanitizeForLogging(&cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "secret")
	assert.Contains(t, string(out), "127.0.0.1:6379")
}
