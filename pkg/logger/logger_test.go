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

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(&Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)

	impl, ok := log.(*zeroLogger)
	require.True(t, ok)
	assert.Equal(t, zerolog.WarnLevel, impl.zl.GetLevel())
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	log, err := New(&Config{Level: "error", Debug: true})
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, log.(*zeroLogger).zl.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	require.Error(t, err)
}

func TestSetDebug(t *testing.T) {
	log, err := New(&Config{Level: "info"})
	require.NoError(t, err)

	log.SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, log.(*zeroLogger).zl.GetLevel())

	log.SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, log.(*zeroLogger).zl.GetLevel())
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	log := NewWriterLogger(&buf).WithComponent("registrar")
	log.Info().Str("port", "oid:0x1").Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "registrar", line["component"])
	assert.Equal(t, "oid:0x1", line["port"])
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "yes")

	config := DefaultConfig()

	assert.Equal(t, "info", config.Level)
	assert.Equal(t, "stdout", config.Output)
	assert.True(t, config.Debug)
}
