package pfchistory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/models"
)

func TestConfig_ValidateDefaults(t *testing.T) {
	var cfg Config

	require.NoError(t, json.Unmarshal([]byte(`{
		"redis": {"address": "/var/run/redis/redis.sock"},
		"databases": {"appl_db": 0, "counters_db": 2, "config_db": 4, "flex_counter_db": 5},
		"nats": {"url": "nats://127.0.0.1:4222"}
	}`), &cfg))

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "unix", cfg.Redis.Network)
	assert.Equal(t, defaultPluginDir, cfg.PluginDir)
	assert.Equal(t, time.Second, time.Duration(cfg.TaskInterval))
	assert.Equal(t, "pfc_history_events", cfg.NATS.Stream)
	assert.Equal(t, "events.pfchistory.registration", cfg.NATS.Subject)
}

func TestConfig_ValidateTCP(t *testing.T) {
	cfg := Config{
		Redis:        models.RedisConfig{Address: "127.0.0.1:6379"},
		TaskInterval: models.Duration(250 * time.Millisecond),
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, "tcp", cfg.Redis.Network)
	assert.Equal(t, 250*time.Millisecond, time.Duration(cfg.TaskInterval))
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "no redis address", cfg: Config{}, want: errRedisAddrRequired},
		{
			name: "negative interval",
			cfg:  Config{Redis: models.RedisConfig{Address: "x:1"}, TaskInterval: models.Duration(-time.Second)},
			want: errInvalidInterval,
		},
		{
			name: "negative capacity",
			cfg:  Config{Redis: models.RedisConfig{Address: "x:1"}, QueueCapacity: -1},
			want: errInvalidCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.cfg.Validate(), tt.want)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, models.DefaultDatabaseIDs(), cfg.Databases)
	assert.Nil(t, cfg.NATS)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.observeEvent("SET", outcomeApplied)
		m.setRegistered(3)
		m.deferredPass()
		m.abortedPass()
		m.setHookLoaded(true)
		m.addCleared(2)
		m.droppedEvent()
	})
}

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.observeEvent("SET", outcomeApplied)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}

	assert.Contains(t, names, "pfchistory_events_total")
	assert.Contains(t, names, "pfchistory_registered_ports")
	assert.Contains(t, names, "pfchistory_hook_loaded")
	assert.Contains(t, names, "pfchistory_dropped_registration_events_total")
}
