package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"1500ms"`, want: 1500 * time.Millisecond},
		{name: "nanoseconds", input: `1000000000`, want: time.Second},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration(2 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(b))
}

func TestDefaultDatabaseIDs(t *testing.T) {
	ids := DefaultDatabaseIDs()

	assert.Equal(t, 4, ids.ConfigDB)
	assert.Equal(t, 2, ids.CountersDB)
	assert.Equal(t, 5, ids.FlexCounterDB)
	assert.Equal(t, 0, ids.ApplDB)
}

func TestFilterSensitiveFields(t *testing.T) {
	cfg := struct {
		Redis   RedisConfig `json:"redis"`
		Labels  []string    `json:"labels"`
		Ignored string      `json:"-"`
		hidden  string
	}{
		Redis: RedisConfig{
			Address:     "/var/run/redis/redis.sock",
			Password:    "hunter2",
			DialTimeout: Duration(3 * time.Second),
		},
		Labels:  []string{"a"},
		Ignored: "x",
		hidden:  "y",
	}

	safe, err := FilterSensitiveFields(&cfg)
	require.NoError(t, err)

	redis, ok := safe["redis"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, redis, "password")
	assert.Equal(t, "/var/run/redis/redis.sock", redis["address"])
	assert.Equal(t, Duration(3*time.Second), redis["dial_timeout"])
	assert.NotContains(t, safe, "Ignored")
	assert.NotContains(t, safe, "hidden")
	assert.Equal(t, []interface{}{"a"}, safe["labels"])

	b, err := json.Marshal(safe)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hunter2")
	assert.Contains(t, string(b), `"dial_timeout":"3s"`)
}

func TestFilterSensitiveFields_NotStruct(t *testing.T) {
	_, err := FilterSensitiveFields("plain")
	require.ErrorIs(t, err, errNotStruct)

	empty, err := FilterSensitiveFields(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
