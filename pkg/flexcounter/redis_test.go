package flexcounter

import (
	"context"
	"crypto/sha1" //nolint:gosec // Redis identifies scripts by SHA1
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/swss"
)

const testScript = "return 0\n"

func newTestManager(t *testing.T, pluginDir string) (*RedisManager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	flexClient := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: 5})
	countersClient := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: 2})

	t.Cleanup(func() {
		_ = flexClient.Close()
		_ = countersClient.Close()
	})

	m := NewRedisManager(
		swss.NewDB(flexClient, swss.FlexCounterDB, 5),
		swss.NewDB(countersClient, swss.CountersDB, 2),
		pluginDir,
		logger.NewTestLogger(),
	)

	return m, mr
}

func TestRedisManager_RegisterHook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pfc_stat_history.lua"), []byte(testScript), 0o600))

	m, _ := newTestManager(t, dir)

	hook, err := m.RegisterHook(context.Background(), "pfc_stat_history.lua")
	require.NoError(t, err)

	sum := sha1.Sum([]byte(testScript)) //nolint:gosec // see import
	assert.Equal(t, hex.EncodeToString(sum[:]), hook.SHA)
	assert.Equal(t, "pfc_stat_history.lua", hook.Name)
}

func TestRedisManager_RegisterHookMissingScript(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())

	hook, err := m.RegisterHook(context.Background(), "missing.lua")
	require.ErrorIs(t, err, errHookRead)
	assert.Nil(t, hook)
}

func TestRedisManager_RegisterHookBadScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.lua"), []byte("return ((("), 0o600))

	m, _ := newTestManager(t, dir)

	_, err := m.RegisterHook(context.Background(), "broken.lua")
	require.ErrorIs(t, err, errHookLoad)
}

func TestRedisManager_ConfigureGroup(t *testing.T) {
	m, mr := newTestManager(t, t.TempDir())
	ctx := context.Background()

	err := m.ConfigureGroup(ctx, GroupConfig{
		Name:         "PFC_STAT_HISTORY",
		PollInterval: time.Second,
		StatsMode:    StatsModeRead,
		PluginField:  PortPluginField,
		Hook:         &Hook{Name: "x.lua", SHA: "abc123"},
	})
	require.NoError(t, err)

	key := "FLEX_COUNTER_GROUP_TABLE:PFC_STAT_HISTORY"
	assert.Equal(t, "1000", mr.DB(5).HGet(key, PollIntervalField))
	assert.Equal(t, StatsModeRead, mr.DB(5).HGet(key, StatsModeField))
	assert.Equal(t, "abc123", mr.DB(5).HGet(key, PortPluginField))
}

func TestRedisManager_ConfigureGroupWithoutHook(t *testing.T) {
	m, mr := newTestManager(t, t.TempDir())

	err := m.ConfigureGroup(context.Background(), GroupConfig{
		Name:         "PFC_STAT_HISTORY",
		PollInterval: 1500 * time.Millisecond,
		StatsMode:    StatsModeRead,
		PluginField:  PortPluginField,
	})
	require.NoError(t, err)

	key := "FLEX_COUNTER_GROUP_TABLE:PFC_STAT_HISTORY"
	assert.Equal(t, "1500", mr.DB(5).HGet(key, PollIntervalField))

	fields, err := mr.DB(5).HKeys(key)
	require.NoError(t, err)
	assert.NotContains(t, fields, PortPluginField)
}

func TestRedisManager_ConfigureGroupRequiresName(t *testing.T) {
	m, _ := newTestManager(t, t.TempDir())

	err := m.ConfigureGroup(context.Background(), GroupConfig{PollInterval: time.Second})
	require.ErrorIs(t, err, errGroupNameRequired)
}

func TestRedisManager_StartStopPolling(t *testing.T) {
	m, mr := newTestManager(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, m.StartPolling(ctx, "PFC_STAT_HISTORY:oid:0x1", PortCounterIDList, "A,B"))
	assert.Equal(t, "A,B", mr.DB(5).HGet("FLEX_COUNTER_TABLE:PFC_STAT_HISTORY:oid:0x1", PortCounterIDList))

	require.NoError(t, m.StopPolling(ctx, "PFC_STAT_HISTORY:oid:0x1"))
	assert.False(t, mr.DB(5).Exists("FLEX_COUNTER_TABLE:PFC_STAT_HISTORY:oid:0x1"))

	// Idempotent removal.
	require.NoError(t, m.StopPolling(ctx, "PFC_STAT_HISTORY:oid:0x1"))

	require.ErrorIs(t, m.StartPolling(ctx, "", PortCounterIDList, "A"), errEmptyKey)
	require.ErrorIs(t, m.StopPolling(ctx, ""), errEmptyKey)
}
