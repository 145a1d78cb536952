package swss

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/pfchistoryd/pkg/logger"
	"github.com/carverauto/pfchistoryd/pkg/models"
)

func newTestDB(t *testing.T, mr *miniredis.Miniredis, name string, id int) *DB {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: id})
	t.Cleanup(func() { _ = client.Close() })

	return NewDB(client, name, id)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	db, err := Connect(context.Background(), &models.RedisConfig{Address: mr.Addr()}, CountersDB, 2)
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	assert.Equal(t, CountersDB, db.Name())
	assert.Equal(t, 2, db.ID())
	assert.Equal(t, ":", db.Separator())
}

func TestConnect_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), &models.RedisConfig{Address: addr}, ConfigDB, 4)
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestSeparatorFor(t *testing.T) {
	assert.Equal(t, "|", separatorFor(ConfigDB))
	assert.Equal(t, "|", separatorFor(StateDB))
	assert.Equal(t, ":", separatorFor(ApplDB))
	assert.Equal(t, ":", separatorFor(CountersDB))
	assert.Equal(t, ":", separatorFor(FlexCounterDB))
}

func TestRedisTable_HashOperations(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	table := newTestDB(t, mr, ConfigDB, 4).Table("FLEX_COUNTER_TABLE")

	_, ok, err := table.HGet(ctx, "PFC_STAT_HISTORY", "POLL_INTERVAL")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, table.HSet(ctx, "PFC_STAT_HISTORY", "POLL_INTERVAL", "1000"))

	value, ok, err := table.HGet(ctx, "PFC_STAT_HISTORY", "POLL_INTERVAL")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1000", value)

	assert.Equal(t, "1000", mr.DB(4).HGet("FLEX_COUNTER_TABLE|PFC_STAT_HISTORY", "POLL_INTERVAL"))
}

func TestRedisTable_SetGetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	table := newTestDB(t, mr, FlexCounterDB, 5).Table("FLEX_COUNTER_TABLE")

	fields := map[string]string{"PORT_COUNTER_ID_LIST": "A,B"}
	require.NoError(t, table.Set(ctx, "PFC_STAT_HISTORY:oid:0x1", fields))

	got, ok, err := table.Get(ctx, "PFC_STAT_HISTORY:oid:0x1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fields, got)
	assert.True(t, mr.DB(5).Exists("FLEX_COUNTER_TABLE:PFC_STAT_HISTORY:oid:0x1"))

	require.NoError(t, table.Del(ctx, "PFC_STAT_HISTORY:oid:0x1"))

	_, ok, err = table.Get(ctx, "PFC_STAT_HISTORY:oid:0x1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	require.NoError(t, table.Del(ctx, "PFC_STAT_HISTORY:oid:0x1"))
	// Empty field sets write nothing.
	require.NoError(t, table.Set(ctx, "empty", nil))
	assert.False(t, mr.DB(5).Exists("FLEX_COUNTER_TABLE:empty"))
}

func TestRedisTable_GetKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	table := newTestDB(t, mr, CountersDB, 2).Table("PFC_STAT_HISTORY")

	keys, err := table.GetKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	mr.DB(2).HSet("PFC_STAT_HISTORY:oid:0x1", "f", "v")
	mr.DB(2).HSet("PFC_STAT_HISTORY:oid:0x2", "f", "v")
	mr.DB(2).HSet("COUNTERS:oid:0x1", "f", "v")
	// Same prefix in another database is invisible.
	mr.DB(4).HSet("PFC_STAT_HISTORY:oid:0x3", "f", "v")

	keys, err = table.GetKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"oid:0x1", "oid:0x2"}, keys)
}

func TestConnectWithRetry(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &models.RedisConfig{Address: mr.Addr(), ConnectTimeout: models.Duration(time.Second)}

	db, err := ConnectWithRetry(context.Background(), cfg, FlexCounterDB, 5, logger.NewTestLogger())
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	assert.Equal(t, 5, db.ID())
}

func TestConnectWithRetry_GivesUp(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := &models.RedisConfig{
		Address:        addr,
		DialTimeout:    models.Duration(50 * time.Millisecond),
		ConnectTimeout: models.Duration(300 * time.Millisecond),
	}

	_, err := ConnectWithRetry(context.Background(), cfg, ConfigDB, 4, logger.NewTestLogger())
	require.ErrorIs(t, err, ErrUnreachable)
}
