package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsteward/partitioner/lib/format/pgsql8"
	"github.com/dbsteward/partitioner/lib/format/pgsql8/live"
	"github.com/dbsteward/partitioner/lib/format/pgsql8/sql"
	"github.com/dbsteward/partitioner/lib/partition"
)

// To run:
// DB_HOST=localhost DB_USER=postgres DB_SUPERUSER=postgres DB_NAME=test DB_PORT=5432 go test ./...

// This test reconciles a real partitioned table through a full retention
// cycle: create the window, detach what ages out, then drop the leftovers.
func TestPartitionPostgresIntegration(t *testing.T) {
	c := pgsql8.Initdb(t, "pt")
	if c == nil {
		t.SkipNow()
	}
	defer pgsql8.Teardowndb(t, c, "pt")
	ctx := context.TODO()

	_, err := c.Exec(ctx, `CREATE TABLE events (id bigint NOT NULL, created_at timestamp NOT NULL) PARTITION BY RANGE (created_at)`)
	require.NoError(t, err)

	introspector := live.NewIntrospector(c)
	names := func() []string {
		entries, err := introspector.GetPartitions(ctx, pgsql8.DefaultSchema, "events")
		require.NoError(t, err)
		out := []string{}
		for _, e := range entries {
			out = append(out, e.Table)
		}
		return out
	}
	executor := pgsql8.NewLiveExecutor(c, sql.NewQuoter(slog.Default()), slog.Default())
	clock := clockwork.NewFakeClockAt(time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC))

	detachCfg, err := partition.NewConfig("events", partition.WithRetention(3, partition.RetentionPolicyDetach), partition.WithBuffer(4))
	require.NoError(t, err)
	engine := partition.New(pgsql8.NewRepository(introspector, executor), partition.WithClock(clock))

	require.NoError(t, engine.Refresh(ctx, detachCfg))
	assert.Equal(t, []string{
		"events_20240207", "events_20240208", "events_20240209", "events_20240210",
		"events_20240211", "events_20240212", "events_20240213",
	}, names())

	_, err = c.Exec(ctx, `INSERT INTO events VALUES (1, '2024-02-10 23:59:59'), (2, '2024-02-07 00:00:00')`)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	require.NoError(t, engine.Refresh(ctx, detachCfg))
	assert.Equal(t, []string{
		"events_20240209", "events_20240210", "events_20240211", "events_20240212",
		"events_20240213", "events_20240214", "events_20240215",
	}, names())

	detached, err := introspector.GetDetachedPartitions(ctx, pgsql8.DefaultSchema, "events")
	require.NoError(t, err)
	assert.Len(t, detached, 2)

	var count int
	require.NoError(t, c.QueryVal(ctx, &count, `SELECT count(*) FROM events_20240207`))
	assert.Equal(t, 1, count)

	changes, err := engine.Plan(ctx, clock.Now(), detachCfg)
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())

	dropCfg, err := partition.NewConfig("events", partition.WithRetention(3, partition.RetentionPolicyDrop), partition.WithBuffer(4))
	require.NoError(t, err)
	dropper := partition.New(
		pgsql8.NewRepository(introspector, executor, pgsql8.WithDetachedPartitions(true)),
		partition.WithClock(clock),
	)
	require.NoError(t, dropper.Refresh(ctx, dropCfg))

	detached, err = introspector.GetDetachedPartitions(ctx, pgsql8.DefaultSchema, "events")
	require.NoError(t, err)
	assert.Empty(t, detached)
	require.NoError(t, c.QueryVal(ctx, &count, `SELECT count(*) FROM events`))
	assert.Equal(t, 1, count)
}
