package metrics

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsteward/partitioner/lib/partition"
)

func TestRepository_CountsOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	next := partition.NewMockRepository(ctrl)
	m := New()
	repo := Instrument(next, m)

	existing := []partition.Partition{partition.MustFromName("events_20240101")}
	add := []partition.Partition{
		partition.MustFromName("events_20240210"),
		partition.MustFromName("events_20240211"),
	}
	boom := fmt.Errorf("boom")

	next.EXPECT().FindPartitions(ctx, "events").Return(existing, nil)
	next.EXPECT().DetachPartitions(ctx, "events", existing).Return(nil)
	next.EXPECT().CreatePartitions(ctx, "events", add).Return(boom)

	found, err := repo.FindPartitions(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, existing, found)
	require.NoError(t, repo.DetachPartitions(ctx, "events", existing))
	assert.Same(t, boom, repo.CreatePartitions(ctx, "events", add))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("events", OpFind, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("events", OpDetach, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("events", OpCreate, "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.partitions.WithLabelValues("events", OpDetach)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.partitions.WithLabelValues("events", OpCreate)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.operationDuration))
}

func TestRepository_Drop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	next := partition.NewMockRepository(ctrl)
	m := New()

	remove := []partition.Partition{
		partition.MustFromName("events_202311"),
		partition.MustFromName("events_202312"),
	}
	next.EXPECT().DropPartitions(ctx, "events", remove).Return(nil)

	require.NoError(t, Instrument(next, m).DropPartitions(ctx, "events", remove))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.partitions.WithLabelValues("events", OpDrop)))
}

func TestMetrics_ObserveRefresh(t *testing.T) {
	m := New()
	at := time.Date(2024, 2, 10, 1, 0, 0, 0, time.UTC)

	m.ObserveRefresh("events", at, nil)
	m.ObserveRefresh("events", at.Add(time.Hour), fmt.Errorf("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("events", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues("events", "error")))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(m.lastSuccess.WithLabelValues("events")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRefresh("events", time.Unix(1707526800, 0), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `partitioner_refreshes_total{result="success",table="events"} 1`)
}
