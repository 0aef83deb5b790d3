package metrics

import (
	"context"
	"time"

	"github.com/dbsteward/partitioner/lib/partition"
)

const (
	OpFind   = "find"
	OpCreate = "create"
	OpDetach = "detach"
	OpDrop   = "drop"
)

// Repository counts and times the calls made to the wrapped repository.
// Errors are passed through untouched.
type Repository struct {
	next    partition.Repository
	metrics *Metrics
}

var _ partition.Repository = &Repository{}

func Instrument(next partition.Repository, m *Metrics) *Repository {
	return &Repository{next, m}
}

func (r *Repository) FindPartitions(ctx context.Context, parentTableName string) ([]partition.Partition, error) {
	start := time.Now()
	found, err := r.next.FindPartitions(ctx, parentTableName)
	r.metrics.observeOperation(parentTableName, OpFind, 0, start, err)
	return found, err
}

func (r *Repository) DetachPartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	start := time.Now()
	err := r.next.DetachPartitions(ctx, parentTableName, partitions)
	r.metrics.observeOperation(parentTableName, OpDetach, len(partitions), start, err)
	return err
}

func (r *Repository) DropPartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	start := time.Now()
	err := r.next.DropPartitions(ctx, parentTableName, partitions)
	r.metrics.observeOperation(parentTableName, OpDrop, len(partitions), start, err)
	return err
}

func (r *Repository) CreatePartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	start := time.Now()
	err := r.next.CreatePartitions(ctx, parentTableName, partitions)
	r.metrics.observeOperation(parentTableName, OpCreate, len(partitions), start, err)
	return err
}
