package pgsql8

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/dbsteward/partitioner/lib/format/pgsql8/live"
	"github.com/dbsteward/partitioner/lib/format/pgsql8/sql"
	"github.com/dbsteward/partitioner/lib/output"
	"github.com/dbsteward/partitioner/lib/partition"
	"github.com/dbsteward/partitioner/lib/util"
)

const DefaultSchema = "public"

// Repository manages the range partitions of tables in one postgres schema
type Repository struct {
	introspector live.Introspector
	executor     Executor
	schema       string
	listDetached bool
	logger       *slog.Logger

	// one repository serves every scheduled table
	versionMu sync.Mutex
	version   live.VersionNum
}

var _ partition.Repository = &Repository{}

type RepositoryOption func(*Repository)

func WithSchema(schema string) RepositoryOption {
	return func(r *Repository) {
		r.schema = schema
	}
}

// WithDetachedPartitions makes FindPartitions also report tables left
// behind by an earlier detach, so they can be dropped
func WithDetachedPartitions(enabled bool) RepositoryOption {
	return func(r *Repository) {
		r.listDetached = enabled
	}
}

func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		r.logger = logger
	}
}

func NewRepository(introspector live.Introspector, executor Executor, opts ...RepositoryOption) *Repository {
	r := &Repository{
		introspector: introspector,
		executor:     executor,
		schema:       DefaultSchema,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Schema() string {
	return r.schema
}

func (r *Repository) table(name string) sql.TableRef {
	return sql.TableRef{Schema: r.schema, Table: name}
}

func (r *Repository) qualified(name string) string {
	return util.QualifiedTable{Schema: r.schema, Table: name}.String()
}

func (r *Repository) serverVersion(ctx context.Context) (live.VersionNum, error) {
	r.versionMu.Lock()
	defer r.versionMu.Unlock()
	if r.version != 0 {
		return r.version, nil
	}
	v, err := r.introspector.Version(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "getting server version")
	}
	if !live.FEAT_DECLARATIVE_PARTITIONING(v) {
		return 0, errors.Errorf("postgres %s does not support declarative partitioning", v)
	}
	r.version = v
	return v, nil
}

func (r *Repository) FindPartitions(ctx context.Context, parentTableName string) ([]partition.Partition, error) {
	if _, err := r.serverVersion(ctx); err != nil {
		return nil, err
	}
	ok, err := r.introspector.IsPartitionedTable(ctx, r.schema, parentTableName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("%s is not a partitioned table", r.qualified(parentTableName))
	}

	entries, err := r.introspector.GetPartitions(ctx, r.schema, parentTableName)
	if err != nil {
		return nil, errors.Wrapf(err, "listing partitions of %s", r.qualified(parentTableName))
	}
	out := make([]partition.Partition, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsPartition {
			return nil, errors.Errorf("%s inherits from %s but is not a partition", r.qualified(entry.Table), r.qualified(parentTableName))
		}
		p, err := partition.FromName(entry.Table)
		if err != nil {
			return nil, errors.Wrapf(err, "partition %s of %s", entry.Table, r.qualified(parentTableName))
		}
		out = append(out, p)
	}

	if !r.listDetached {
		return out, nil
	}
	detached, err := r.introspector.GetDetachedPartitions(ctx, r.schema, parentTableName)
	if err != nil {
		return nil, errors.Wrapf(err, "listing detached partitions of %s", r.qualified(parentTableName))
	}
	for _, entry := range detached {
		p, err := partition.FromName(entry.Table)
		if err != nil {
			r.logger.Debug("ignoring table that is not a detached partition", "table", r.qualified(entry.Table), "error", err)
			continue
		}
		p.Detached = true
		out = append(out, p)
	}
	return out, nil
}

// DetachPartitions attempts every partition and reports all failures
func (r *Repository) DetachPartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	v, err := r.serverVersion(ctx)
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, p := range partitions {
		if p.Detached {
			continue
		}
		stmt := &sql.PartitionDetach{
			Partition:    r.table(p.Name),
			Parent:       r.table(parentTableName),
			Concurrently: live.FEAT_DETACH_CONCURRENTLY(v),
		}
		if err := r.executor.Execute(ctx, annotate(stmt, "%s, outside the partition window", covers(p))); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "detaching %s", r.qualified(p.Name)))
		}
	}
	return result.ErrorOrNil()
}

// DropPartitions detaches what is still attached, then drops every partition
// the database confirms is detached. Every partition is attempted.
func (r *Repository) DropPartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	var result *multierror.Error
	if err := r.DetachPartitions(ctx, parentTableName, partitions); err != nil {
		result = multierror.Append(result, err)
	}

	attached := util.NewSet(util.IdentityId[string])
	if r.executor.Live() {
		entries, err := r.introspector.GetPartitions(ctx, r.schema, parentTableName)
		if err != nil {
			return multierror.Append(result, errors.Wrapf(err, "listing partitions of %s", r.qualified(parentTableName))).ErrorOrNil()
		}
		for _, entry := range entries {
			attached.Add(entry.Table)
		}
	}

	for _, p := range partitions {
		if attached.Has(p.Name) {
			result = multierror.Append(result, errors.Errorf("refusing to drop %s: still attached to %s", r.qualified(p.Name), r.qualified(parentTableName)))
			continue
		}
		var stmt output.ToSql = &sql.TableDrop{Table: r.table(p.Name)}
		if p.Detached {
			stmt = annotate(stmt, "%s, detached by an earlier refresh", covers(p))
		}
		if err := r.executor.Execute(ctx, stmt); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "dropping %s", r.qualified(p.Name)))
		}
	}
	return result.ErrorOrNil()
}

// CreatePartitions stops at the first failure, the next refresh picks up
// the remainder
func (r *Repository) CreatePartitions(ctx context.Context, parentTableName string, partitions []partition.Partition) error {
	for _, p := range partitions {
		stmt := &sql.PartitionCreate{
			Partition: r.table(p.Name),
			Parent:    r.table(parentTableName),
			From:      p.RangeStart(),
			To:        p.RangeEnd(),
		}
		if err := r.executor.Execute(ctx, annotate(stmt, "%s", covers(p))); err != nil {
			return errors.Wrapf(err, "creating %s", r.qualified(p.Name))
		}
	}
	return nil
}

func annotate(stmt output.ToSql, format string, args ...interface{}) *sql.Annotated {
	return &sql.Annotated{Wrapped: stmt, Annotation: fmt.Sprintf(format, args...)}
}

// covers describes the rows a partition holds, e.g.
// "events_20240207 holds 2024-02-07 up to 2024-02-08"
func covers(p partition.Partition) string {
	return fmt.Sprintf("%s holds %s up to %s", p.Name, p.RangeStart().Format(time.DateOnly), p.RangeEnd().Format(time.DateOnly))
}
