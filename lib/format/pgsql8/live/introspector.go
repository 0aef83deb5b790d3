package live

import (
	"context"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=introspector.go -destination=introspector_mock.go -package=live

type Introspector interface {
	Version(ctx context.Context) (VersionNum, error)
	IsPartitionedTable(ctx context.Context, schema, table string) (bool, error)
	GetPartitions(ctx context.Context, schema, parent string) ([]PartitionEntry, error)
	GetDetachedPartitions(ctx context.Context, schema, parent string) ([]PartitionEntry, error)
}

type LiveIntrospector struct {
	conn *Connection
}

var _ Introspector = &LiveIntrospector{}

func NewIntrospector(conn *Connection) *LiveIntrospector {
	return &LiveIntrospector{conn}
}

func (li *LiveIntrospector) Version(ctx context.Context) (VersionNum, error) {
	return li.conn.Version(ctx)
}

func (li *LiveIntrospector) IsPartitionedTable(ctx context.Context, schema, table string) (bool, error) {
	var relkind pgtype.Text
	err := li.conn.QueryVal(ctx, &relkind, `
		SELECT c.relkind::text
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON (n.oid = c.relnamespace)
		WHERE n.nspname = $1 AND c.relname = $2
	`, schema, table)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "while looking up table %s.%s", schema, table)
	}
	return relkind.String == "p", nil
}

// GetPartitions returns the children of parent ordered by name
func (li *LiveIntrospector) GetPartitions(ctx context.Context, schema, parent string) ([]PartitionEntry, error) {
	rows, err := li.conn.QueryRaw(ctx, `
		SELECT cn.nspname, c.relname, c.relispartition
		FROM pg_catalog.pg_inherits i
		JOIN pg_catalog.pg_class c ON (c.oid = i.inhrelid)
		JOIN pg_catalog.pg_namespace cn ON (cn.oid = c.relnamespace)
		JOIN pg_catalog.pg_class p ON (p.oid = i.inhparent)
		JOIN pg_catalog.pg_namespace pn ON (pn.oid = p.relnamespace)
		WHERE pn.nspname = $1 AND p.relname = $2
		ORDER BY c.relname
	`, schema, parent)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}
	return scanPartitionEntries(rows)
}

// GetDetachedPartitions returns ordinary tables in schema named like
// <parent>_<digits> that are not attached to any parent
func (li *LiveIntrospector) GetDetachedPartitions(ctx context.Context, schema, parent string) ([]PartitionEntry, error) {
	rows, err := li.conn.QueryRaw(ctx, `
		SELECT n.nspname, c.relname, c.relispartition
		FROM pg_catalog.pg_class c
		JOIN pg_catalog.pg_namespace n ON (n.oid = c.relnamespace)
		WHERE n.nspname = $1
			AND c.relkind = 'r'
			AND NOT c.relispartition
			AND left(c.relname, length($2) + 1) = $2 || '_'
			AND substr(c.relname, length($2) + 2) ~ '^[0-9]+$'
		ORDER BY c.relname
	`, schema, parent)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}
	return scanPartitionEntries(rows)
}

func scanPartitionEntries(rows pgx.Rows) ([]PartitionEntry, error) {
	defer rows.Close()
	out := []PartitionEntry{}
	for rows.Next() {
		var schema, table pgtype.Name
		var isPartition pgtype.Bool
		err := rows.Scan(&schema, &table, &isPartition)
		if err != nil {
			return nil, errors.Wrap(err, "while scanning result row")
		}
		out = append(out, PartitionEntry{
			Schema:      schema.String,
			Table:       table.String,
			IsPartition: isPartition.Bool,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating result rows")
	}
	return out, nil
}
