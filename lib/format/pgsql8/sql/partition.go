package sql

import (
	"fmt"
	"time"

	"github.com/dbsteward/partitioner/lib/output"
)

// RangeBoundLayout is how partition bounds are rendered in FOR VALUES
const RangeBoundLayout = "2006-01-02T15:04:05"

// PartitionCreate creates a range partition covering [From, To)
type PartitionCreate struct {
	Partition TableRef
	Parent    TableRef
	From      time.Time
	To        time.Time
}

func (pc *PartitionCreate) ToSql(q output.Quoter) string {
	return fmt.Sprintf(
		"CREATE TABLE %s PARTITION OF %s FOR VALUES FROM (%s) TO (%s);",
		pc.Partition.Qualified(q),
		pc.Parent.Qualified(q),
		q.LiteralString(pc.From.Format(RangeBoundLayout)),
		q.LiteralString(pc.To.Format(RangeBoundLayout)),
	)
}

// PartitionDetach detaches a partition from its parent, leaving the table in place.
// CONCURRENTLY requires postgres 14 and cannot run inside a transaction block.
type PartitionDetach struct {
	Partition    TableRef
	Parent       TableRef
	Concurrently bool
}

func (pd *PartitionDetach) ToSql(q output.Quoter) string {
	concurrently := ""
	if pd.Concurrently {
		concurrently = " CONCURRENTLY"
	}
	return fmt.Sprintf(
		"ALTER TABLE %s DETACH PARTITION %s%s;",
		pd.Parent.Qualified(q),
		pd.Partition.Qualified(q),
		concurrently,
	)
}
