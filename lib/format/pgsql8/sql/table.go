package sql

import (
	"fmt"

	"github.com/dbsteward/partitioner/lib/output"
)

type TableRef struct {
	Schema string
	Table  string
}

func (tr TableRef) Qualified(q output.Quoter) string {
	return q.QualifyTable(tr.Schema, tr.Table)
}

type TableDrop struct {
	Table TableRef
}

func (td *TableDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP TABLE %s;", td.Table.Qualified(q))
}
