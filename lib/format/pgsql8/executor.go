package pgsql8

import (
	"context"
	"log/slog"

	"github.com/jackc/pgconn"
	"github.com/pkg/errors"

	"github.com/dbsteward/partitioner/lib/format/pgsql8/sql"
	"github.com/dbsteward/partitioner/lib/output"
)

// Executor runs the DDL the repository builds
type Executor interface {
	Execute(ctx context.Context, stmt output.ToSql) error
	// Live reports whether executed statements reach the database
	Live() bool
}

type execer interface {
	Exec(ctx context.Context, query string, params ...interface{}) (pgconn.CommandTag, error)
}

// LiveExecutor runs each statement on its own pooled connection, outside
// of any transaction
type LiveExecutor struct {
	conn   execer
	quoter output.Quoter
	logger *slog.Logger
}

func NewLiveExecutor(conn execer, quoter output.Quoter, logger *slog.Logger) *LiveExecutor {
	return &LiveExecutor{conn, quoter, logger}
}

// Execute runs stmt without its annotation, which is only logged
func (le *LiveExecutor) Execute(ctx context.Context, stmt output.ToSql) error {
	if annotated, ok := stmt.(*sql.Annotated); ok {
		le.logger.Debug(annotated.Annotation)
		stmt = annotated.StripAnnotation()
	}
	ddl := stmt.ToSql(le.quoter)
	le.logger.Debug("executing", "sql", ddl)
	tag, err := le.conn.Exec(ctx, ddl)
	if err != nil {
		return errors.Wrapf(err, "while executing %q", ddl)
	}
	le.logger.Info("executed", "sql", ddl, "tag", tag.String())
	return nil
}

func (le *LiveExecutor) Live() bool {
	return true
}

// RecordingExecutor collects statements without running them
type RecordingExecutor struct {
	Segmenter *output.Segmenter
}

func NewRecordingExecutor(quoter output.Quoter) *RecordingExecutor {
	return &RecordingExecutor{output.NewSegmenter(quoter)}
}

// NewBareRecordingExecutor records statements with comments and
// annotations removed
func NewBareRecordingExecutor(quoter output.Quoter) *RecordingExecutor {
	return &RecordingExecutor{output.NewAnnotationStrippingSegmenter(quoter)}
}

func (re *RecordingExecutor) Execute(_ context.Context, stmt output.ToSql) error {
	return re.Segmenter.WriteSql(stmt)
}

func (re *RecordingExecutor) Live() bool {
	return false
}
