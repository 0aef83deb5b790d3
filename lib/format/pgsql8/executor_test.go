package pgsql8

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsteward/partitioner/lib/format/pgsql8/sql"
	"github.com/dbsteward/partitioner/lib/output"
)

type fakeExecer struct {
	sql []string
	err error
}

func (fe *fakeExecer) Exec(_ context.Context, ddl string, _ ...interface{}) (pgconn.CommandTag, error) {
	fe.sql = append(fe.sql, ddl)
	if fe.err != nil {
		return nil, fe.err
	}
	return pgconn.CommandTag("DROP TABLE"), nil
}

func TestLiveExecutor_Execute(t *testing.T) {
	conn := &fakeExecer{}
	executor := NewLiveExecutor(conn, sql.NewQuoter(nil), slog.Default())
	assert.True(t, executor.Live())

	err := executor.Execute(context.Background(), &sql.TableDrop{Table: sql.TableRef{Schema: "public", Table: "events_20240101"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"DROP TABLE public.events_20240101;"}, conn.sql)
}

func TestLiveExecutor_Execute_Error(t *testing.T) {
	cause := fmt.Errorf("relation does not exist")
	executor := NewLiveExecutor(&fakeExecer{err: cause}, sql.NewQuoter(nil), slog.Default())

	err := executor.Execute(context.Background(), output.NewRawSQL("DROP TABLE nope;"))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `while executing "DROP TABLE nope;"`)
}

func TestRecordingExecutor_Execute(t *testing.T) {
	executor := NewRecordingExecutor(sql.NewQuoter(nil))
	assert.False(t, executor.Live())
	require.NoError(t, executor.Execute(context.Background(), output.NewRawSQL("SELECT 1;")))
	assert.Equal(t, []output.DDLStatement{{Statement: "SELECT 1;"}}, executor.Segmenter.AllStatements())
}

func TestLiveExecutor_Execute_StripsAnnotation(t *testing.T) {
	conn := &fakeExecer{}
	executor := NewLiveExecutor(conn, sql.NewQuoter(nil), slog.Default())

	stmt := &sql.Annotated{
		Wrapped:    &sql.TableDrop{Table: sql.TableRef{Schema: "public", Table: "events_20240101"}},
		Annotation: "detached by an earlier refresh",
	}
	require.NoError(t, executor.Execute(context.Background(), stmt))
	assert.Equal(t, []string{"DROP TABLE public.events_20240101;"}, conn.sql)
}

func TestRecordingExecutor_Annotations(t *testing.T) {
	stmt := &sql.Annotated{Wrapped: output.NewRawSQL("SELECT 1;"), Annotation: "why"}

	annotated := NewRecordingExecutor(sql.NewQuoter(nil))
	require.NoError(t, annotated.Execute(context.Background(), stmt))
	assert.Equal(t, []output.DDLStatement{{Statement: "-- why\nSELECT 1;"}}, annotated.Segmenter.AllStatements())

	bare := NewBareRecordingExecutor(sql.NewQuoter(nil))
	require.NoError(t, bare.Execute(context.Background(), stmt))
	require.NoError(t, bare.Execute(context.Background(), sql.NewComment("dropped")))
	assert.Equal(t, []output.DDLStatement{{Statement: "SELECT 1;"}}, bare.Segmenter.AllStatements())
}
