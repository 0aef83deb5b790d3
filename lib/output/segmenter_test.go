package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperQuoter struct{}

func (upperQuoter) QuoteSchema(schema string) string { return strings.ToUpper(schema) }
func (upperQuoter) QuoteTable(table string) string { return strings.ToUpper(table) }
func (upperQuoter) QualifyTable(schema, t string) string { return schema + "." + t }
func (upperQuoter) LiteralString(value string) string { return "'" + value + "'" }

type comment string

func (c comment) Comment() string { return CommentLinePrefix + " " + string(c) }
func (c comment) ToSql(_ Quoter) string { return c.Comment() }

type annotated struct{ wrapped ToSql }

func (a annotated) ToSql(q Quoter) string { return "-- note\n" + a.wrapped.ToSql(q) }
func (a annotated) StripAnnotation() ToSql { return a.wrapped }

func TestSegmenter_Order(t *testing.T) {
	s := NewSegmenter(upperQuoter{})
	require.NoError(t, s.WriteSql(NewRawSQL("SELECT %d;", 2)))
	require.NoError(t, s.AppendFooter(NewRawSQL("COMMIT;")))
	require.NoError(t, s.SetHeader(NewRawSQL("BEGIN;")))
	require.NoError(t, s.WriteSql(comment("hello")))

	assert.Equal(t, []DDLStatement{
		{Statement: "BEGIN;"},
		{Statement: "SELECT 2;"},
		{Comment: "-- hello"},
		{Statement: "COMMIT;"},
	}, s.AllStatements())

	buf := &bytes.Buffer{}
	_, err := s.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN;\nSELECT 2;\n-- hello\nCOMMIT;\n", buf.String())
}

func TestSegmenter_StripAnnotations(t *testing.T) {
	s := NewAnnotationStrippingSegmenter(upperQuoter{})
	require.NoError(t, s.WriteSql(comment("dropped"), annotated{NewRawSQL("DROP TABLE x;")}))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []DDLStatement{{Statement: "DROP TABLE x;"}}, s.AllStatements())
}
