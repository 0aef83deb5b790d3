package sql

import (
	"fmt"
	"strings"

	"github.com/dbsteward/partitioner/lib/output"
)

type Annotated struct {
	Wrapped    output.ToSql
	Annotation string
}

func (an *Annotated) ToSql(q output.Quoter) string {
	return fmt.Sprintf(
		"%s\n%s",
		prefixLines(an.Annotation, output.CommentLinePrefix+" "),
		an.Wrapped.ToSql(q),
	)
}

func (an *Annotated) StripAnnotation() output.ToSql {
	return an.Wrapped
}

type Comment string

func NewComment(format string, args ...interface{}) Comment {
	return Comment(fmt.Sprintf(format, args...))
}

func (c Comment) Comment() string {
	return prefixLines(string(c), output.CommentLinePrefix+" ")
}

func (c Comment) ToSql(_ output.Quoter) string {
	return c.Comment()
}

func prefixLines(str, prefix string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
