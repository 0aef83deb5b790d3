package output

import (
	"fmt"
	"io"
	"strings"
)

const CommentLinePrefix = "--"

type ToSql interface {
	ToSql(Quoter) string
}

type AnnotatedSQL interface {
	StripAnnotation() ToSql
}

type SQLComment interface {
	Comment() string
}

func NewRawSQL(format string, args ...interface{}) rawSQL {
	return rawSQL(fmt.Sprintf(format, args...))
}

type rawSQL string

func (c rawSQL) ToSql(q Quoter) string {
	return string(c)
}

type Quoter interface {
	QuoteSchema(schema string) string
	QuoteTable(table string) string
	QualifyTable(schema, table string) string
	LiteralString(value string) string
}

// DDLStatement for tracking individual DDL statements
type DDLStatement struct {
	Comment   string
	Statement string
}

func NewSegmenter(q Quoter) *Segmenter {
	return &Segmenter{quoter: q}
}

func NewAnnotationStrippingSegmenter(q Quoter) *Segmenter {
	return &Segmenter{
		stripAnnotations: true,
		quoter:           q,
	}
}

// Segmenter collects statements in a header, a body and a footer and
// returns them in that order from AllStatements()
type Segmenter struct {
	stripAnnotations bool
	quoter           Quoter
	Header           []ToSql
	Body             []ToSql
	Footer           []ToSql
}

func (s *Segmenter) strip(stmts ...ToSql) []ToSql {
	if !s.stripAnnotations {
		return stmts
	}
	var rv []ToSql
	for _, stmt := range stmts {
		if annotated, ok := stmt.(AnnotatedSQL); ok {
			rv = append(rv, annotated.StripAnnotation())
			continue
		}
		if _, isComment := stmt.(SQLComment); !isComment {
			rv = append(rv, stmt)
		}
	}
	return rv
}

// SetHeader removes any previous header statements and
// starts the header fresh
func (s *Segmenter) SetHeader(stmt ToSql) error {
	s.Header = s.strip(stmt)
	return nil
}

func (s *Segmenter) AppendHeader(stmt ToSql) error {
	if stmt == nil {
		return nil
	}
	s.Header = append(s.Header, s.strip(stmt)...)
	return nil
}

func (s *Segmenter) AppendFooter(stmt ToSql) error {
	if stmt == nil {
		return nil
	}
	s.Footer = append(s.Footer, s.strip(stmt)...)
	return nil
}

func (s *Segmenter) WriteSql(stmts ...ToSql) error {
	s.Body = append(s.Body, s.strip(stmts...)...)
	return nil
}

// Len is the number of body statements, comments included
func (s *Segmenter) Len() int {
	return len(s.Body)
}

// AllStatements renders header, body and footer in order
func (s *Segmenter) AllStatements() []DDLStatement {
	var final []DDLStatement
	for _, part := range [][]ToSql{s.Header, s.Body, s.Footer} {
		for _, stmt := range part {
			ddl := DDLStatement{Statement: stmt.ToSql(s.quoter)}
			if comment, ok := stmt.(SQLComment); ok {
				ddl = DDLStatement{Comment: comment.Comment()}
			}
			final = append(final, ddl)
		}
	}
	return final
}

// WriteTo renders every statement on its own line
func (s *Segmenter) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, stmt := range s.AllStatements() {
		line := strings.TrimSpace(stmt.Statement)
		if stmt.Comment != "" {
			line = stmt.Comment
		}
		n, err := fmt.Fprintln(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
