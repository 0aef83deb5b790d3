package sql

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var legalIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// Quoter quotes identifiers and literals for postgres. Identifiers that
// would be folded or rejected unquoted are always quoted.
type Quoter struct {
	Logger *slog.Logger

	ShouldQuoteSchemaNames bool
	ShouldQuoteTableNames  bool
	ShouldEEscape          bool
}

func NewQuoter(logger *slog.Logger) *Quoter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Quoter{Logger: logger}
}

func (q *Quoter) isIllegalIdentifier(name string) bool {
	return !legalIdentifier.MatchString(name)
}

func (q *Quoter) getQuotedName(name string, shouldQuote bool) string {
	if !shouldQuote && q.isIllegalIdentifier(name) {
		q.Logger.Warn("quoting illegal identifier", "identifier", name)
		shouldQuote = true
	}
	if shouldQuote {
		return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
	}
	return name
}

func (q *Quoter) QuoteSchema(name string) string {
	return q.getQuotedName(name, q.ShouldQuoteSchemaNames)
}

func (q *Quoter) QuoteTable(name string) string {
	return q.getQuotedName(name, q.ShouldQuoteTableNames)
}

func (q *Quoter) QualifyTable(schema string, table string) string {
	if schema == "" {
		return q.QuoteTable(table)
	}
	return fmt.Sprintf("%s.%s", q.QuoteSchema(schema), q.QuoteTable(table))
}

func (q *Quoter) LiteralString(value string) string {
	out := fmt.Sprintf("'%s'", strings.ReplaceAll(value, "'", "''"))
	if q.ShouldEEscape {
		return "E" + out
	}
	return out
}
