// Package logql parses Grafana Loki's LogQL selector and line-filter
// subset into a LogQuery AST for consumption by sqlbuilder.
package logql

import "strings"

// MatchOp is a label-matcher operator inside a selector.
type MatchOp string

const (
	OpEq  MatchOp = "="
	OpNeq MatchOp = "!="
	OpRe  MatchOp = "=~"
	OpNre MatchOp = "!~"
)

// FilterOp is a line-filter operator applied after the selector.
type FilterOp string

const (
	OpContains    FilterOp = "|="
	OpNotContains FilterOp = "!="
	OpRegex       FilterOp = "|~"
	OpNotRegex    FilterOp = "!~"
)

// LabelMatch is a single `name op "value"` entry inside a selector.
// Name may carry a namespace prefix (attributes_key, attributes.key,
// resources_key, resources.key); namespace resolution happens at SQL
// emission time, not here.
type LabelMatch struct {
	Name  string
	Op    MatchOp
	Value string
}

// Selector is the non-empty, implicitly-AND'd list of label matchers
// inside `{ ... }`.
type Selector []LabelMatch

// LineFilter is one `|= "pattern"`-shaped clause following the selector.
// A Pattern of "" is a no-op and is dropped by the SQL builder.
type LineFilter struct {
	Op      FilterOp
	Pattern string
}

// LogQuery is the root AST produced by Parse.
type LogQuery struct {
	Selector Selector
	Filters  []LineFilter
}

// String renders the canonical, re-parseable surface form of the query:
// `{name op "value", ...} op "pattern" ...`.
func (q LogQuery) String() string {
	var b strings.Builder
	b.WriteString(q.Selector.String())
	for _, f := range q.Filters {
		b.WriteByte(' ')
		b.WriteString(string(f.Op))
		b.WriteString(` "`)
		b.WriteString(escapeString(f.Pattern))
		b.WriteString(`"`)
	}
	return b.String()
}

func (s Selector) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Name)
		b.WriteString(string(m.Op))
		b.WriteByte('"')
		b.WriteString(escapeString(m.Value))
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
