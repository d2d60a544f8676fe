package sqlbuilder

import (
	"testing"

	"github.com/caibirdme/ltbridge/internal/logql"
)

func mustParseLog(t *testing.T, q string) logql.LogQuery {
	t.Helper()
	parsed, err := logql.Parse(q)
	if err != nil {
		t.Fatalf("logql.Parse(%q) failed: %v", q, err)
	}
	return *parsed
}

func TestBuildLogSQL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		profile  func() BackendProfile
		expected string
	}{
		{
			// Scenario L1.
			name:  "basic label plus attribute",
			input: `{app="foo",   attributes_uid="123"}`,
			profile: func() BackendProfile {
				p := DefaultProfile()
				p.TSColumn = "timestamp"
				p.LevelEncoding = LevelString
				p.InvertedIndex = false
				return p
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,timestamp FROM logs WHERE (app='foo' AND attributes['uid']='123')`,
		},
		{
			// Scenario L2 (tight-style, per our whitespace decision).
			name:  "line filters, like mode",
			input: `{app="foo",   attributes_uid="123"} |= "haha" |=  "xixi" `,
			profile: func() BackendProfile {
				p := DefaultProfile()
				return p
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,timestamp FROM logs WHERE (app='foo' AND (attributes['uid']='123' AND (message LIKE '%haha%' AND message LIKE '%xixi%')))`,
		},
		{
			// Scenario L3.
			name:  "line filters, inverted index mode",
			input: `{app="foo",   resources_uid="123"} |= "haha" |=  "xixi"`,
			profile: func() BackendProfile {
				p := DefaultProfile()
				p.InvertedIndex = true
				return p
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,timestamp FROM logs WHERE (app='foo' AND (resources['uid']='123' AND (MATCH(message,'haha') AND MATCH(message,'xixi'))))`,
		},
		{
			// Scenario L4.
			name:  "numeric level",
			input: `{level="info"}`,
			profile: func() BackendProfile {
				p := DefaultProfile()
				p.LevelEncoding = LevelNumeric
				p.TSColumn = "ts"
				return p
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,ts FROM logs WHERE level=9`,
		},
		{
			// Scenario L5.
			name:  "empty filter elided",
			input: `{level="info"} |= "" |= "hello"`,
			profile: func() BackendProfile {
				return DefaultProfile()
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,timestamp FROM logs WHERE (level='info' AND message LIKE '%hello%')`,
		},
		{
			name:  "namespace equivalence: underscore and dot forms match",
			input: `{attributes.uid="123"}`,
			profile: func() BackendProfile {
				return DefaultProfile()
			},
			expected: `SELECT app,server,trace_id,span_id,level,tags,message,timestamp FROM logs WHERE attributes['uid']='123'`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := mustParseLog(t, tc.input)
			got := BuildLogSQL(q, tc.profile())
			if got != tc.expected {
				t.Fatalf("BuildLogSQL(%q) =\n  %s\nwant:\n  %s", tc.input, got, tc.expected)
			}
		})
	}
}

func TestBuildLogSQLDeterministic(t *testing.T) {
	q := mustParseLog(t, `{app="foo"} |= "bar"`)
	profile := DefaultProfile()
	first := BuildLogSQL(q, profile)
	second := BuildLogSQL(q, profile)
	if first != second {
		t.Fatalf("BuildLogSQL is not deterministic: %q != %q", first, second)
	}
}

func TestBuildLogSQLNamespaceEquivalence(t *testing.T) {
	profile := DefaultProfile()
	underscore := BuildLogSQL(mustParseLog(t, `{attributes_uid="123"}`), profile)
	dotted := BuildLogSQL(mustParseLog(t, `{attributes.uid="123"}`), profile)
	if underscore != dotted {
		t.Fatalf("namespace forms diverge: %q != %q", underscore, dotted)
	}

	underscoreRes := BuildLogSQL(mustParseLog(t, `{resources_key="x"}`), profile)
	dottedRes := BuildLogSQL(mustParseLog(t, `{resources.key="x"}`), profile)
	if underscoreRes != dottedRes {
		t.Fatalf("resources namespace forms diverge: %q != %q", underscoreRes, dottedRes)
	}
}

func TestBuildLogSQLEmptyFilterElision(t *testing.T) {
	profile := DefaultProfile()
	withEmpty := BuildLogSQL(mustParseLog(t, `{app="foo"} |= "" |= "bar"`), profile)
	without := BuildLogSQL(mustParseLog(t, `{app="foo"} |= "bar"`), profile)
	if withEmpty != without {
		t.Fatalf("empty filter changed output: %q != %q", withEmpty, without)
	}
}
