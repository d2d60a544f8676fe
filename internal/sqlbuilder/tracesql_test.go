package sqlbuilder

import (
	"strings"
	"testing"

	"github.com/caibirdme/ltbridge/internal/traceql"
)

func mustParseTrace(t *testing.T, q string) traceql.TraceQuery {
	t.Helper()
	parsed, err := traceql.Parse(q)
	if err != nil {
		t.Fatalf("traceql.Parse(%q) failed: %v", q, err)
	}
	return parsed
}

// Scenario T1 — two spansets, &&.
func TestBuildTraceSQLTwoSpansets(t *testing.T) {
	q := mustParseTrace(t, `{resource.app="camp" && serviceName="fooSvc"} && {qwe="qqq"}`)
	got, err := BuildTraceSQL(q, DefaultProfile(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT " + spanSelectColumns + " FROM spans sp\n" +
		"WHERE sp.span_id IN (\n" +
		"  SELECT span_id FROM (\n" +
		"    SELECT span_id, trace_id FROM spans WHERE (resource_attributes['app']='camp' AND service_name='fooSvc')\n" +
		"    UNION\n" +
		"    SELECT span_id, trace_id FROM spans WHERE (span_attributes['qwe']='qqq' OR resource_attributes['qwe']='qqq')\n" +
		"  ) AS sub\n" +
		"  WHERE (sub.trace_id IN (SELECT trace_id FROM spans WHERE (resource_attributes['app']='camp' AND service_name='fooSvc')) AND " +
		"sub.trace_id IN (SELECT trace_id FROM spans WHERE (span_attributes['qwe']='qqq' OR resource_attributes['qwe']='qqq')))\n" +
		") LIMIT 100"

	if got != want {
		t.Fatalf("BuildTraceSQL mismatch\n got: %s\nwant: %s", got, want)
	}
}

// Scenario T2 — three spansets, mixed operators, outer predicate A AND (B OR C).
func TestBuildTraceSQLThreeSpansetsMixedOperators(t *testing.T) {
	q := mustParseTrace(t, `{resource.app="camp" && serviceName="fooSvc"} && ({span.qwe="qqq"} || {foo>10})`)
	got, err := BuildTraceSQL(q, DefaultProfile(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	unionCount := strings.Count(got, "UNION")
	if unionCount != 2 {
		t.Fatalf("expected 3-way union (2 UNION keywords), got %d in:\n%s", unionCount, got)
	}
	if !strings.Contains(got, "span_attributes['qwe']='qqq'") {
		t.Fatalf("missing span.qwe leaf lowering:\n%s", got)
	}
	if !strings.Contains(got, "(span_attributes['foo']>10 OR resource_attributes['foo']>10)") {
		t.Fatalf("missing bare-field disjunction for foo>10:\n%s", got)
	}
	if !strings.Contains(got, "AND (sub.trace_id IN") {
		t.Fatalf("expected outer predicate shape A AND (B OR C):\n%s", got)
	}
	if !strings.HasSuffix(got, "LIMIT 10") {
		t.Fatalf("expected LIMIT 10 exactly once at the end:\n%s", got)
	}
}

// Scenario T3 — duration and status lowering.
func TestBuildTraceSQLDurationAndStatus(t *testing.T) {
	q := mustParseTrace(t, `{resource.app="camp" && duration > 90s && status!=ok}`)
	got, err := BuildTraceSQL(q, DefaultProfile(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "duration>90000000000") {
		t.Fatalf("expected normalized duration literal:\n%s", got)
	}
	if !strings.Contains(got, "status_code!=1") {
		t.Fatalf("expected status literal mapped to its integer:\n%s", got)
	}
}

func TestBuildTraceSQLDeterministic(t *testing.T) {
	q := mustParseTrace(t, `{resource.app="camp"} && {foo="bar"}`)
	profile := DefaultProfile()
	first, err := BuildTraceSQL(q, profile, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildTraceSQL(q, profile, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("BuildTraceSQL is not deterministic:\n%q\n%q", first, second)
	}
}

func TestBuildTraceSQLIncompatibleComparison(t *testing.T) {
	q := mustParseTrace(t, `{serviceName<"foo"}`)
	_, err := BuildTraceSQL(q, DefaultProfile(), 10)
	if err == nil {
		t.Fatal("expected an incompatible-comparison error")
	}
	semErr, ok := err.(*SemanticError)
	if !ok {
		t.Fatalf("error type = %T, want *SemanticError", err)
	}
	if semErr.Kind != ErrIncompatibleCompare {
		t.Fatalf("error kind = %v, want %v", semErr.Kind, ErrIncompatibleCompare)
	}
}

func TestBuildTraceSQLDedupesIdenticalSpansets(t *testing.T) {
	q := mustParseTrace(t, `{app="foo"} && {app="foo"}`)
	got, err := BuildTraceSQL(q, DefaultProfile(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "UNION") != 0 {
		t.Fatalf("expected a single deduplicated leaf (no UNION) for identical spansets:\n%s", got)
	}
}
