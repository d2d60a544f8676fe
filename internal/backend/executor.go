// Package backend defines the seam between the query-translation core and a
// real columnar log/trace store. No backend driver ships in this module —
// Databend, Quickwit, and similar drivers are out of scope per spec.md §1 —
// but handlers need something to call, so this package also provides a
// NoopExecutor that returns no rows, in which case the handlers respond
// with the translated SQL instead.
package backend

import "context"

// LogRow is one result row from a log query, shaped to match the fixed
// SELECT list documented in spec.md §4.3.
type LogRow struct {
	App     string
	Server  string
	TraceID string
	SpanID  string
	Level   string
	Tags    string
	Message string
	Ts      int64
}

// TraceRow is one result row from a trace query's outer span projection.
type TraceRow struct {
	SpanID       string
	TraceID      string
	ParentSpanID string
	ServiceName  string
	SpanName     string
	SpanKind     string
	StatusCode   int
	StatusMsg    string
	DurationNs   int64
	StartTimeNs  int64
}

// Executor runs already-built SQL against a columnar backend.
type Executor interface {
	QueryLogs(ctx context.Context, sql string) ([]LogRow, error)
	QueryTraceSpans(ctx context.Context, sql string) ([]TraceRow, error)
}

// NoopExecutor never touches a real backend; it exists so the translation
// pipeline is exercisable end-to-end (and HTTP handlers testable) without a
// live Databend/Quickwit instance. Handlers fall back to returning the
// built SQL string when given one of these.
type NoopExecutor struct{}

func (NoopExecutor) QueryLogs(ctx context.Context, sql string) ([]LogRow, error) {
	return nil, nil
}

func (NoopExecutor) QueryTraceSpans(ctx context.Context, sql string) ([]TraceRow, error) {
	return nil, nil
}
