package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caibirdme/ltbridge/internal/traceql"
)

// spanSelectColumns is the fixed column list returned for the outer span
// query, analogous to logSelectColumns for logs.
const spanSelectColumns = "sp.span_id,sp.trace_id,sp.parent_span_id,sp.service_name," +
	"sp.span_name,sp.span_kind,sp.status_code,sp.status_message,sp.duration,sp.start_time"

// BuildTraceSQL lowers a parsed TraceQL spanset expression into the
// union/subquery shape documented in spec.md §4.4.
func BuildTraceSQL(q traceql.TraceQuery, profile BackendProfile, limit int) (string, error) {
	b := &traceBuilder{profile: profile, lowered: map[string]string{}}
	if err := b.collectLeaves(q); err != nil {
		return "", err
	}
	joinPred, err := b.joinPredicate(q)
	if err != nil {
		return "", err
	}

	var union strings.Builder
	for i, ss := range b.order {
		if i > 0 {
			union.WriteString("\n    UNION\n    ")
		}
		union.WriteString(fmt.Sprintf("SELECT span_id, trace_id FROM %s WHERE %s", profile.SpanTable, b.lowered[ss]))
	}

	sql := fmt.Sprintf(
		"SELECT %s FROM %s sp\nWHERE sp.span_id IN (\n  SELECT span_id FROM (\n    %s\n  ) AS sub\n  WHERE %s\n) LIMIT %d",
		spanSelectColumns, profile.SpanTable, union.String(), joinPred, limit,
	)
	return sql, nil
}

// traceBuilder dedupes leaf spansets by their canonical source string and
// caches each leaf's lowered WHERE clause, so it is computed exactly once
// and reused for both the inner union and the outer join predicate.
type traceBuilder struct {
	profile BackendProfile
	order   []string          // canonical spanset strings, first-seen order
	lowered map[string]string // canonical spanset string -> lowered SQL condition
}

func (b *traceBuilder) collectLeaves(expr traceql.SpansetExpr) error {
	switch e := expr.(type) {
	case traceql.Spanset:
		key := e.String()
		if _, ok := b.lowered[key]; ok {
			return nil
		}
		cond, err := lowerBoolExpr(e.Body, b.profile)
		if err != nil {
			return err
		}
		b.lowered[key] = cond
		b.order = append(b.order, key)
		return nil
	case traceql.BinarySpanset:
		if err := b.collectLeaves(e.Left); err != nil {
			return err
		}
		return b.collectLeaves(e.Right)
	}
	return newSemanticError(ErrUnknownIntrinsic, fmt.Sprintf("unsupported spanset expression node %T", expr))
}

func (b *traceBuilder) joinPredicate(expr traceql.SpansetExpr) (string, error) {
	switch e := expr.(type) {
	case traceql.Spanset:
		cond := b.lowered[e.String()]
		return fmt.Sprintf("sub.trace_id IN (SELECT trace_id FROM %s WHERE %s)", b.profile.SpanTable, cond), nil
	case traceql.BinarySpanset:
		left, err := b.joinPredicate(e.Left)
		if err != nil {
			return "", err
		}
		right, err := b.joinPredicate(e.Right)
		if err != nil {
			return "", err
		}
		op := "AND"
		if e.Op == traceql.SpansetOr {
			op = "OR"
		}
		return "(" + left + " " + op + " " + right + ")", nil
	}
	return "", newSemanticError(ErrUnknownIntrinsic, fmt.Sprintf("unsupported spanset expression node %T", expr))
}

func lowerBoolExpr(expr traceql.BoolExpr, profile BackendProfile) (string, error) {
	switch e := expr.(type) {
	case traceql.Comparison:
		return lowerComparison(e, profile)
	case traceql.Not:
		inner, err := lowerBoolExpr(e.Expr, profile)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case traceql.BinaryBool:
		left, err := lowerBoolExpr(e.Left, profile)
		if err != nil {
			return "", err
		}
		right, err := lowerBoolExpr(e.Right, profile)
		if err != nil {
			return "", err
		}
		op := "AND"
		if e.Op == traceql.BoolOr {
			op = "OR"
		}
		return "(" + left + " " + op + " " + right + ")", nil
	}
	return "", newSemanticError(ErrUnknownIntrinsic, fmt.Sprintf("unsupported bool expression node %T", expr))
}

var compatibleOps = map[traceql.ValueKind]map[traceql.CmpOp]bool{
	traceql.ValString: {traceql.CmpEq: true, traceql.CmpNeq: true, traceql.CmpRe: true, traceql.CmpNre: true},
	traceql.ValInt: {
		traceql.CmpEq: true, traceql.CmpNeq: true, traceql.CmpLt: true,
		traceql.CmpLe: true, traceql.CmpGt: true, traceql.CmpGe: true,
	},
	traceql.ValFloat: {
		traceql.CmpEq: true, traceql.CmpNeq: true, traceql.CmpLt: true,
		traceql.CmpLe: true, traceql.CmpGt: true, traceql.CmpGe: true,
	},
	traceql.ValDuration: {
		traceql.CmpEq: true, traceql.CmpNeq: true, traceql.CmpLt: true,
		traceql.CmpLe: true, traceql.CmpGt: true, traceql.CmpGe: true,
	},
	traceql.ValStatus: {traceql.CmpEq: true, traceql.CmpNeq: true},
}

func lowerComparison(c traceql.Comparison, profile BackendProfile) (string, error) {
	if !compatibleOps[c.RHS.Kind][c.Op] {
		return "", newSemanticError(ErrIncompatibleCompare,
			fmt.Sprintf("operator %s is not valid for a %s value", c.Op, valueKindName(c.RHS.Kind)))
	}
	val := lowerValue(c.RHS)

	switch c.LHS.Kind {
	case traceql.FieldSpanAttr:
		return lowerFieldCmp(mapColumn(profile.SpanAttrsMap, c.LHS.Key), c.Op, val), nil
	case traceql.FieldResourceAttr:
		return lowerFieldCmp(mapColumn(profile.ResourceAttrsMap, c.LHS.Key), c.Op, val), nil
	case traceql.FieldIntrinsic:
		col, err := intrinsicColumn(c.LHS.Key)
		if err != nil {
			return "", err
		}
		return lowerFieldCmp(col, c.Op, val), nil
	case traceql.FieldBare:
		spanCol := mapColumn(profile.SpanAttrsMap, c.LHS.Key)
		resCol := mapColumn(profile.ResourceAttrsMap, c.LHS.Key)
		return "(" + lowerFieldCmp(spanCol, c.Op, val) + " OR " + lowerFieldCmp(resCol, c.Op, val) + ")", nil
	}
	return "", newSemanticError(ErrUnknownIntrinsic, "unrecognized field kind")
}

// intrinsicColumn maps an intrinsic field to its column name. These columns
// are referenced inside per-spanset WHERE clauses, which query the span
// table unaliased (spec.md §4.4) — never prefixed with the outer query's
// "sp" alias.
func intrinsicColumn(key string) (string, error) {
	switch key {
	case traceql.IntrinsicDuration:
		return "duration", nil
	case traceql.IntrinsicStatus:
		return "status_code", nil
	case traceql.IntrinsicServiceName:
		return "service_name", nil
	case traceql.IntrinsicName:
		return "span_name", nil
	case traceql.IntrinsicKind:
		return "span_kind", nil
	case traceql.IntrinsicStatusMessage:
		return "status_message", nil
	case traceql.IntrinsicTraceID:
		return "trace_id", nil
	case traceql.IntrinsicSpanID:
		return "span_id", nil
	default:
		return "", newSemanticError(ErrUnknownIntrinsic, key)
	}
}

func lowerFieldCmp(col string, op traceql.CmpOp, val string) string {
	switch op {
	case traceql.CmpRe:
		return col + " REGEXP " + val
	case traceql.CmpNre:
		return col + " NOT REGEXP " + val
	default:
		return col + string(op) + val
	}
}

func lowerValue(v traceql.Value) string {
	switch v.Kind {
	case traceql.ValString:
		return sqlString(v.Str)
	case traceql.ValInt:
		return strconv.FormatInt(v.Int, 10)
	case traceql.ValFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case traceql.ValDuration:
		return strconv.FormatInt(v.DurationNs, 10)
	case traceql.ValStatus:
		return strconv.Itoa(int(v.Status))
	}
	return ""
}

func valueKindName(k traceql.ValueKind) string {
	switch k {
	case traceql.ValString:
		return "string"
	case traceql.ValInt:
		return "integer"
	case traceql.ValFloat:
		return "float"
	case traceql.ValDuration:
		return "duration"
	case traceql.ValStatus:
		return "status"
	}
	return "unknown"
}
