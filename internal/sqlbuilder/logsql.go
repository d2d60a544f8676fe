package sqlbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caibirdme/ltbridge/internal/logql"
)

const logSelectColumns = "app,server,trace_id,span_id,level,tags,message"

// BuildLogSQL lowers a parsed LogQL query into a single
// `SELECT ... FROM <log_table> WHERE ...` statement, per spec.md §4.3.
func BuildLogSQL(q logql.LogQuery, profile BackendProfile) string {
	conds := make([]string, 0, len(q.Selector)+len(q.Filters))
	for _, m := range q.Selector {
		conds = append(conds, lowerLabelMatch(m, profile))
	}
	for _, f := range q.Filters {
		if f.Pattern == "" {
			continue // empty-pattern filters are no-ops, spec.md §3.1/§4.3
		}
		conds = append(conds, lowerLineFilter(f, profile))
	}
	where := andJoin(conds)
	return fmt.Sprintf("SELECT %s,%s FROM %s WHERE %s", logSelectColumns, profile.TSColumn, profile.LogTable, where)
}

func lowerLabelMatch(m logql.LabelMatch, profile BackendProfile) string {
	ns, key := resolveNamespace(m.Name)
	col := resolveLogColumn(ns, key, profile)

	if ns == "" && key == "level" && (m.Op == logql.OpEq || m.Op == logql.OpNeq) {
		val := levelValue(m.Value, profile)
		if m.Op == logql.OpEq {
			return col + "=" + val
		}
		return col + "!=" + val
	}

	switch m.Op {
	case logql.OpEq:
		return col + "=" + sqlString(m.Value)
	case logql.OpNeq:
		return col + "!=" + sqlString(m.Value)
	case logql.OpRe:
		if profile.InvertedIndex {
			return "MATCH(" + col + "," + sqlString(m.Value) + ")"
		}
		return col + " REGEXP " + sqlString(m.Value)
	case logql.OpNre:
		if profile.InvertedIndex {
			return "NOT MATCH(" + col + "," + sqlString(m.Value) + ")"
		}
		return col + " NOT REGEXP " + sqlString(m.Value)
	}
	return col + "=" + sqlString(m.Value)
}

func resolveLogColumn(ns, key string, profile BackendProfile) string {
	switch ns {
	case nsAttributes:
		return mapColumn(profile.AttrsMap, key)
	case nsResources:
		return mapColumn(profile.ResourcesMap, key)
	default:
		return key
	}
}

func levelValue(raw string, profile BackendProfile) string {
	if profile.LevelEncoding == LevelNumeric {
		if n, ok := levelSeverity[strings.ToLower(raw)]; ok {
			return strconv.Itoa(n)
		}
	}
	return sqlString(raw)
}

func lowerLineFilter(f logql.LineFilter, profile BackendProfile) string {
	switch f.Op {
	case logql.OpContains:
		if profile.InvertedIndex {
			return "MATCH(message," + sqlString(f.Pattern) + ")"
		}
		return "message LIKE " + sqlString("%"+f.Pattern+"%")
	case logql.OpNotContains:
		if profile.InvertedIndex {
			return "NOT MATCH(message," + sqlString(f.Pattern) + ")"
		}
		return "message NOT LIKE " + sqlString("%"+f.Pattern+"%")
	case logql.OpRegex:
		if profile.InvertedIndex {
			return "MATCH(message," + sqlString(f.Pattern) + ")"
		}
		return "message REGEXP " + sqlString(f.Pattern)
	case logql.OpNotRegex:
		if profile.InvertedIndex {
			return "NOT MATCH(message," + sqlString(f.Pattern) + ")"
		}
		return "message NOT REGEXP " + sqlString(f.Pattern)
	}
	return ""
}
