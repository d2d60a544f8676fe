// Package sqlbuilder lowers logql.LogQuery and traceql.TraceQuery ASTs into
// backend SQL text, parameterized by a BackendProfile. The package holds no
// state and performs no I/O: given the same AST and profile it always
// produces byte-identical SQL, per spec.md §2 and §5.
package sqlbuilder

// LevelEncoding selects how a LogQL `level` label lowers to SQL.
type LevelEncoding int

const (
	// LevelString compares the level label against its textual value,
	// e.g. level='info'.
	LevelString LevelEncoding = iota
	// LevelNumeric compares against the numeric severity encoding
	// (info=9, debug=7, warn=11, error=13, fatal=15, trace=5).
	LevelNumeric
)

// BackendProfile records the capability flags and schema-name bindings a
// backend needs the builder to honor. It is a plain record: backend
// differences are expressed as data, never as polymorphism, per spec.md §9.
type BackendProfile struct {
	LogTable         string
	SpanTable        string
	TSColumn         string
	LevelEncoding    LevelEncoding
	InvertedIndex    bool
	AttrsMap         string
	ResourcesMap     string
	SpanAttrsMap     string
	ResourceAttrsMap string
}

// DefaultProfile returns the spec.md §3.3 default field values. Callers
// typically start from this and override the fields their deployment needs.
func DefaultProfile() BackendProfile {
	return BackendProfile{
		LogTable:         "logs",
		SpanTable:        "spans",
		TSColumn:         "timestamp",
		LevelEncoding:    LevelString,
		InvertedIndex:    false,
		AttrsMap:         "attributes",
		ResourcesMap:     "resources",
		SpanAttrsMap:     "span_attributes",
		ResourceAttrsMap: "resource_attributes",
	}
}

var levelSeverity = map[string]int{
	"trace": 5,
	"debug": 7,
	"info":  9,
	"warn":  11,
	"error": 13,
	"fatal": 15,
}
