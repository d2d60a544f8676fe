package sqlbuilder

import "strings"

const (
	nsAttributes = "attributes"
	nsResources  = "resources"
)

// resolveNamespace splits a LogQL label name into its namespace and key.
// Only the first '.' or '_'-delimited token is treated as a namespace
// candidate; the remainder (even if it contains further separators) is the
// key verbatim, per spec.md §9's recommendation on the open question.
func resolveNamespace(name string) (namespace, key string) {
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		prefix := name[:idx]
		if prefix == nsAttributes || prefix == nsResources {
			return prefix, name[idx+1:]
		}
	}
	for _, ns := range []string{nsAttributes, nsResources} {
		p := ns + "_"
		if strings.HasPrefix(name, p) {
			return ns, name[len(p):]
		}
	}
	return "", name
}

func mapColumn(mapName, key string) string {
	return mapName + "['" + key + "']"
}
