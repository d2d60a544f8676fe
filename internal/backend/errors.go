package backend

import "fmt"

// ProfileError means a request referenced a backend profile that does not
// exist; Registry.Resolve is the only place that raises it. Per spec.md
// §7, the core never raises this — sqlbuilder emits whatever SQL the
// profile it is given asks for — so resolving and validating profiles is
// this ambient layer's job, and a ProfileError is always the caller's (the
// deployment's) misconfiguration, not a malformed query.
type ProfileError struct {
	Name   string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("backend profile %q: %s", e.Name, e.Reason)
}
