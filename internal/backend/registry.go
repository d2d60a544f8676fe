package backend

import "github.com/caibirdme/ltbridge/internal/sqlbuilder"

// Registry resolves a named BackendProfile. Deployments that front more
// than one columnar store (e.g. a hot Databend cluster and a cold Quickwit
// archive) configure one profile per name; requests pick one with a
// "backend" query parameter, defaulting to DefaultName.
type Registry struct {
	profiles map[string]sqlbuilder.BackendProfile
}

// DefaultName is the profile used when a request does not specify one.
const DefaultName = "default"

func NewRegistry(profiles map[string]sqlbuilder.BackendProfile) *Registry {
	return &Registry{profiles: profiles}
}

// Resolve looks up a profile by name. An empty name resolves to DefaultName.
func (r *Registry) Resolve(name string) (sqlbuilder.BackendProfile, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := r.profiles[name]
	if !ok {
		return sqlbuilder.BackendProfile{}, &ProfileError{Name: name, Reason: "no backend profile configured with this name"}
	}
	return p, nil
}
