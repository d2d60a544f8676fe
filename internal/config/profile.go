package config

import (
	"github.com/caibirdme/ltbridge/internal/backend"
	"github.com/caibirdme/ltbridge/internal/sqlbuilder"
)

// Profile converts the default backend configuration into the BackendProfile
// record the translation core is actually parameterized on.
func (c *Config) Profile() sqlbuilder.BackendProfile {
	return toProfile(c.Backend)
}

// Registry builds a backend.Registry covering the default backend plus any
// AdditionalBackends, keyed by name (the default backend is stored under
// backend.DefaultName; an AdditionalBackends entry with that same name
// replaces it).
func (c *Config) Registry() *backend.Registry {
	profiles := make(map[string]sqlbuilder.BackendProfile, len(c.AdditionalBackends)+1)
	profiles[backend.DefaultName] = c.Profile()
	for name, bc := range c.AdditionalBackends {
		profiles[name] = toProfile(bc)
	}
	return backend.NewRegistry(profiles)
}

func toProfile(bc BackendConfig) sqlbuilder.BackendProfile {
	enc := sqlbuilder.LevelString
	if bc.LevelEncoding == "numeric" {
		enc = sqlbuilder.LevelNumeric
	}
	return sqlbuilder.BackendProfile{
		LogTable:         bc.LogTable,
		SpanTable:        bc.SpanTable,
		TSColumn:         bc.TSColumn,
		LevelEncoding:    enc,
		InvertedIndex:    bc.InvertedIndex,
		AttrsMap:         bc.AttributesMap,
		ResourcesMap:     bc.ResourcesMap,
		SpanAttrsMap:     bc.SpanAttrsMap,
		ResourceAttrsMap: bc.ResourceAttrsMap,
	}
}
