package backend

import (
	"testing"

	"github.com/caibirdme/ltbridge/internal/sqlbuilder"
)

func TestRegistryResolveDefault(t *testing.T) {
	r := NewRegistry(map[string]sqlbuilder.BackendProfile{
		DefaultName: sqlbuilder.DefaultProfile(),
	})

	p, err := r.Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LogTable != "logs" {
		t.Fatalf("LogTable = %q, want logs", p.LogTable)
	}
}

func TestRegistryResolveNamed(t *testing.T) {
	cold := sqlbuilder.DefaultProfile()
	cold.LogTable = "cold_logs"
	r := NewRegistry(map[string]sqlbuilder.BackendProfile{
		DefaultName:    sqlbuilder.DefaultProfile(),
		"cold-archive": cold,
	})

	p, err := r.Resolve("cold-archive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.LogTable != "cold_logs" {
		t.Fatalf("LogTable = %q, want cold_logs", p.LogTable)
	}
}

func TestRegistryResolveUnknown(t *testing.T) {
	r := NewRegistry(map[string]sqlbuilder.BackendProfile{
		DefaultName: sqlbuilder.DefaultProfile(),
	})

	_, err := r.Resolve("nope")
	if err == nil {
		t.Fatal("expected an error for an unknown backend name")
	}
	profErr, ok := err.(*ProfileError)
	if !ok {
		t.Fatalf("error type = %T, want *ProfileError", err)
	}
	if profErr.Name != "nope" {
		t.Fatalf("Name = %q, want nope", profErr.Name)
	}
}
