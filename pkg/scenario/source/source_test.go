package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"helmline-hq/meridian/pkg/portfolio"
)

const scenarioYAML = `
id: q3-plan
name: Q3 Plan
horizon: 4
teams:
  - id: core
    name: Core
    capacity: [10, 10, 10, 10]
items:
  - id: alpha
    start_period: 0
    duration: 2
    allocations:
      - team_id: core
        period: 0
        tokens: 6
`

func sampleScenario() *portfolio.Scenario {
	return &portfolio.Scenario{
		ID:      "mem-1",
		Horizon: 2,
		Teams:   []portfolio.Team{{ID: "core", Capacity: []int{5, 5}}},
	}
}

func TestMemorySourceLoad(t *testing.T) {
	src := NewMemorySource(sampleScenario())

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "mem-1" {
		t.Fatalf("loaded = %+v", loaded)
	}

	// Loaded scenarios are clones; mutating them leaves the source
	// untouched.
	loaded[0].Teams[0].Capacity[0] = 99
	again, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if again[0].Teams[0].Capacity[0] != 5 {
		t.Error("mutating a loaded scenario changed source state")
	}
}

func TestMemorySourceSetAndAdd(t *testing.T) {
	src := NewMemorySource()
	src.Add(sampleScenario())
	src.Add(&portfolio.Scenario{ID: "mem-2", Horizon: 1})

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d scenarios, want 2", len(loaded))
	}

	src.Set(sampleScenario())
	loaded, err = src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Errorf("after Set, got %d scenarios, want 1", len(loaded))
	}
}

func TestFileSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "q3-plan" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestFileSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "plan.yaml"), []byte(scenarioYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(dir)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d scenarios, want 1", len(loaded))
	}
}

func TestFileSourceReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := src.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	updated := []byte("id: updated\nhorizon: 1\n")
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if loaded[0].ID != "updated" {
		t.Errorf("Load after rewrite returned %q, want updated", loaded[0].ID)
	}
}

func TestFileSourceMissingPath(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := NewFileSource(""); err == nil {
		t.Error("expected error for empty path")
	}
}
