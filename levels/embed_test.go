package levels

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedLevels(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"level1", "level2", "level3"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}

	counts := map[string]int{"level1": 4, "level2": 3, "level3": 1}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			enemies := 0
			for _, e := range lvl.Entities {
				if e.Prefab == "ground_enemy.yaml" || e.Prefab == "flying_enemy.yaml" {
					enemies++
				}
			}
			if enemies != counts[name] {
				t.Fatalf("expected %d enemies, got %d", counts[name], enemies)
			}
		})
	}
}

func TestLoadBase(t *testing.T) {
	base, err := LoadBase()
	if err != nil {
		t.Fatal(err)
	}
	if len(base.Entities) != 3 {
		t.Fatalf("expected ground and two walls, got %d entities", len(base.Entities))
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDiskDir(dir)
	t.Cleanup(func() { SetDiskDir("levels") })

	body := "name: level1\nspawn: {x: 1, y: 2}\nentities: []\n"
	if err := os.WriteFile(filepath.Join(dir, "level1.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	lvl, err := Load("level1")
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Spawn.X != 1 || len(lvl.Entities) != 0 {
		t.Fatalf("expected disk copy, got %+v", lvl)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("level9"); err == nil {
		t.Fatalf("expected error for missing level")
	}

	dir := t.TempDir()
	SetDiskDir(dir)
	t.Cleanup(func() { SetDiskDir("levels") })
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("entities:\n  - x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("broken"); err == nil {
		t.Fatalf("expected validation error for entity without prefab")
	}
}
