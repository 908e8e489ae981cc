package levels_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/kiwi/internal/core"
	"github.com/vovakirdan/kiwi/internal/grid"
	"github.com/vovakirdan/kiwi/internal/levels"
)

func TestLoadFixture(t *testing.T) {
	g, err := levels.Load(filepath.Join("testdata", "levels", "01.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if g.Width() != 5 || g.Height() != 5 {
		t.Errorf("expected 5x5 grid, got %dx%d", g.Width(), g.Height())
	}
	if g.Start != core.V(1, 1) {
		t.Errorf("Start = %v, expected (1,1)", g.Start)
	}
	tr, ok := g.TriggerAt(core.V(3, 3))
	if !ok || tr.ID != grid.ExitFinish {
		t.Errorf("TriggerAt(3,3) = %+v, %v", tr, ok)
	}

	box := g.At(core.V(2, 2))
	if box.Glyph != 'o' || box.Bg != grid.Black || box.Fg != grid.White {
		t.Errorf("At(2,2) = %+v, expected white 'o' on black", box)
	}
	if !g.At(core.V(0, 0)).Empty() {
		t.Errorf("At(0,0) = %+v, expected empty", g.At(core.V(0, 0)))
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		invalid bool
	}{
		{"missing file", "nope.yaml", false},
		{"wrong row count", "broken_rows.yaml", true},
		{"unknown color", "broken_color.yaml", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join("testdata", tc.file)
			g, err := levels.Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if g != nil {
				t.Error("expected no grid on failure")
			}
			if got := errors.Is(err, levels.ErrInvalidLevel); got != tc.invalid {
				t.Errorf("errors.Is(ErrInvalidLevel) = %v, expected %v (err: %v)", got, tc.invalid, err)
			}
		})
	}
}

func TestParseRowWidthMismatch(t *testing.T) {
	data := []byte(`width: 2
height: 1
data:
  - - {letter: "a", background: Black, foreground: White}
`)
	if _, err := levels.Parse(data); !errors.Is(err, levels.ErrInvalidLevel) {
		t.Errorf("Parse() error = %v, expected ErrInvalidLevel", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	g := grid.NewBlank(6, 5)
	g.Set(core.V(0, 0), grid.Cell{Glyph: '#', Fg: grid.DarkGray, Bg: grid.White})
	g.Set(core.V(5, 4), grid.Cell{Glyph: 'ä', Fg: grid.LightGray, Bg: grid.DarkGray})
	g.Set(core.V(2, 2), grid.Cell{Glyph: ' ', Fg: grid.Black, Bg: grid.White})
	g.Start = core.V(3, 1)
	g.PlaceTrigger(core.V(4, 4), grid.ExitBranchB)
	g.PlaceTrigger(core.V(1, 3), grid.ExitFinish)

	path := filepath.Join(t.TempDir(), "nested", "level.yaml")
	if err := levels.Save(path, g); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := levels.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !loaded.Equal(g) {
		t.Error("loaded grid differs from saved grid")
	}
}

func TestLoadList(t *testing.T) {
	root := "testdata"
	paths, err := levels.LoadList(root, "")
	if err != nil {
		t.Fatalf("LoadList() error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}

	for i, name := range []string{"01.yaml", "02.yaml"} {
		if !filepath.IsAbs(paths[i]) {
			t.Errorf("path %q is not absolute", paths[i])
		}
		if filepath.Base(paths[i]) != name {
			t.Errorf("paths[%d] = %q, expected %s", i, paths[i], name)
		}
		if _, err := levels.Load(paths[i]); err != nil {
			t.Errorf("Load(%q) error: %v", paths[i], err)
		}
	}
}

func TestLoadListMissing(t *testing.T) {
	if _, err := levels.LoadList(t.TempDir(), ""); err == nil {
		t.Error("expected error for missing list")
	}
}

func TestDiscoverRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "levels"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, levels.DefaultList), []byte("files: [levels/01.yaml]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := levels.DiscoverRoot(deep)
	if err != nil {
		t.Fatalf("DiscoverRoot() error: %v", err)
	}

	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(found)
	if got != want {
		t.Errorf("DiscoverRoot() = %q, expected %q", found, root)
	}
}

func TestFindRootNotFound(t *testing.T) {
	_, err := levels.FindRoot(t.TempDir(), "definitely/not/here.yaml")
	if !errors.Is(err, levels.ErrRootNotFound) {
		t.Errorf("FindRoot() error = %v, expected ErrRootNotFound", err)
	}
}

func TestShippedLevelList(t *testing.T) {
	root := filepath.Join("..", "..")
	paths, err := levels.LoadList(root, "")
	if err != nil {
		t.Fatalf("LoadList() error: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("LoadList() = %d levels, expected 3", len(paths))
	}

	for _, p := range paths {
		g, err := levels.Load(p)
		if err != nil {
			t.Errorf("Load(%s) error: %v", p, err)
			continue
		}
		if !g.Contains(g.Start) {
			t.Errorf("%s: start %v outside the grid", p, g.Start)
		}
		exits := 0
		for _, tr := range g.Triggers {
			switch tr.ID {
			case grid.ExitFinish, grid.ExitBranchA, grid.ExitBranchB:
				exits++
			}
		}
		if exits == 0 {
			t.Errorf("%s: no exit trigger", p)
		}
	}
}
