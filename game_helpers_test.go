package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

func TestCheckRestartConditions(t *testing.T) {
	config := utils.DefaultConfig()
	tests := []struct {
		living, stagnant int
		want             bool
		reason           string
	}{
		{0, 0, true, "extinction"},
		{10, config.StagnationThreshold, true, "stagnation detected"},
		{10, config.StagnationThreshold - 1, false, ""},
	}
	for _, tt := range tests {
		got, reason := checkRestartConditions(tt.living, tt.stagnant, config)
		if got != tt.want || reason != tt.reason {
			t.Fatalf("checkRestartConditions(%d,%d)=(%v,%q), expected (%v,%q)",
				tt.living, tt.stagnant, got, reason, tt.want, tt.reason)
		}
	}
}

func TestGameStopsAtMaxGenerations(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 8, 8
	config.Seed = 5
	config.StartPopulated = true
	config.MaxGenerations = 3

	g, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	for !g.done {
		if _, err = g.scheduler.Trigger(); err != nil {
			t.Fatalf("Trigger: %v", err)
		}
	}
	if g.scheduler.Generation() != 3 {
		t.Fatalf("generation=%d, expected 3", g.scheduler.Generation())
	}
	if g.stats.TotalGenerations != 3 || g.stats.ActiveCells != g.scheduler.Grid().CountLivingCells() {
		t.Fatalf("stats=%+v out of sync with generation 3", g.stats)
	}
}

func TestGameRestartsWhenExtinct(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 10, 10
	config.Seed = 11
	config.AutoRestart = true

	g, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	// an empty grid is extinct after the first step and gets reseeded
	if _, err = g.scheduler.Trigger(); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if g.scheduler.Grid().CountLivingCells() == 0 {
		t.Fatalf("grid was not reseeded after extinction")
	}
	if g.lastRestartGen != 1 {
		t.Fatalf("lastRestartGen=%d, expected 1", g.lastRestartGen)
	}
}

func TestRestartStampsPatterns(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 10, 10
	config.Seed = 11
	config.AutoRestart = true

	g, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	if _, err = g.scheduler.Trigger(); err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	grid := g.scheduler.Grid()
	expects := map[[2]int]bool{
		// glider at (1,1)
		{2, 1}: true, {1, 1}: false, {3, 2}: true, {1, 3}: true, {2, 3}: true, {3, 3}: true,
		// blinker at (5,5)
		{5, 5}: true, {6, 5}: true, {7, 5}: true,
		// block at (6,6)
		{6, 6}: true, {7, 6}: true, {6, 7}: true, {7, 7}: true,
	}
	for c, want := range expects {
		if alive, _ := grid.IsAlive(c[0], c[1]); alive != want {
			t.Fatalf("cell (%d,%d) alive=%v, expected %v\n%s", c[0], c[1], alive, want, grid)
		}
	}
}

func TestStagnationInjectsLife(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.cells")
	if err := os.WriteFile(path, []byte("!Name: block\nOO\nOO\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	config := utils.DefaultConfig()
	config.Width, config.Height = 10, 10
	config.Seed = 3
	config.Pattern = path
	config.InjectionCount = 3

	g, err := initializeGame(config)
	if err != nil {
		t.Fatalf("initializeGame: %v", err)
	}
	grid := g.scheduler.Grid()
	for _, c := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if alive, _ := grid.IsAlive(c[0], c[1]); !alive {
			t.Fatalf("pattern cell (%d,%d) not loaded\n%s", c[0], c[1], grid)
		}
	}

	// the block repeats from generation 4 on; the second stagnant generation injects
	for range 4 {
		_, _ = g.scheduler.Trigger()
	}
	if n := grid.CountLivingCells(); n != 4 {
		t.Fatalf("living=%d before injection, expected 4", n)
	}
	_, _ = g.scheduler.Trigger()
	if n := grid.CountLivingCells(); n <= 4 {
		t.Fatalf("living=%d after stagnation, expected injected cells", n)
	}
}

func TestLoadPatternErrors(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 3, 3

	config.Pattern = filepath.Join(t.TempDir(), "missing.cells")
	if _, err := initializeGame(config); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, expected os.ErrNotExist", err)
	}

	path := filepath.Join(t.TempDir(), "wide.cells")
	_ = os.WriteFile(path, []byte("OOOO\n"), 0o600)
	config.Pattern = path
	if _, err := initializeGame(config); !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("err=%v, expected ErrOutOfBounds", err)
	}
}
