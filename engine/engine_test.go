package engine

import (
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

func parse(t *testing.T, rows ...string) *model.Grid {
	t.Helper()
	g, err := model.ParsePlaintext(strings.NewReader(strings.Join(rows, "\n")))
	if err != nil {
		t.Fatalf("ParsePlaintext: %v", err)
	}
	return g
}

func step(t *testing.T, e *Engine, g *model.Grid) {
	t.Helper()
	if err := e.Step(g); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func expectLive(t *testing.T, g *model.Grid, live ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, c := range live {
		expects[c] = true
	}
	for y := 0; y < g.GetHeight(); y++ {
		for x := 0; x < g.GetWidth(); x++ {
			alive, _ := g.IsAlive(x, y)
			if alive != expects[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v\n%s", x, y, alive, expects[[2]int{x, y}], g)
			}
		}
	}
}

func TestStepAllDeadStaysDead(t *testing.T) {
	for _, workers := range []int{1, 3} {
		g, _ := model.NewGrid(7, 5)
		step(t, New(workers), g)
		if n := g.CountLivingCells(); n != 0 {
			t.Fatalf("workers=%d: %d cells came alive on an empty grid", workers, n)
		}
	}
}

func TestStepBlinker(t *testing.T) {
	e := New(1)
	g, _ := model.NewGrid(5, 5)
	for _, c := range [][2]int{{1, 2}, {2, 2}, {3, 2}} {
		_ = g.SetAlive(c[0], c[1], true)
	}

	step(t, e, g)
	expectLive(t, g, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	step(t, e, g)
	expectLive(t, g, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
}

func TestStepIsolatedCellsDie(t *testing.T) {
	g := parse(t,
		".....",
		".O...",
		".....",
		"...OO",
	)
	step(t, New(1), g)
	expectLive(t, g)
}

func TestStepBlockIsStable(t *testing.T) {
	e := New(2)
	g := parse(t,
		"......",
		".OO...",
		".OO...",
		"......",
	)
	want := g.Clone()
	for i := range 10 {
		step(t, e, g)
		if !g.Equal(want) {
			t.Fatalf("block changed after %d steps:\n%s", i+1, g)
		}
	}
}

func TestStepCornerBlock(t *testing.T) {
	// a block in the corner has only in-grid neighbors and must survive
	g := parse(t,
		"OO..",
		"OO..",
		"....",
	)
	step(t, New(1), g)
	expectLive(t, g, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})
	if n, _ := g.NeighborCount(0, 0); n != 3 {
		t.Fatalf("corner neighbors=%d, expected 3", n)
	}
}

func TestStepDoesNotWrap(t *testing.T) {
	// on a torus the edge cells would see each other and (0,1) would be born
	g := parse(t,
		"O..O",
		"....",
		"O...",
	)
	step(t, New(1), g)
	expectLive(t, g)
}

func TestStepStoresNeighborCounts(t *testing.T) {
	g := parse(t,
		".....",
		".OOO.",
		".....",
	)
	step(t, New(1), g)

	want := [][]int{
		{1, 2, 3, 2, 1},
		{1, 1, 2, 1, 1},
		{1, 2, 3, 2, 1},
	}
	for y, row := range want {
		for x, n := range row {
			if got, _ := g.NeighborCount(x, y); got != n {
				t.Fatalf("cell (%d,%d) neighbors=%d, expected %d", x, y, got, n)
			}
		}
	}
}

func TestStepDeterministicAcrossWorkers(t *testing.T) {
	seed, _ := model.NewGrid(37, 23)
	seed.Populate(model.NewRand(99))

	var results []*model.Grid
	for _, workers := range []int{1, 2, 5, 64} {
		g := seed.Clone()
		e := New(workers)
		step(t, e, g)
		step(t, e, g)
		results = append(results, g)
	}
	for i, g := range results[1:] {
		if !g.Equal(results[0]) {
			t.Fatalf("run %d differs from sequential run:\n%s\nvs\n%s", i+1, g, results[0])
		}
	}
}

func TestNewDefaultsWorkers(t *testing.T) {
	if New(0).Workers() < 1 {
		t.Fatalf("expected at least one worker")
	}
	if New(4).Workers() != 4 {
		t.Fatalf("expected 4 workers")
	}
}

func TestToggleCell(t *testing.T) {
	e := New(1)
	g, _ := model.NewGrid(3, 3)

	if err := e.ToggleCell(g, 2, 2); err != nil {
		t.Fatalf("ToggleCell: %v", err)
	}
	expectLive(t, g, [2]int{2, 2})

	if err := e.ToggleCell(g, 3, 0); !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("err=%v, expected ErrOutOfBounds", err)
	}
	if err := e.ToggleCell(nil, 0, 0); err == nil {
		t.Fatalf("expected error for nil grid")
	}
	if err := e.Step(nil); err == nil {
		t.Fatalf("expected error for nil grid")
	}
}
