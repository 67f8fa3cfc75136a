package engine

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/rules"
)

// Engine advances a grid one generation at a time under the B3/S23 rule
type Engine struct {
	workers int
}

// New returns an engine that splits the counting pass across workers goroutines.
// A non-positive value uses one worker per CPU.
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{workers: workers}
}

// Workers returns the number of goroutines used by the counting pass
func (e *Engine) Workers() int {
	return e.workers
}

// Step advances the grid by exactly one generation, mutating it in place.
// Every neighbor count is computed from the pre-step states before any state changes.
func (e *Engine) Step(g *model.Grid) error {
	if g == nil {
		return errors.New("[Step] nil grid")
	}

	if err := e.countNeighbors(g); err != nil {
		return errors.Wrap(err, "[Step] failed to count neighbors")
	}

	g.Apply(rules.ApplyConwayRules)
	return nil
}

// countNeighbors stores the live neighbor count of every cell. Workers own disjoint row
// ranges and only read cell states, so the states stay a consistent snapshot.
func (e *Engine) countNeighbors(g *model.Grid) error {
	height := g.GetHeight()
	if e.workers == 1 {
		g.CountRows(0, height)
		return nil
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (height + e.workers - 1) / e.workers
	)

	for i := range e.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			g.CountRows(startRow, endRow)
			return nil
		})
	}

	return eg.Wait()
}

// ToggleCell flips one cell for a user edit between steps; it does not advance the generation
func (e *Engine) ToggleCell(g *model.Grid, x, y int) error {
	if g == nil {
		return errors.New("[ToggleCell] nil grid")
	}
	return errors.Wrap(g.Toggle(x, y), "[ToggleCell] failed to toggle")
}
