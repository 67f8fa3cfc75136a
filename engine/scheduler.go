package engine

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/sheikhrachel/go-life/model"
)

// ErrStepInProgress is returned when a grid edit arrives while a step holds the grid
var ErrStepInProgress = errors.New("step in progress")

// Scheduler drives an Engine on a fixed interval. At most one step runs at a time:
// a trigger that finds the gate taken is dropped, not queued.
type Scheduler struct {
	engine   *Engine
	grid     *model.Grid
	interval time.Duration
	elapsed  time.Duration
	gate     *semaphore.Weighted
	enabled  bool

	generation int
	onStep     func(generation int)
}

// NewScheduler returns a paused scheduler stepping grid every interval
func NewScheduler(e *Engine, g *model.Grid, interval time.Duration) (*Scheduler, error) {
	if e == nil || g == nil {
		return nil, errors.New("[NewScheduler] engine and grid are required")
	}
	if interval <= 0 {
		return nil, errors.Errorf("[NewScheduler] step interval must be positive, got %v", interval)
	}
	return &Scheduler{
		engine:   e,
		grid:     g,
		interval: interval,
		gate:     semaphore.NewWeighted(1),
	}, nil
}

// OnStep registers fn to run after each completed step, while the gate is still held
func (s *Scheduler) OnStep(fn func(generation int)) {
	s.onStep = fn
}

// Grid returns the grid being driven
func (s *Scheduler) Grid() *model.Grid {
	return s.grid
}

// Generation returns the number of completed steps
func (s *Scheduler) Generation() int {
	return s.generation
}

// Enabled reports whether timed stepping is active
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// SetEnabled starts or pauses timed stepping. Enabling makes the next Advance step immediately.
func (s *Scheduler) SetEnabled(enabled bool) {
	if enabled && !s.enabled {
		s.elapsed = s.interval
	}
	if !enabled {
		s.elapsed = 0
	}
	s.enabled = enabled
}

// TogglePause flips the simulation-enabled flag
func (s *Scheduler) TogglePause() {
	s.SetEnabled(!s.enabled)
}

// Advance adds dt to the accumulated time and steps once when the interval has elapsed.
// It reports whether a step ran. While paused nothing accumulates.
func (s *Scheduler) Advance(dt time.Duration) (bool, error) {
	if !s.enabled {
		return false, nil
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return false, nil
	}
	s.elapsed = 0
	return s.Trigger()
}

// Trigger runs one step now unless another step is in flight, in which case it is dropped
func (s *Scheduler) Trigger() (bool, error) {
	if !s.gate.TryAcquire(1) {
		return false, nil
	}
	defer s.gate.Release(1)

	if err := s.engine.Step(s.grid); err != nil {
		return false, errors.Wrapf(err, "[Trigger] generation %d", s.generation+1)
	}
	s.generation++
	if s.onStep != nil {
		s.onStep(s.generation)
	}
	return true, nil
}

// Reset zeroes the generation counter and accumulated time, keeping the enabled flag
func (s *Scheduler) Reset() {
	s.generation = 0
	if s.enabled {
		s.elapsed = s.interval
	} else {
		s.elapsed = 0
	}
}

// PointerDown toggles the cell nearest to a world position. Positions are rounded half to
// even; points outside the grid, NaN and infinities are ignored and report false.
func (s *Scheduler) PointerDown(worldX, worldY float64) (bool, error) {
	rx := math.RoundToEven(worldX)
	ry := math.RoundToEven(worldY)
	// range-check before converting, float to int is undefined outside int's range
	if !(rx >= 0 && rx < float64(s.grid.GetWidth()) && ry >= 0 && ry < float64(s.grid.GetHeight())) {
		return false, nil
	}
	x, y := int(rx), int(ry)

	if !s.gate.TryAcquire(1) {
		return false, errors.Wrapf(ErrStepInProgress, "[PointerDown] (%d,%d)", x, y)
	}
	defer s.gate.Release(1)

	if err := s.engine.ToggleCell(s.grid, x, y); err != nil {
		return false, errors.Wrap(err, "[PointerDown] failed to toggle")
	}
	return true, nil
}
