package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// game bundles the state the driver loop needs between ticks
type game struct {
	config    utils.Config
	scheduler *engine.Scheduler
	rng       *rand.Rand
	history   model.History
	stats     *utils.Stats

	stagnantCount  int
	lastRestartGen int
	lastStepTime   time.Time
	done           bool
}

// initializeGame sets up the grid, engine and scheduler from config
func initializeGame(config utils.Config) (*game, error) {
	grid, err := model.NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to build grid")
	}

	seed := config.SeedOrNow()
	rng := model.NewRand(seed)
	if config.StartPopulated {
		grid.Populate(rng)
	}
	if config.Pattern != "" {
		if err = loadPattern(grid, config.Pattern); err != nil {
			return nil, errors.Wrap(err, "[initializeGame] failed to load pattern")
		}
	}

	scheduler, err := engine.NewScheduler(engine.New(config.Workers), grid, config.StepInterval())
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to build scheduler")
	}
	scheduler.SetEnabled(config.StartRunning)

	g := &game{
		config:       config,
		scheduler:    scheduler,
		rng:          rng,
		stats:        utils.NewStats(),
		lastStepTime: time.Now(),
	}
	scheduler.OnStep(g.afterStep)

	slog.Info("game initialized",
		"width", config.Width, "height", config.Height,
		"seed", seed, "populated", config.StartPopulated,
		"interval", config.StepInterval(), "running", config.StartRunning)
	return g, nil
}

// afterStep runs once per completed generation
func (g *game) afterStep(generation int) {
	grid := g.scheduler.Grid()
	livingCells, density, status, isStagnant := g.updateGameState(grid, generation)

	if isStagnant {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	g.displayGameStatus(generation, livingCells, density, status)

	if g.config.MaxGenerations > 0 && generation >= g.config.MaxGenerations {
		fmt.Printf("\nReached maximum generations limit (%d)\n", g.config.MaxGenerations)
		g.done = true
		return
	}

	shouldRestart, reason := checkRestartConditions(livingCells, g.stagnantCount, g.config)
	if shouldRestart && g.config.AutoRestart {
		g.restartGame(generation, reason)
	} else if g.stagnantCount >= 2 && g.config.InjectionCount > 0 {
		// Inject some life to try to break the stagnation
		grid.InjectRandomLife(g.rng, g.config.InjectionCount)
		g.history.Reset()
		slog.Debug("injected life", "generation", generation, "count", g.config.InjectionCount)
	}
}

// loadPattern reads a plaintext pattern file and pastes it at the center of grid
func loadPattern(grid *model.Grid, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "[loadPattern] failed to open file: %+v", path)
	}
	defer f.Close()

	pattern, err := model.ParsePlaintext(f)
	if err != nil {
		return errors.Wrapf(err, "[loadPattern] failed to parse file: %+v", path)
	}

	startX := (grid.GetWidth() - pattern.GetWidth()) / 2
	startY := (grid.GetHeight() - pattern.GetHeight()) / 2
	return errors.Wrapf(grid.Paste(startX, startY, pattern), "[loadPattern] pattern %+v", path)
}

// addInterestingPatterns stamps a glider, blinkers and a block on grids large enough to hold them
func addInterestingPatterns(grid *model.Grid) {
	w, h := grid.GetWidth(), grid.GetHeight()
	if w < 10 || h < 10 {
		return
	}

	// placements are inside the grid for any size >= 10x10
	_ = grid.AddGlider(1, 1)
	_ = grid.AddBlinker(w/2, h/2)
	_ = grid.AddBlock(w-4, h-4)
	if w >= 30 {
		_ = grid.AddBlinker(3*w/4, 3*h/4)
	}
}

// updateGameState records the generation and returns status information
func (g *game) updateGameState(grid *model.Grid, generation int) (int, float64, string, bool) {
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	now := time.Now()
	g.stats.Update(generation, livingCells, now.Sub(g.lastStepTime))
	g.lastStepTime = now
	if err := g.stats.SampleMemory(); err != nil {
		slog.Debug("memory sample failed", "err", err)
	}

	isStagnant := g.history.IsStagnant(grid)
	g.history.Record(grid)

	status := "Active"
	if isStagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return livingCells, density, status, isStagnant
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus(generation, livingCells int, density float64, status string) {
	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		generation, livingCells, density, status)
	fmt.Printf("Total generations: %d | Active cells: %d\n",
		g.stats.TotalGenerations, g.stats.ActiveCells)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | RSS: %.1f MiB | Runtime: %.1fs\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation,
		float64(g.stats.MemoryUsage)/(1<<20), time.Since(g.stats.StartTime).Seconds())

	if generation > g.lastRestartGen {
		fmt.Printf("Generations since restart: %d\n", generation-g.lastRestartGen)
	}
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the grid in place. It runs inside the step callback, after the
// apply phase has finished, so no counting pass observes the new cells.
func (g *game) restartGame(generation int, reason string) {
	grid := g.scheduler.Grid()
	grid.Clear()
	grid.Populate(g.rng)
	addInterestingPatterns(grid)
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = generation

	slog.Info("restarting", "reason", reason, "generation", generation, "living", grid.CountLivingCells())
}
