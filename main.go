package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-life/utils"
)

// tickRate bounds how often the driver polls the scheduler
const tickRate = 10 * time.Millisecond

func main() {
	configPath := flag.String("config", "config.json", "path to a JSON config file")
	fileConfig := utils.DefaultConfig()
	fileConfig.Bind(flag.CommandLine)
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		slog.Warn("using default configuration", "err", err)
		config = utils.DefaultConfig()
	}
	applyFlagOverrides(&config, fileConfig)

	if err = config.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	level, _ := config.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	g, err := initializeGame(config)
	if err != nil {
		slog.Error("failed to initialize", "err", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(max(time.Millisecond, min(tickRate, config.StepInterval())))
	defer ticker.Stop()

	last := time.Now()
	for !g.done {
		select {
		case <-sigChan:
			slog.Info("shutting down",
				"generations", g.scheduler.Generation(),
				"seconds", time.Since(g.stats.StartTime).Seconds(),
				"avg_population", g.stats.AveragePopulation)
			return
		case now := <-ticker.C:
			if _, err = g.scheduler.Advance(now.Sub(last)); err != nil {
				slog.Error("step failed", "err", err)
				os.Exit(1)
			}
			last = now
		}
	}
}

// applyFlagOverrides copies every flag the user actually set onto config
func applyFlagOverrides(config *utils.Config, flags utils.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = flags.Width
		case "height":
			config.Height = flags.Height
		case "populated":
			config.StartPopulated = flags.StartPopulated
		case "run":
			config.StartRunning = flags.StartRunning
		case "interval":
			config.StepIntervalSeconds = flags.StepIntervalSeconds
		case "seed":
			config.Seed = flags.Seed
		case "pattern":
			config.Pattern = flags.Pattern
		case "max-generations":
			config.MaxGenerations = flags.MaxGenerations
		}
	})
}
