package utils

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	MemoryUsage          uint64 // resident set size in bytes
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ActiveCells          int

	proc *process.Process
}

func NewStats() *Stats {
	s := &Stats{StartTime: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	}
	return s
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// SampleMemory refreshes MemoryUsage from the operating system
func (s *Stats) SampleMemory() error {
	if s.proc == nil {
		return errors.New("[SampleMemory] process handle unavailable")
	}
	info, err := s.proc.MemoryInfo()
	if err != nil {
		return errors.Wrap(err, "[SampleMemory] failed to read memory info")
	}
	s.MemoryUsage = info.RSS
	return nil
}
