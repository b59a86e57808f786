package utils

import (
	"fmt"
	"time"
)

// populationSmoothing weighs the newest sample in AveragePopulation
const populationSmoothing = 0.1

// Stats tracks population and speed of a running simulation
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	PeakPopulation       int
	LastPopulation       int
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time

	samples int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one generation. frame is the wall time the generation
// took; non-positive values leave the rate unchanged.
func (s *Stats) Update(generation int, population int, frame time.Duration) {
	s.TotalGenerations = generation
	s.LastPopulation = population
	s.PeakPopulation = max(s.PeakPopulation, population)
	if frame > 0 {
		s.GenerationsPerSecond = 1.0 / frame.Seconds()
	}

	// Exponential moving average, seeded by the first sample
	if s.samples == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = s.AveragePopulation*(1-populationSmoothing) + float64(population)*populationSmoothing
	}
	s.samples++
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

// Summary is a one-line report of the run so far
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d generations in %.1fs | %.1f gen/sec | %.1f avg population | %d peak | %d restarts",
		s.TotalGenerations, s.Runtime().Seconds(), s.GenerationsPerSecond,
		s.AveragePopulation, s.PeakPopulation, s.Restarts)
}
