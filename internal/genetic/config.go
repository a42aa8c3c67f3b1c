package genetic

import (
	"errors"
	"fmt"
	"runtime"
)

// Config holds the evolution parameters.
type Config struct {
	// PopulationSize is the number of palettes per generation.
	PopulationSize int `json:"population_size"`
	// Generations is the number of evaluate/reproduce cycles.
	Generations int `json:"generations"`
	// MutationRate is the per-component probability of Gaussian mutation.
	MutationRate float64 `json:"mutation_rate"`
	// EliteRatio is the fraction of the population kept unchanged and used as parents.
	EliteRatio float64 `json:"elite_ratio"`
	// Seed fixes every random stream of the run.
	Seed uint64 `json:"seed"`
	// Workers bounds the goroutines used per phase (0 uses GOMAXPROCS).
	Workers int `json:"workers"`

	// StagnationThreshold is the number of generations without improvement before the
	// mutation rate is boosted, and again at every further multiple.
	StagnationThreshold int `json:"stagnation_threshold"`
	// MutationBoost multiplies the mutation rate on each boost.
	MutationBoost float64 `json:"mutation_boost"`
	// MutationCeiling caps the boosted mutation rate.
	MutationCeiling float64 `json:"mutation_ceiling"`

	// LogEvery logs progress every n generations (0 disables periodic progress).
	LogEvery int `json:"-"`
}

// DefaultConfig returns the default search parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize:      200000,
		Generations:         5000,
		MutationRate:        0.15,
		EliteRatio:          0.1,
		StagnationThreshold: 100,
		MutationBoost:       1.5,
		MutationCeiling:     0.5,
		LogEvery:            100,
	}
}

// Validate reports every invalid parameter.
func (c Config) Validate() error {
	var errs []error
	if c.PopulationSize < 10 {
		errs = append(errs, fmt.Errorf("population size must be at least 10, got %d", c.PopulationSize))
	}
	if c.Generations < 1 {
		errs = append(errs, fmt.Errorf("generations must be at least 1, got %d", c.Generations))
	}
	if c.MutationRate <= 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate must be in (0, 1], got %g", c.MutationRate))
	}
	if c.EliteRatio <= 0 || c.EliteRatio >= 1 {
		errs = append(errs, fmt.Errorf("elite ratio must be in (0, 1), got %g", c.EliteRatio))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.StagnationThreshold < 1 {
		errs = append(errs, fmt.Errorf("stagnation threshold must be at least 1, got %d", c.StagnationThreshold))
	}
	if c.MutationBoost < 1 {
		errs = append(errs, fmt.Errorf("mutation boost must be at least 1, got %g", c.MutationBoost))
	}
	if c.MutationCeiling < c.MutationRate || c.MutationCeiling > 1 {
		errs = append(errs, fmt.Errorf("mutation ceiling must be in [%g, 1], got %g", c.MutationRate, c.MutationCeiling))
	}
	if c.LogEvery < 0 {
		errs = append(errs, errors.New("log interval must not be negative"))
	}
	return errors.Join(errs...)
}

// EliteCount is max(1, floor(PopulationSize * EliteRatio)).
func (c Config) EliteCount() int {
	return max(1, int(float64(c.PopulationSize)*c.EliteRatio))
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
