package genetic

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sourcegraph/conc/pool"

	"github.com/jmylchreest/ansigen/internal/constraint"
)

// State is the phase the engine is in.
type State int

// Engine states, in the order a run moves through them.
const (
	StateIdle State = iota
	StateInitializing
	StateEvaluating
	StateSelecting
	StateReproducing
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateEvaluating:
		return "evaluating"
	case StateSelecting:
		return "selecting"
	case StateReproducing:
		return "reproducing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Best is the best palette seen over the whole run.
type Best struct {
	Palette    Palette
	Fitness    float64
	Generation int
}

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	Generation   int           `json:"generation"`
	Best         float64       `json:"best"`
	Mean         float64       `json:"mean"`
	Worst        float64       `json:"worst"`
	BestEver     float64       `json:"best_ever"`
	Improved     bool          `json:"improved"`
	Stagnation   int           `json:"stagnation"`
	MutationRate float64       `json:"mutation_rate"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// Result is the outcome of a run.
type Result struct {
	Best        Best
	Generations int
	History     []GenerationStats
	Seed        uint64
	Elapsed     time.Duration
}

// Observer is called after every evaluated generation, from the goroutine running Run.
type Observer func(GenerationStats)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers a per-generation callback.
func WithObserver(fn Observer) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// Engine evolves a population of palettes against a constraint model.
type Engine struct {
	model     *constraint.Model
	config    Config
	evaluator *Evaluator
	logger    hclog.Logger
	observer  Observer

	mu    sync.RWMutex
	state State
	best  Best

	current *Population
	next    *Population
	rngs    []*rand.Rand
	elites  []int

	mutationRate float64
	stagnation   int
	history      []GenerationStats
}

// NewEngine validates the model and configuration and returns an engine ready to Run.
func NewEngine(model *constraint.Model, config Config, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, fmt.Errorf("constraint model is required")
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraint model %q: %w", model.Name, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		model:     model,
		config:    config,
		evaluator: NewEvaluator(model),
		logger:    hclog.NewNullLogger(),
		best:      Best{Fitness: math.Inf(-1), Generation: -1},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluator returns the evaluator used by the engine.
func (e *Engine) Evaluator() *Evaluator {
	return e.evaluator
}

// State returns the current phase.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Best returns a copy of the best-ever record.
func (e *Engine) Best() Best {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.best
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Run executes the configured number of generations. Cancelling ctx stops the run between
// generations; the best-ever record found so far is returned together with the context error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.State() != StateIdle {
		return nil, fmt.Errorf("engine already run (state %s)", e.State())
	}

	start := time.Now()
	cfg := e.config
	n := cfg.PopulationSize
	k := cfg.EliteCount()

	e.setState(StateInitializing)
	e.logger.Info("initializing population",
		"model", e.model.Name, "space", e.model.Space.String(),
		"population", n, "generations", cfg.Generations,
		"elites", k, "workers", cfg.workers(), "seed", cfg.Seed)

	e.current = NewPopulation(n)
	e.next = NewPopulation(n)
	e.rngs = make([]*rand.Rand, n)
	e.elites = make([]int, 0, k)
	e.mutationRate = cfg.MutationRate
	e.history = make([]GenerationStats, 0, cfg.Generations)

	e.parallel(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			e.rngs[i] = rand.New(rand.NewPCG(cfg.Seed, uint64(i))) // #nosec G404 - reproducible search, not security
			randomPalette(e.model, e.rngs[i], &e.current.Members[i])
		}
	})

	generations := 0
	for gen := range cfg.Generations {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("run cancelled", "generation", gen, "best", e.Best().Fitness)
			return e.finish(start, generations), err
		}

		e.setState(StateEvaluating)
		e.evaluate()
		stats := e.record(gen, start)
		generations++

		if e.observer != nil {
			e.observer(stats)
		}
		if cfg.LogEvery > 0 && (gen%cfg.LogEvery == 0 || gen == cfg.Generations-1) {
			e.logger.Info("generation",
				"gen", gen, "best", round2(stats.Best), "mean", round2(stats.Mean),
				"best_ever", round2(stats.BestEver), "mutation_rate", round2(stats.MutationRate))
		}

		if gen == cfg.Generations-1 {
			break
		}

		e.setState(StateSelecting)
		e.elites = selectElites(e.current.Fitness, k, e.elites)

		e.setState(StateReproducing)
		e.reproduce()
		e.current, e.next = e.next, e.current
	}

	result := e.finish(start, generations)
	e.logger.Info("search complete",
		"best", round2(result.Best.Fitness), "found_at", result.Best.Generation,
		"elapsed", result.Elapsed.Round(time.Millisecond))
	return result, nil
}

func (e *Engine) finish(start time.Time, generations int) *Result {
	e.setState(StateTerminated)
	return &Result{
		Best:        e.Best(),
		Generations: generations,
		History:     e.history,
		Seed:        e.config.Seed,
		Elapsed:     time.Since(start),
	}
}

// parallel splits [0, n) into contiguous chunks, one per worker, and waits for all of them.
func (e *Engine) parallel(n int, fn func(lo, hi int)) {
	workers := min(e.config.workers(), n)
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	p := pool.New().WithMaxGoroutines(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		p.Go(func() {
			fn(lo, hi)
		})
	}
	p.Wait()
}

func (e *Engine) evaluate() {
	pop := e.current
	e.parallel(pop.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pop.Fitness[i] = e.evaluator.Evaluate(&pop.Members[i])
		}
	})
}

// reproduce builds the next generation: elites first in rank order, then children of two
// parents drawn uniformly from the elite set.
func (e *Engine) reproduce() {
	cur, next := e.current, e.next
	elites := e.elites
	k := len(elites)
	rate := e.mutationRate

	e.parallel(next.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i < k {
				next.Members[i] = cur.Members[elites[i]]
				continue
			}
			rng := e.rngs[i]
			a := &cur.Members[elites[rng.IntN(k)]]
			b := &cur.Members[elites[rng.IntN(k)]]
			child := &next.Members[i]
			crossover(e.model, a, b, rng, child)
			mutate(e.model, child, rate, rng)
			repair(e.model, child)
		}
	})
}

// record reduces the evaluated generation, updates the best-ever record and adapts the mutation
// rate.
func (e *Engine) record(gen int, start time.Time) GenerationStats {
	pop := e.current
	bestIdx := 0
	worst := math.Inf(1)
	var sum float64
	for i, f := range pop.Fitness {
		if f > pop.Fitness[bestIdx] {
			bestIdx = i
		}
		worst = math.Min(worst, f)
		sum += f
	}
	genBest := pop.Fitness[bestIdx]

	e.mu.Lock()
	improved := genBest > e.best.Fitness
	if improved {
		e.best = Best{Palette: pop.Members[bestIdx], Fitness: genBest, Generation: gen}
	}
	bestEver := e.best.Fitness
	e.mu.Unlock()

	if improved {
		e.stagnation = 0
		e.mutationRate = e.config.MutationRate
	} else {
		e.stagnation++
		if e.stagnation%e.config.StagnationThreshold == 0 {
			boosted := math.Min(e.mutationRate*e.config.MutationBoost, e.config.MutationCeiling)
			if boosted != e.mutationRate {
				e.logger.Debug("boosting mutation rate",
					"generation", gen, "stagnation", e.stagnation,
					"from", round2(e.mutationRate), "to", round2(boosted))
			}
			e.mutationRate = boosted
		}
	}

	stats := GenerationStats{
		Generation:   gen,
		Best:         genBest,
		Mean:         sum / float64(pop.Len()),
		Worst:        worst,
		BestEver:     bestEver,
		Improved:     improved,
		Stagnation:   e.stagnation,
		MutationRate: e.mutationRate,
		Elapsed:      time.Since(start),
	}
	e.history = append(e.history, stats)
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
