// Package history records a search run (parameters, per-generation statistics and the final
// palette) as JSON, optionally compressed by file extension.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmylchreest/ansigen/internal/colour"
	"github.com/jmylchreest/ansigen/internal/compression"
	"github.com/jmylchreest/ansigen/internal/genetic"
)

// Version is the record format version.
const Version = 1

// Pair is the final state of one contrast constraint.
type Pair struct {
	FG     int     `json:"fg"`
	BG     int     `json:"bg"`
	Metric string  `json:"metric"`
	Min    float64 `json:"min"`
	Value  float64 `json:"value"`
	Met    bool    `json:"met"`
}

// Record is one search run.
type Record struct {
	Version   int       `json:"version"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Model  string         `json:"model"`
	Space  string         `json:"space"`
	Metric string         `json:"metric"`
	Config genetic.Config `json:"config"`

	Generations int           `json:"generations"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Cancelled   bool          `json:"cancelled,omitempty"`

	BestFitness float64  `json:"best_fitness"`
	FoundAt     int      `json:"found_at"`
	Palette     []string `json:"palette"`
	Passed      int      `json:"passed"`
	Failed      int      `json:"failed"`
	Pairs       []Pair   `json:"pairs"`

	Stats []genetic.GenerationStats `json:"stats"`
}

// New builds a record from a finished run and the breakdown of its best palette.
func New(name string, eng *genetic.Engine, cfg genetic.Config, res *genetic.Result, b *genetic.Breakdown, now time.Time) *Record {
	m := eng.Evaluator().Model()
	colours := res.Best.Palette.RGB(m)

	r := &Record{
		Version:     Version,
		Name:        name,
		CreatedAt:   now.UTC(),
		Model:       m.Name,
		Space:       m.Space.String(),
		Metric:      m.Metric.String(),
		Config:      cfg,
		Generations: res.Generations,
		Elapsed:     res.Elapsed,
		Cancelled:   res.Generations < cfg.Generations,
		BestFitness: res.Best.Fitness,
		FoundAt:     res.Best.Generation,
		Palette:     make([]string, 0, colour.PaletteSize),
		Passed:      b.Passed(),
		Failed:      b.Failed(),
		Pairs:       make([]Pair, 0, len(b.Pairs)),
		Stats:       res.History,
	}
	r.Config.Seed = res.Seed
	for _, c := range colours {
		r.Palette = append(r.Palette, c.Hex())
	}
	for _, p := range b.Pairs {
		r.Pairs = append(r.Pairs, Pair{
			FG:     p.Pair.FG,
			BG:     p.Pair.BG,
			Metric: p.Metric.String(),
			Min:    p.Pair.Min,
			Value:  p.Value,
			Met:    p.Met,
		})
	}
	return r
}

// Colours parses the recorded palette.
func (r *Record) Colours() ([colour.PaletteSize]colour.RGB, error) {
	var out [colour.PaletteSize]colour.RGB
	if len(r.Palette) != colour.PaletteSize {
		return out, fmt.Errorf("record has %d colours, expected %d", len(r.Palette), colour.PaletteSize)
	}
	for i, hex := range r.Palette {
		c, err := colour.ParseHex(hex)
		if err != nil {
			return out, fmt.Errorf("palette %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Save writes the record to path. A .gz or .xz extension compresses the output.
func Save(path string, r *Record) (err error) {
	w, err := compression.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close history: %w", cerr)
		}
	}()

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return nil
}

// Load reads a record written by Save.
func Load(path string) (*Record, error) {
	rc, err := compression.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r Record
	if err := json.NewDecoder(rc).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", path, err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("unsupported history version %d in %s", r.Version, path)
	}
	return &r, nil
}
