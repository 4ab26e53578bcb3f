// Package bench runs independent engine handles side by side on headless
// hosts and collects their frame metrics.
package bench

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/backdrop/internal/config"
	"github.com/san-kum/backdrop/internal/draw"
	"github.com/san-kum/backdrop/internal/engine"
	"github.com/san-kum/backdrop/internal/host"
	"github.com/san-kum/backdrop/internal/metrics"
	"github.com/san-kum/backdrop/internal/storage"
)

// Result is the outcome of one instance.
type Result struct {
	Instance  int
	Seed      int64
	Frames    int
	DrawCalls int
	Metrics   map[string]float64
	Samples   []storage.Sample
}

type Ensemble struct {
	cfg       config.Config
	numRuns   int
	seedStart int64
	width     float64
	height    float64
	log       *slog.Logger
}

func NewEnsemble(cfg config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		cfg:       cfg,
		numRuns:   numRuns,
		seedStart: seedStart,
		width:     1280,
		height:    720,
		log:       discard(),
	}
}

// WithSize sets the surface extent of every instance.
func (e *Ensemble) WithSize(w, h float64) *Ensemble {
	e.width, e.height = w, h
	return e
}

func (e *Ensemble) WithLogger(l *slog.Logger) *Ensemble {
	e.log = l
	return e
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run renders frames frames on every instance concurrently.
func (e *Ensemble) Run(ctx context.Context, frames int) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.runOne(ctx, idx, frames)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Ensemble) runOne(ctx context.Context, idx, frames int) (*Result, error) {
	seed := e.seedStart + int64(idx)
	rec := draw.NewRecorder(e.width, e.height)
	m := host.NewManual(rec, time.Second/time.Duration(e.cfg.FPS))

	budget := 1000 / float64(e.cfg.FPS)
	collector := metrics.NewCollector(frames, metrics.Default(budget)...)
	res := &Result{Instance: idx, Seed: seed, Samples: make([]storage.Sample, 0, frames)}

	observer := engine.ObserverFunc(func(s engine.FrameStats) {
		collector.ObserveFrame(s)
		res.Samples = append(res.Samples, storage.Sample{
			Instance: idx,
			Frame:    int(s.Frame),
			RenderMS: float64(s.Render) / float64(time.Millisecond),
		})
	})

	h, err := engine.Create(m, e.cfg,
		engine.WithRand(rand.New(rand.NewSource(seed))),
		engine.WithObserver(observer),
		engine.WithLogger(e.log.With("instance", idx)),
	)
	if err != nil {
		return nil, err
	}
	defer h.Destroy()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if m.Step() == 0 {
			break
		}
	}

	res.Frames = int(h.Frames())
	res.DrawCalls = rec.DrawCalls()
	res.Metrics = collector.Values()
	return res, nil
}

// Aggregate averages each metric across results; maxima take the maximum.
func Aggregate(results []*Result) map[string]float64 {
	out := make(map[string]float64)
	if len(results) == 0 {
		return out
	}
	for _, r := range results {
		for k, v := range r.Metrics {
			if k == "frame_max_ms" {
				if v > out[k] {
					out[k] = v
				}
				continue
			}
			out[k] += v / float64(len(results))
		}
	}
	return out
}

// Samples flattens every instance's samples in instance order.
func Samples(results []*Result) []storage.Sample {
	var out []storage.Sample
	for _, r := range results {
		out = append(out, r.Samples...)
	}
	return out
}
