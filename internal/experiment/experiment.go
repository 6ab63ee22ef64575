package experiment

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/dalitz/internal/models"
)

type Config struct {
	Points int
	// Workers > 1 samples the projections concurrently, each worker on its
	// own clone of the model.
	Workers int
	// Optional sub-ranges; zero values select the model box.
	XMin, XMax float64
	YMin, YMax float64
}

// Result holds the integral over the selected rectangle and the two
// projections sampled on uniform grids.
type Result struct {
	Integral float64
	X        []float64
	ProjX    []float64 // ∫dy f(x, y) at each X
	Y        []float64
	ProjY    []float64 // ∫dx f(x, y) at each Y
}

type Experiment struct {
	cfg   Config
	model models.Model
	log   zerolog.Logger
}

func New(m models.Model, cfg Config, log zerolog.Logger) *Experiment {
	if cfg.XMin == 0 && cfg.XMax == 0 {
		cfg.XMin, cfg.XMax = m.XMin(), m.XMax()
	}
	if cfg.YMin == 0 && cfg.YMax == 0 {
		cfg.YMin, cfg.YMax = m.YMin(), m.YMax()
	}
	return &Experiment{cfg: cfg, model: m, log: log}
}

func (e *Experiment) Config() Config { return e.cfg }

// Model returns the model being sampled.
func (e *Experiment) Model() models.Model { return e.model }

// Run computes the integral and both projections. It stops between samples
// when ctx is cancelled.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.cfg.Points < 2 {
		return nil, fmt.Errorf("experiment: need at least 2 points, got %d", e.cfg.Points)
	}
	c := e.cfg

	total, err := e.model.Integral(c.XMin, c.XMax, c.YMin, c.YMax)
	if err != nil {
		return nil, fmt.Errorf("integral: %w", err)
	}

	res := &Result{
		Integral: total,
		X:        floats.Span(make([]float64, c.Points), c.XMin, c.XMax),
		ProjX:    make([]float64, c.Points),
		Y:        floats.Span(make([]float64, c.Points), c.YMin, c.YMax),
		ProjY:    make([]float64, c.Points),
	}

	workers := max(1, min(e.cfg.Workers, c.Points))
	clones := make([]models.Model, workers)
	clones[0] = e.model
	for w := 1; w < workers; w++ {
		clones[w] = e.model.Clone()
	}

	err = parallelFor(c.Points, workers, func(w, start, end int) error {
		m := clones[w]
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			var err error
			if res.ProjX[i], err = m.IntegrateY(res.X[i], c.YMin, c.YMax); err != nil {
				return fmt.Errorf("projection at x=%g: %w", res.X[i], err)
			}
			if res.ProjY[i], err = m.IntegrateX(res.Y[i], c.XMin, c.XMax); err != nil {
				return fmt.Errorf("projection at y=%g: %w", res.Y[i], err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Debug().
		Float64("integral", total).
		Int("points", c.Points).
		Int("workers", workers).
		Msg("projections computed")
	return res, nil
}

// parallelFor splits [0, n) into one contiguous chunk per worker and
// returns the first error in worker order.
func parallelFor(n, workers int, fn func(w, start, end int) error) error {
	if workers <= 1 {
		return fn(0, 0, n)
	}

	chunk := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := min(w*chunk, n)
		end := min(start+chunk, n)
		go func(w, s, e int) {
			defer wg.Done()
			errs[w] = fn(w, s, e)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Trapezoid integrates sampled values on a uniform grid.
func Trapezoid(xs, ys []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	h := xs[1] - xs[0]
	return h * (floats.Sum(ys) - 0.5*(ys[0]+ys[len(ys)-1]))
}
