package quad

import (
	"container/heap"
	"math"

	"github.com/rs/zerolog"
	gquad "gonum.org/v1/gonum/integrate/quad"
)

const (
	DefaultAbsTol = 1e-10
	DefaultRelTol = 1e-7
	DefaultLimit  = 1000
	DefaultOrder  = 15
)

// Result is the outcome of an adaptive integration.
type Result struct {
	Value     float64
	AbsErr    float64
	Intervals int
	Evals     int
}

type Option func(*WorkSpace)

// WithTolerance sets the absolute and relative error goals.
func WithTolerance(abs, rel float64) Option {
	return func(w *WorkSpace) {
		if abs >= 0 {
			w.absTol = abs
		}
		if rel >= 0 {
			w.relTol = rel
		}
	}
}

// WithLimit caps the number of subintervals.
func WithLimit(n int) Option {
	return func(w *WorkSpace) {
		if n > 0 {
			w.limit = n
		}
	}
}

// WithOrder sets the number of Gauss-Legendre nodes of the coarse panel rule.
// The fine rule uses twice as many.
func WithOrder(n int) Option {
	return func(w *WorkSpace) {
		if n > 1 {
			w.order = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(w *WorkSpace) {
		w.log = l
	}
}

type panel struct {
	a, b     float64
	est, err float64
}

type panelHeap []panel

func (h panelHeap) Len() int            { return len(h) }
func (h panelHeap) Less(i, j int) bool  { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x interface{}) { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// WorkSpace is the scratch space of the adaptive integrator: the panel heap
// and the cached Gauss-Legendre nodes. It is reused between calls.
type WorkSpace struct {
	absTol float64
	relTol float64
	limit  int
	order  int
	log    zerolog.Logger

	panels panelHeap

	coarseX, coarseW []float64
	fineX, fineW     []float64
}

func NewWorkSpace(opts ...Option) *WorkSpace {
	w := &WorkSpace{
		absTol: DefaultAbsTol,
		relTol: DefaultRelTol,
		limit:  DefaultLimit,
		order:  DefaultOrder,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Clone returns a workspace with the same settings and fresh scratch buffers.
func (w *WorkSpace) Clone() *WorkSpace {
	if w == nil {
		return NewWorkSpace()
	}
	return &WorkSpace{
		absTol: w.absTol,
		relTol: w.relTol,
		limit:  w.limit,
		order:  w.order,
		log:    w.log,
	}
}

func (w *WorkSpace) Tolerance() (abs, rel float64) { return w.absTol, w.relTol }
func (w *WorkSpace) Limit() int                    { return w.limit }

func (w *WorkSpace) ensureNodes() {
	if len(w.coarseX) == w.order {
		return
	}
	w.coarseX = make([]float64, w.order)
	w.coarseW = make([]float64, w.order)
	w.fineX = make([]float64, 2*w.order)
	w.fineW = make([]float64, 2*w.order)
	gquad.Legendre{}.FixedLocations(w.coarseX, w.coarseW, -1, 1)
	gquad.Legendre{}.FixedLocations(w.fineX, w.fineW, -1, 1)
}

// rule applies the coarse and fine rules on [a,b]. It returns false if the
// integrand produced a non-finite value.
func (w *WorkSpace) rule(f func(float64) float64, a, b float64) (fine, coarse float64, ok bool) {
	c := 0.5 * (a + b)
	h := 0.5 * (b - a)
	for i, t := range w.coarseX {
		v := f(c + h*t)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, false
		}
		coarse += w.coarseW[i] * v
	}
	for i, t := range w.fineX {
		v := f(c + h*t)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, false
		}
		fine += w.fineW[i] * v
	}
	return fine * h, coarse * h, true
}

// Integrate computes the integral of f over [a, b] by globally adaptive
// bisection. A reversed interval yields the negated integral.
func (w *WorkSpace) Integrate(f func(float64) float64, a, b float64) (Result, error) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return Result{}, ErrInvalidInterval
	}
	if a == b {
		return Result{}, nil
	}
	if a > b {
		res, err := w.Integrate(f, b, a)
		res.Value = -res.Value
		if qe, ok := err.(*Error); ok {
			qe.Estimate = -qe.Estimate
		}
		return res, err
	}

	w.ensureNodes()
	evalsPerPanel := 3 * w.order

	fine, coarse, ok := w.rule(f, a, b)
	if !ok {
		return Result{}, w.fail(CodeBadIntegrand, "non-finite integrand value", a, b, 0, 0)
	}

	w.panels = w.panels[:0]
	heap.Push(&w.panels, panel{a: a, b: b, est: fine, err: math.Abs(fine - coarse)})
	total := fine
	totalErr := math.Abs(fine - coarse)
	evals := evalsPerPanel

	for {
		tol := math.Max(w.absTol, w.relTol*math.Abs(total))
		if totalErr <= tol || totalErr <= 50*epsilon*math.Abs(total) {
			break
		}
		if w.panels.Len() >= w.limit {
			w.log.Debug().
				Float64("low", a).Float64("high", b).
				Float64("estimate", total).Float64("abserr", totalErr).
				Int("intervals", w.panels.Len()).
				Msg("quadrature subinterval limit reached")
			return Result{Value: total, AbsErr: totalErr, Intervals: w.panels.Len(), Evals: evals},
				w.fail(CodeMaxIterations, "maximum number of subintervals reached", a, b, total, totalErr)
		}

		worst := heap.Pop(&w.panels).(panel)
		mid := 0.5 * (worst.a + worst.b)
		if mid <= worst.a || mid >= worst.b {
			return Result{Value: total, AbsErr: totalErr, Intervals: w.panels.Len() + 1, Evals: evals},
				w.fail(CodeRoundoff, "subinterval too small to split", a, b, total, totalErr)
		}

		f1, c1, ok1 := w.rule(f, worst.a, mid)
		f2, c2, ok2 := w.rule(f, mid, worst.b)
		evals += 2 * evalsPerPanel
		if !ok1 || !ok2 {
			return Result{}, w.fail(CodeBadIntegrand, "non-finite integrand value", a, b, total, totalErr)
		}

		left := panel{a: worst.a, b: mid, est: f1, err: math.Abs(f1 - c1)}
		right := panel{a: mid, b: worst.b, est: f2, err: math.Abs(f2 - c2)}
		heap.Push(&w.panels, left)
		heap.Push(&w.panels, right)

		total += left.est + right.est - worst.est
		totalErr += left.err + right.err - worst.err
	}

	// re-sum to drop the accumulated cancellation of the running totals
	total, totalErr = 0, 0
	for _, p := range w.panels {
		total += p.est
		totalErr += p.err
	}

	return Result{Value: total, AbsErr: totalErr, Intervals: w.panels.Len(), Evals: evals}, nil
}

// Value is a shorthand for Integrate that drops the diagnostics.
func (w *WorkSpace) Value(f func(float64) float64, a, b float64) (float64, error) {
	res, err := w.Integrate(f, a, b)
	return res.Value, err
}

func (w *WorkSpace) fail(code int, reason string, a, b, est, abserr float64) error {
	return &Error{
		Code:     code,
		Reason:   reason,
		Low:      a,
		High:     b,
		Estimate: est,
		AbsErr:   abserr,
		Wrapped:  ErrNoConvergence,
	}
}

const epsilon = 2.220446049250313e-16
