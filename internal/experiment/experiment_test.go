package experiment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/dalitz/internal/models"
)

func newModel(t *testing.T) models.Model {
	t.Helper()
	m, err := models.NewExpo2DPol(0, 2, 0, 1, 1, 1, -0.5, 0.3)
	require.NoError(t, err)
	require.NoError(t, m.SetPar(0, 0.4))
	return m
}

func TestRun(t *testing.T) {
	m := newModel(t)
	e := New(m, Config{Points: 401}, zerolog.Nop())
	res, err := e.Run(context.Background())
	require.NoError(t, err)

	want, err := models.FullIntegral(m)
	require.NoError(t, err)
	assert.Equal(t, want, res.Integral)

	require.Len(t, res.X, 401)
	assert.Equal(t, 0.0, res.X[0])
	assert.Equal(t, 2.0, res.X[400])
	assert.InEpsilon(t, want, Trapezoid(res.X, res.ProjX), 1e-5)
	assert.InEpsilon(t, want, Trapezoid(res.Y, res.ProjY), 1e-5)
}

func TestRunSubRange(t *testing.T) {
	m := newModel(t)
	e := New(m, Config{Points: 11, XMin: 0.5, XMax: 1.5}, zerolog.Nop())
	assert.Equal(t, 0.0, e.Config().YMin)
	assert.Equal(t, 1.0, e.Config().YMax)

	res, err := e.Run(context.Background())
	require.NoError(t, err)
	want, err := m.Integral(0.5, 1.5, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, want, res.Integral)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(newModel(t), Config{Points: 5}, zerolog.Nop()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTooFewPoints(t *testing.T) {
	_, err := New(newModel(t), Config{Points: 1}, zerolog.Nop()).Run(context.Background())
	assert.Error(t, err)
}

func TestRunWorkersMatchSequential(t *testing.T) {
	m := newModel(t)
	seq, err := New(m, Config{Points: 23}, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 50} {
		par, err := New(m, Config{Points: 23, Workers: workers}, zerolog.Nop()).Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestParallelForChunks(t *testing.T) {
	seen := make([]int, 10)
	err := parallelFor(10, 3, func(w, start, end int) error {
		for i := start; i < end; i++ {
			seen[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, n := range seen {
		assert.Equal(t, 1, n, "index %d", i)
	}
}
