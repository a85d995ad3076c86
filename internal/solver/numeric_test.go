package solver_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eqsolve/internal/solver"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

func newNewton() *solver.Newton {
	return solver.NewNewton("x", 1e-9, 1e-6, 100)
}

func TestNewton_CubeRootOfTwo(t *testing.T) {
	out, err := newNewton().SolveNumeric(context.Background(), normalize(t, "x**3 = 2"), 1.0)
	require.NoError(t, err)

	assert.True(t, out.Converged)
	assert.True(t, out.Accepted)
	assert.InDelta(t, math.Cbrt(2), out.Root, 1e-6)
	assert.Less(t, math.Abs(out.Residual), 1e-6)
	assert.Greater(t, out.Iterations, 0)
}

func TestNewton_Quadratic(t *testing.T) {
	out, err := newNewton().SolveNumeric(context.Background(), normalize(t, "x**2 = 2"), 1.0)
	require.NoError(t, err)

	assert.True(t, out.Accepted)
	assert.InDelta(t, math.Sqrt2, out.Root, 1e-9)
}

func TestNewton_Transcendental(t *testing.T) {
	out, err := newNewton().SolveNumeric(context.Background(), normalize(t, "exp(x) = 5"), 1.0)
	require.NoError(t, err)

	assert.True(t, out.Accepted)
	assert.InDelta(t, math.Log(5), out.Root, 1e-9)
}

func TestNewton_NoRealRoot(t *testing.T) {
	out, err := newNewton().SolveNumeric(context.Background(), normalize(t, "exp(x) = -1"), 1.0)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, serrors.ErrNoConvergence)
}

func TestNewton_SecondUnknownRejected(t *testing.T) {
	expr := symath.Add(symath.NewVar("x"), symath.NewVar("y"))

	out, err := newNewton().SolveNumeric(context.Background(), expr, 1.0)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, serrors.ErrEvaluation)
}

func TestNewton_UnevaluableAtGuess(t *testing.T) {
	// ln(-x) is undefined at the initial guess 1.
	expr := symath.Ln(symath.Neg(symath.NewVar("x")))

	out, err := newNewton().SolveNumeric(context.Background(), expr, 1.0)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, serrors.ErrEvaluation)
}

func TestNewton_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := newNewton().SolveNumeric(ctx, normalize(t, "x**3 = 2"), 1.0)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, serrors.ErrNoConvergence)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewton_IterationCapRespected(t *testing.T) {
	tight := solver.NewNewton("x", 1e-9, 1e-6, 1)

	_, err := tight.SolveNumeric(context.Background(), normalize(t, "x**3 = 2"), 100.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrNoConvergence)
}
