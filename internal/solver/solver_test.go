package solver_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eqsolve/internal/solver"
	mocksolver "eqsolve/internal/solver/mock"
	"eqsolve/pkg/domain"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

func testOptions() solver.Options {
	return solver.Options{
		Unknown:         "x",
		InitialGuess:    1.0,
		Tolerance:       1e-9,
		AcceptTolerance: 1e-6,
		MaxIterations:   100,
	}
}

func newTestPipeline(t *testing.T, opts solver.Options) (*mocksolver.MockSymbolicSolver, *mocksolver.MockNumericSolver, *solver.Pipeline) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sym := mocksolver.NewMockSymbolicSolver(ctrl)
	num := mocksolver.NewMockNumericSolver(ctrl)

	return sym, num, solver.New(sym, num, opts)
}

func TestPipeline_NormalizationFailureShortCircuits(t *testing.T) {
	_, _, p := newTestPipeline(t, testOptions())

	rep := p.Run(context.Background(), "   ")

	require.Error(t, rep.NormalizeErr)
	assert.ErrorIs(t, rep.NormalizeErr, serrors.ErrEmptyInput)
	assert.Nil(t, rep.Normalized)
	assert.Nil(t, rep.Solution)
	assert.Nil(t, rep.Numeric)
	assert.False(t, rep.NumericSkipped)
}

func TestPipeline_ParseFailureShortCircuits(t *testing.T) {
	_, _, p := newTestPipeline(t, testOptions())

	rep := p.Run(context.Background(), "x^2 = 4")

	assert.ErrorIs(t, rep.NormalizeErr, serrors.ErrParse)
	assert.Nil(t, rep.Solution)
}

func TestPipeline_FiniteOutcomeSkipsNumeric(t *testing.T) {
	sym, _, p := newTestPipeline(t, testOptions())

	sym.EXPECT().SolveSymbolic(gomock.Any(), gomock.Any()).
		Return(domain.Finite{Values: []symath.Expr{symath.Int(3)}}, nil)

	rep := p.Run(context.Background(), "1 + x = 4")

	require.NoError(t, rep.NormalizeErr)
	require.NotNil(t, rep.Solution)
	assert.Equal(t, domain.ShapeFinite, rep.Solution.Shape())
	assert.True(t, rep.NumericSkipped)
	assert.Nil(t, rep.Numeric)
}

func TestPipeline_ConditionalOutcomeTriggersNumeric(t *testing.T) {
	sym, num, p := newTestPipeline(t, testOptions())

	sym.EXPECT().SolveSymbolic(gomock.Any(), gomock.Any()).
		Return(domain.Conditional{Predicate: "x in Reals such that x**3 - 2 = 0"}, nil)
	num.EXPECT().SolveNumeric(gomock.Any(), gomock.Any(), 1.0).
		Return(&domain.NumericOutcome{Root: 1.26, Residual: 1e-12, Iterations: 6, Converged: true, Accepted: true}, nil)

	rep := p.Run(context.Background(), "x**3 = 2")

	assert.False(t, rep.NumericSkipped)
	require.NotNil(t, rep.Numeric)
	assert.True(t, rep.Numeric.Accepted)
}

func TestPipeline_SymbolicFaultStillRunsNumeric(t *testing.T) {
	sym, num, p := newTestPipeline(t, testOptions())

	sym.EXPECT().SolveSymbolic(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrSymbolicEngine, "kernel fault"))
	num.EXPECT().SolveNumeric(gomock.Any(), gomock.Any(), 1.0).
		Return(&domain.NumericOutcome{Root: 2, Converged: true, Accepted: true}, nil)

	rep := p.Run(context.Background(), "x**2 = 4")

	assert.ErrorIs(t, rep.SymbolicErr, serrors.ErrSymbolicEngine)
	assert.Nil(t, rep.Solution)
	require.NotNil(t, rep.Numeric)
}

func TestPipeline_AlwaysNumericOverridesSkip(t *testing.T) {
	opts := testOptions()
	opts.AlwaysNumeric = true
	sym, num, p := newTestPipeline(t, opts)

	sym.EXPECT().SolveSymbolic(gomock.Any(), gomock.Any()).
		Return(domain.Finite{Values: []symath.Expr{symath.Int(3)}}, nil)
	num.EXPECT().SolveNumeric(gomock.Any(), gomock.Any(), 1.0).
		Return(&domain.NumericOutcome{Root: 3, Converged: true, Accepted: true}, nil)

	rep := p.Run(context.Background(), "1 + x = 4")

	assert.False(t, rep.NumericSkipped)
	assert.NotNil(t, rep.Numeric)
}

func TestPipeline_NumericFailureRecordedInReport(t *testing.T) {
	sym, num, p := newTestPipeline(t, testOptions())

	sym.EXPECT().SolveSymbolic(gomock.Any(), gomock.Any()).
		Return(domain.Empty{}, nil)
	num.EXPECT().SolveNumeric(gomock.Any(), gomock.Any(), 1.0).
		Return(nil, serrors.With(serrors.ErrNoConvergence, "no convergence after 100 iterations"))

	rep := p.Run(context.Background(), "exp(x) = -1")

	assert.Equal(t, domain.ShapeEmpty, rep.Solution.Shape())
	assert.Nil(t, rep.Numeric)
	assert.ErrorIs(t, rep.NumericErr, serrors.ErrNoConvergence)
}

func realPipeline(opts solver.Options) *solver.Pipeline {
	return solver.New(
		solver.NewSymbolic(opts.Unknown),
		solver.NewNewton(opts.Unknown, opts.Tolerance, opts.AcceptTolerance, opts.MaxIterations),
		opts,
	)
}

func TestPipeline_EndToEnd_QuadraticSolvedExactly(t *testing.T) {
	rep := realPipeline(testOptions()).Run(context.Background(), "x**2 - 5*x + 6 = 0")

	require.NoError(t, rep.NormalizeErr)
	require.NoError(t, rep.SymbolicErr)
	assert.Equal(t, []string{"2", "3"}, finiteStrings(t, rep.Solution))
	assert.True(t, rep.NumericSkipped)
}

func TestPipeline_EndToEnd_CubeRootFallsBackToNumeric(t *testing.T) {
	rep := realPipeline(testOptions()).Run(context.Background(), "x**3 - 2 = 0")

	require.NoError(t, rep.NormalizeErr)
	require.NoError(t, rep.SymbolicErr)
	assert.Equal(t, domain.ShapeConditional, rep.Solution.Shape())

	require.NoError(t, rep.NumericErr)
	require.NotNil(t, rep.Numeric)
	assert.True(t, rep.Numeric.Accepted)
	assert.InDelta(t, math.Cbrt(2), rep.Numeric.Root, 1e-6)
}

func TestPipeline_EndToEnd_RoundTripResiduals(t *testing.T) {
	opts := testOptions()
	opts.AlwaysNumeric = true
	p := realPipeline(opts)

	for _, eq := range []string{
		"1 + x = 4",
		"x**2 - 5*x + 6 = 0",
		"exp(x) = 5",
		"x**3 = 2",
	} {
		t.Run(eq, func(t *testing.T) {
			rep := p.Run(context.Background(), eq)

			require.NoError(t, rep.NumericErr)
			require.NotNil(t, rep.Numeric)
			assert.Less(t, math.Abs(rep.Numeric.Residual), 1e-6)
		})
	}
}
