package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eqsolve/internal/equation"
	"eqsolve/internal/report"
	"eqsolve/pkg/domain"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

func newRenderer() *report.Renderer {
	return report.NewRenderer(report.Options{Unknown: "x", InitialGuess: 1.0, Precision: 8})
}

func TestRender_FiniteSolutionSkipsNumericSection(t *testing.T) {
	expr, err := equation.Normalize("x**2 - 5*x + 6 = 0", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		RunID:          domain.NewRunID(),
		Input:          "x**2 - 5*x + 6 = 0",
		Normalized:     expr,
		Solution:       domain.Finite{Values: []symath.Expr{symath.Int(2), symath.Int(3)}},
		NumericSkipped: true,
	})

	assert.Contains(t, out, "--- Symbolic Solution (Exact) ---")
	assert.Contains(t, out, "Symbolic solution(s) found:")
	assert.Contains(t, out, "[2, 3]")
	assert.NotContains(t, out, "Numerical Solution")
	assert.Contains(t, out, "numerical stage skipped")
	assert.Contains(t, out, "Solver finished.")
}

func TestRender_SurdValueCarriesApproximation(t *testing.T) {
	expr, err := equation.Normalize("x**2 - 2 = 0", "x")
	require.NoError(t, err)

	root := symath.Sqrt(symath.Int(2))
	out := newRenderer().Render(&domain.Report{
		Normalized:     expr,
		Solution:       domain.Finite{Values: []symath.Expr{root}},
		NumericSkipped: true,
	})

	assert.Contains(t, out, "2**(1/2) ≈ 1.41421356")
}

func TestRender_EmptySet(t *testing.T) {
	expr, err := equation.Normalize("x**2 + 1 = 0", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		Normalized: expr,
		Solution:   domain.Empty{},
		NumericErr: serrors.With(serrors.ErrNoConvergence, "no convergence after 100 iterations"),
	})

	assert.Contains(t, out, "Symbolic solver found no real solutions.")
	assert.Contains(t, out, "Numerical solver did not converge or failed.")
	assert.Contains(t, out, "no convergence after 100 iterations")
}

func TestRender_ConditionalWithAcceptedNumericRoot(t *testing.T) {
	expr, err := equation.Normalize("x**3 - 2 = 0", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		Normalized: expr,
		Solution:   domain.Conditional{Predicate: "x in Reals such that x**3 - 2 = 0"},
		Numeric: &domain.NumericOutcome{
			Root:       1.2599210498948732,
			Residual:   3.1e-13,
			Iterations: 6,
			Converged:  true,
			Accepted:   true,
		},
	})

	assert.Contains(t, out, "conditional solution set")
	assert.Contains(t, out, "x in Reals such that x**3 - 2 = 0")
	assert.Contains(t, out, "Using initial guess for x = 1")
	assert.Contains(t, out, "Numerical solution found: x ≈ 1.25992105")
}

func TestRender_ConditionalListsKnownExactRoots(t *testing.T) {
	expr, err := equation.Normalize("x**4 - x**3 - 2*x + 2 = 0", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		Normalized: expr,
		Solution: domain.Conditional{
			Predicate: "x in Reals such that x**4 - x**3 - 2*x + 2 = 0",
			Known:     []symath.Expr{symath.Int(1)},
		},
		Numeric: &domain.NumericOutcome{
			Root:       1.2599210498948732,
			Residual:   3.1e-13,
			Iterations: 6,
			Converged:  true,
			Accepted:   true,
		},
	})

	assert.Contains(t, out, "conditional solution set")
	assert.Contains(t, out, "Exact solution(s) already found:")
	assert.Contains(t, out, "1")
}

func TestRender_ConvergedButRejectedRoot(t *testing.T) {
	expr, err := equation.Normalize("x**2 = 2", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		Normalized: expr,
		Solution:   domain.Conditional{Predicate: "x in Reals such that x**2 - 2 = 0"},
		Numeric: &domain.NumericOutcome{
			Root:      1.5,
			Residual:  2.5e-1,
			Converged: true,
			Accepted:  false,
		},
	})

	assert.Contains(t, out, "does not precisely satisfy the equation")
	assert.Contains(t, out, "2.50e-01")
}

func TestRender_NormalizationErrors(t *testing.T) {
	out := newRenderer().Render(&domain.Report{
		Input:        "",
		NormalizeErr: serrors.KindOnly(serrors.ErrEmptyInput),
	})
	assert.Contains(t, out, "No equation entered.")
	assert.NotContains(t, out, "Numerical Solution")

	out = newRenderer().Render(&domain.Report{
		Input:        "x^2 = 4",
		NormalizeErr: serrors.With(serrors.ErrParse, "unsupported operator '^'"),
	})
	assert.Contains(t, out, "Error parsing equation:")
	assert.Contains(t, out, "balanced parentheses")
}

func TestRender_EvaluationFailure(t *testing.T) {
	expr, err := equation.Normalize("ln(x) + sin(x) = 0", "x")
	require.NoError(t, err)

	out := newRenderer().Render(&domain.Report{
		Normalized: expr,
		Solution:   domain.Conditional{Predicate: "x in Reals such that ln(x) + sin(x) = 0"},
		NumericErr: serrors.With(serrors.ErrEvaluation, "expression is not evaluable at the initial guess 1"),
	})

	assert.Contains(t, out, "Error during numerical evaluation:")
}

func TestUsage_ListsSyntaxAndExamples(t *testing.T) {
	out := newRenderer().Usage()

	assert.Contains(t, out, `Equation Solver for "x"`)
	assert.Contains(t, out, "Use '**' for exponentiation")
	assert.Contains(t, out, "1 + x = 4")
	assert.Contains(t, out, "x**2 - 5*x + 6 = 0")
	assert.Contains(t, out, "sqrt(x) - 5 = 0")
}
