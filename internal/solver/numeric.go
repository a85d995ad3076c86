package solver

import (
	"context"
	"math"

	"go.uber.org/zap"

	"eqsolve/pkg/domain"
	"eqsolve/pkg/logger"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

// Newton estimates a single real root of f(unknown) = 0 by damped
// Newton iteration with a secant fallback when the symbolic derivative
// cannot be evaluated or degenerates.
type Newton struct {
	unknown   string
	tolerance float64
	acceptTol float64
	maxIter   int
}

// NewNewton returns a root finder. tolerance bounds the step size used as
// the convergence criterion; acceptTol bounds the residual |f(root)| for the
// estimate to be reported as a valid root.
func NewNewton(unknown string, tolerance, acceptTol float64, maxIter int) *Newton {
	return &Newton{
		unknown:   unknown,
		tolerance: tolerance,
		acceptTol: acceptTol,
		maxIter:   maxIter,
	}
}

// divergenceBound aborts the iteration once the iterate has clearly escaped
// any plausible root neighbourhood.
const divergenceBound = 1e12

// SolveNumeric iterates from guess. A converged estimate is returned even
// when its residual fails the acceptance tolerance; the caller decides how to
// present a converged-but-rejected root. Non-convergence and inability to
// evaluate the expression at all are errors.
func (n *Newton) SolveNumeric(ctx context.Context, expr symath.Expr, guess float64) (*domain.NumericOutcome, error) {
	e := expr.Simplify()
	for name := range symath.FreeVars(e) {
		if name != n.unknown {
			return nil, serrors.With(serrors.ErrEvaluation,
				"expression contains a second unknown %q", name)
		}
	}

	f := func(x float64) (float64, bool) { return evalAt(e, n.unknown, x) }

	fx, ok := f(guess)
	if !ok {
		return nil, serrors.With(serrors.ErrEvaluation,
			"expression is not evaluable at the initial guess %g", guess)
	}

	deriv := e.Diff(n.unknown).Simplify()
	df := func(x float64) (float64, bool) { return evalAt(deriv, n.unknown, x) }

	x := guess
	prevX, prevF := x+1e-4, 0.0
	if pf, ok := f(prevX); ok {
		prevF = pf
	} else {
		prevX, prevF = x, fx
	}

	for i := 0; i < n.maxIter; i++ {
		if err := ctx.Err(); err != nil {
			return nil, serrors.Wrap(serrors.ErrNoConvergence, err,
				"iteration cancelled after %d steps", i)
		}

		slope, ok := df(x)
		if !ok || math.Abs(slope) < 1e-12 {
			// Secant slope from the previous iterate.
			if x == prevX || fx == prevF {
				return nil, serrors.With(serrors.ErrNoConvergence,
					"flat region at x = %g after %d iterations", x, i)
			}
			slope = (fx - prevF) / (x - prevX)
			if math.Abs(slope) < 1e-12 {
				return nil, serrors.With(serrors.ErrNoConvergence,
					"flat region at x = %g after %d iterations", x, i)
			}
		}

		step := fx / slope
		prevX, prevF = x, fx
		x -= step

		if math.Abs(x) > divergenceBound {
			return nil, serrors.With(serrors.ErrNoConvergence,
				"iteration diverged after %d steps (x = %g)", i+1, x)
		}

		fx, ok = f(x)
		if !ok {
			// Stepped outside the expression's domain; bisect back toward
			// the previous iterate.
			recovered := false
			for j := 0; j < 8; j++ {
				x = (x + prevX) / 2
				if fx, ok = f(x); ok {
					recovered = true
					break
				}
			}
			if !recovered {
				return nil, serrors.With(serrors.ErrNoConvergence,
					"iteration left the expression's domain at step %d", i+1)
			}
		}

		if math.Abs(step) <= n.tolerance*(1+math.Abs(x)) || math.Abs(fx) <= n.tolerance {
			out := &domain.NumericOutcome{
				Root:       x,
				Residual:   fx,
				Iterations: i + 1,
				Converged:  true,
				Accepted:   math.Abs(fx) <= n.acceptTol,
			}
			logger.Debug(ctx, "numeric iteration converged",
				zap.Float64("root", out.Root),
				zap.Float64("residual", out.Residual),
				zap.Int("iterations", out.Iterations),
				zap.Bool("accepted", out.Accepted))
			return out, nil
		}
	}

	return nil, serrors.With(serrors.ErrNoConvergence,
		"no convergence after %d iterations (last x = %g, |f(x)| = %g)",
		n.maxIter, x, math.Abs(fx))
}

// evalAt substitutes x for name and evaluates. Kernel panics raised during
// substitution (a step landing on a pole, for example) count as an evaluation
// failure at that point rather than aborting the iteration.
func evalAt(e symath.Expr, name string, x float64) (v float64, ok bool) {
	defer func() {
		if recover() != nil {
			v, ok = 0, false
		}
	}()

	n, okEval := e.Substitute(name, symath.Float(x)).Eval()
	if !okEval {
		return 0, false
	}
	y := n.Float64()
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}

	return y, true
}
