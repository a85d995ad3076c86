package solver

import (
	"context"

	"eqsolve/pkg/domain"
	"eqsolve/pkg/symath"
)

//go:generate mockgen -package mocksolver -source=interface.go -destination=mock/mocksolver.go *

// SymbolicSolver classifies the real solution set of expr = 0.
type SymbolicSolver interface {
	SolveSymbolic(ctx context.Context, expr symath.Expr) (domain.SolutionSet, error)
}

// NumericSolver searches for a single real root of expr = 0 starting from guess.
type NumericSolver interface {
	SolveNumeric(ctx context.Context, expr symath.Expr, guess float64) (*domain.NumericOutcome, error)
}
