package solver

import (
	"context"

	"go.uber.org/zap"

	"eqsolve/internal/equation"
	"eqsolve/pkg/domain"
	"eqsolve/pkg/logger"
)

// Options carries the pipeline's tuning knobs.
type Options struct {
	// Unknown is the variable the equation is solved for.
	Unknown string
	// InitialGuess seeds the numeric iteration.
	InitialGuess float64
	// Tolerance is the numeric convergence criterion.
	Tolerance float64
	// AcceptTolerance bounds the residual for a numeric root to be accepted.
	AcceptTolerance float64
	// MaxIterations caps the numeric iteration count.
	MaxIterations int
	// AlwaysNumeric runs the numeric stage even when the symbolic outcome is
	// already a finite set.
	AlwaysNumeric bool
}

// Pipeline runs one equation through normalization, symbolic resolution and,
// when the symbolic outcome is not an enumerable finite set, the numeric
// fallback. Every failure is folded into the report; Run never returns an
// error.
type Pipeline struct {
	opts     Options
	symbolic SymbolicSolver
	numeric  NumericSolver
}

// New assembles a pipeline from its two solving stages.
func New(symbolic SymbolicSolver, numeric NumericSolver, opts Options) *Pipeline {
	return &Pipeline{opts: opts, symbolic: symbolic, numeric: numeric}
}

// Run solves the raw equation text and returns the full report of the run.
func (p *Pipeline) Run(ctx context.Context, text string) *domain.Report {
	rep := &domain.Report{RunID: domain.NewRunID(), Input: text}
	ctx = logger.WithFields(ctx, zap.String("run_id", rep.RunID.String()))

	expr, err := equation.Normalize(text, p.opts.Unknown)
	if err != nil {
		logger.Warn(ctx, "normalization failed", zap.Error(err))
		rep.NormalizeErr = err
		return rep
	}
	rep.Normalized = expr
	logger.Info(ctx, "equation normalized", zap.Stringer("expression", expr))

	rep.Solution, rep.SymbolicErr = p.symbolic.SolveSymbolic(ctx, expr)
	if rep.SymbolicErr != nil {
		logger.Warn(ctx, "symbolic stage failed", zap.Error(rep.SymbolicErr))
	} else {
		logger.Info(ctx, "symbolic stage done",
			zap.String("shape", string(rep.Solution.Shape())))
	}

	finite := rep.SymbolicErr == nil && rep.Solution.Shape() == domain.ShapeFinite
	if finite && !p.opts.AlwaysNumeric {
		rep.NumericSkipped = true
		logger.Debug(ctx, "numeric stage skipped")
		return rep
	}

	rep.Numeric, rep.NumericErr = p.numeric.SolveNumeric(ctx, expr, p.opts.InitialGuess)
	if rep.NumericErr != nil {
		logger.Warn(ctx, "numeric stage failed", zap.Error(rep.NumericErr))
	}
	return rep
}
