package domain

import (
	"eqsolve/pkg/symath"
)

// Report is everything one solve run produced, assembled by the pipeline and
// consumed by the reporter. The reporter renders it verbatim; it never alters
// control flow based on the content.
type Report struct {
	// RunID identifies the run in logs and output.
	RunID RunID
	// Input is the raw equation text as entered.
	Input string

	// Normalized is the expression f with the equation rewritten as f = 0.
	// Nil when normalization failed.
	Normalized symath.Expr
	// NormalizeErr is the normalization failure, if any (empty input or
	// parse error). When set, no solving was attempted.
	NormalizeErr error

	// Solution is the classified symbolic outcome. Nil when symbolic solving
	// failed or never ran.
	Solution SolutionSet
	// SymbolicErr is an engine-internal symbolic fault, if any. The numeric
	// stage still runs when this is set.
	SymbolicErr error

	// Numeric is the fallback outcome. Nil when the stage did not produce an
	// estimate (skipped or failed before iterating).
	Numeric *NumericOutcome
	// NumericErr is the numeric stage failure, if any (evaluation failure or
	// non-convergence).
	NumericErr error
	// NumericSkipped reports that the numeric stage was not triggered because
	// the symbolic outcome was already finite.
	NumericSkipped bool
}
