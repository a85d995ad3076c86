package domain

// NumericOutcome is the result of the numeric fallback stage: a floating
// point root estimate together with the finder's convergence signal and the
// residual used for acceptance.
type NumericOutcome struct {
	// Root is the estimated root.
	Root float64
	// Residual is the value of the normalized expression at Root.
	Residual float64
	// Iterations is the number of iterations the finder spent.
	Iterations int
	// Converged is the finder's own signal that it believes it found a root,
	// independent of the residual check.
	Converged bool
	// Accepted reports whether the residual passed the closeness check. A
	// converged but unaccepted outcome is reported as a cautionary note.
	Accepted bool
}
