package domain

import (
	"eqsolve/pkg/symath"
)

// SolutionShape names the classification of a symbolic solving outcome.
type SolutionShape string

const (
	// ShapeFinite is an exact, enumerable list of solution values.
	ShapeFinite SolutionShape = "FINITE"
	// ShapeEmpty means no real solution exists.
	ShapeEmpty SolutionShape = "EMPTY"
	// ShapeConditional means a solution exists only under a side condition
	// the symbolic resolver could not reduce further.
	ShapeConditional SolutionShape = "CONDITIONAL"
	// ShapeNonFinite is an infinite solution set (interval, periodic family,
	// all reals).
	ShapeNonFinite SolutionShape = "NON_FINITE"
)

// SolutionSet is the outcome of symbolic resolution. It is a closed tagged
// variant: exactly one concrete type per shape, each carrying only the data
// relevant to that shape.
type SolutionSet interface {
	Shape() SolutionShape
	solutionSet()
}

// Finite is an order-irrelevant set of exact solution values. Each value is
// the simplest representation the resolver could reach: an exact integer or
// rational where possible, otherwise an exact symbolic form approximable to a
// float.
type Finite struct {
	Values []symath.Expr
}

func (Finite) Shape() SolutionShape { return ShapeFinite }
func (Finite) solutionSet()         {}

// Empty is the outcome with no real solution.
type Empty struct{}

func (Empty) Shape() SolutionShape { return ShapeEmpty }
func (Empty) solutionSet()         {}

// Conditional carries the unresolved predicate as text. The predicate is
// preserved for reporting and never evaluated further. Known holds any exact
// solution values established before resolution stalled (for example rational
// roots extracted from a polynomial whose cofactor stayed irreducible); it
// enumerates part of the set, never all of it.
type Conditional struct {
	Predicate string
	Known     []symath.Expr
}

func (Conditional) Shape() SolutionShape { return ShapeConditional }
func (Conditional) solutionSet()         {}

// NonFinite describes an infinite solution set.
type NonFinite struct {
	Description string
}

func (NonFinite) Shape() SolutionShape { return ShapeNonFinite }
func (NonFinite) solutionSet()         {}
