package solver

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"eqsolve/pkg/domain"
	"eqsolve/pkg/logger"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

// Symbolic classifies the real solution set of f(unknown) = 0 by exact
// rational arithmetic. Polynomials up to degree two are solved in closed
// form; higher degrees are reduced by rational-root extraction. A
// non-polynomial equation is solved by operator inversion when the unknown
// occurs exactly once. Anything the resolver cannot enumerate is reported as
// a conditional set so the numeric stage gets a chance.
type Symbolic struct {
	unknown string
}

// NewSymbolic returns a resolver for the given unknown name.
func NewSymbolic(unknown string) *Symbolic {
	return &Symbolic{unknown: unknown}
}

// residualTolerance bounds |f(r)| when a candidate root from operator
// inversion is checked by back-substitution.
const residualTolerance = 1e-6

// SolveSymbolic classifies the solution set of expr = 0. Kernel panics
// (degenerate arithmetic such as division by zero during rewriting) surface
// as an ErrSymbolicEngine error, never as a crash.
func (s *Symbolic) SolveSymbolic(ctx context.Context, expr symath.Expr) (set domain.SolutionSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			set = nil
			err = serrors.With(serrors.ErrSymbolicEngine, "symbolic kernel fault: %v", r)
		}
	}()

	e := expr.Simplify()

	if !symath.ContainsVar(e, s.unknown) {
		return s.classifyConstant(e), nil
	}

	if coeffs, ok := symath.Coeffs(e, s.unknown); ok {
		set := s.solvePolynomial(coeffs)
		logger.Debug(ctx, "polynomial classification",
			zap.String("shape", string(set.Shape())))
		return set, nil
	}

	if countVar(e, s.unknown) == 1 {
		if set, ok := s.solveByInversion(e); ok {
			logger.Debug(ctx, "inversion classification",
				zap.String("shape", string(set.Shape())))
			return set, nil
		}
	}

	return domain.Conditional{Predicate: s.predicate(e)}, nil
}

// classifyConstant handles equations with no unknown left after
// simplification: c = 0 either holds for every real number or for none.
func (s *Symbolic) classifyConstant(e symath.Expr) domain.SolutionSet {
	if n, ok := e.Eval(); ok {
		if n.IsZero() {
			return domain.NonFinite{Description: "all real numbers satisfy the equation"}
		}
		return domain.Empty{}
	}
	// A constant the kernel cannot approximate (for example an unevaluated
	// 0**0) cannot be classified either way.
	return domain.Conditional{Predicate: s.predicate(e)}
}

func (s *Symbolic) predicate(e symath.Expr) string {
	return fmt.Sprintf("%s in Reals such that %s = 0", s.unknown, e)
}

// --- polynomial path ---

// solvePolynomial enumerates the real roots of the polynomial with the given
// exact coefficients. Degrees one and two are closed-form; higher degrees are
// reduced by stripping zero roots and extracting rational roots until a
// quadratic or less remains. If an irreducible factor of degree three or more
// is left, the set cannot be enumerated exactly.
func (s *Symbolic) solvePolynomial(coeffs map[int]*symath.Num) domain.SolutionSet {
	deg := 0
	for d := range coeffs {
		if d > deg {
			deg = d
		}
	}
	dense := make([]*big.Rat, deg+1)
	for d := range dense {
		dense[d] = new(big.Rat)
		if c, ok := coeffs[d]; ok {
			dense[d].Set(c.Rat())
		}
	}
	orig := make([]*big.Rat, len(dense))
	copy(orig, dense)

	roots := make([]*big.Rat, 0, deg)
	var surds []symath.Expr

	// x = 0 roots: strip trailing zero coefficients.
	if deg > 0 && dense[0].Sign() == 0 {
		roots = append(roots, new(big.Rat))
		for len(dense) > 1 && dense[0].Sign() == 0 {
			dense = dense[1:]
		}
	}

	for len(dense)-1 >= 3 {
		r, ok := rationalRoot(dense)
		if !ok {
			break
		}
		roots = append(roots, r)
		dense = deflate(dense, r)
	}

	switch len(dense) - 1 {
	case 0:
		// Fully deflated; only the stripped zero roots (if any) remain.
	case 1:
		r := new(big.Rat).Quo(new(big.Rat).Neg(dense[0]), dense[1])
		roots = append(roots, r)
	case 2:
		qr, qs, hasReal := quadraticRoots(dense[2], dense[1], dense[0])
		if hasReal {
			roots = append(roots, qr...)
			surds = append(surds, qs...)
		}
	default:
		// Irreducible remainder of degree three or more: some real roots
		// exist (odd degree) or may exist, but they are not expressible in
		// the resolver's exact forms. The condition names the full input
		// polynomial, and any roots extracted before deflation stalled are
		// carried along as known values instead of being discarded.
		cond := domain.Conditional{Predicate: s.predicate(polyExpr(orig, s.unknown))}
		if len(roots) > 0 || len(surds) > 0 {
			cond.Known = finiteValues(roots, surds)
		}
		return cond
	}

	if len(roots) == 0 && len(surds) == 0 {
		return domain.Empty{}
	}
	return domain.Finite{Values: finiteValues(roots, surds)}
}

// quadraticRoots solves a*x**2 + b*x + c = 0 exactly. Rational roots come
// back in the first slice, irrational real roots as exact surd expressions in
// the second. hasReal is false when the discriminant is negative.
func quadraticRoots(a, b, c *big.Rat) (rational []*big.Rat, surd []symath.Expr, hasReal bool) {
	// D = b**2 - 4ac
	disc := new(big.Rat).Mul(b, b)
	disc.Sub(disc, new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))

	switch disc.Sign() {
	case -1:
		return nil, nil, false
	case 0:
		r := new(big.Rat).Quo(new(big.Rat).Neg(b), new(big.Rat).Mul(big.NewRat(2, 1), a))
		return []*big.Rat{r}, nil, true
	}

	sq := symath.Sqrt(symath.FromRat(disc))
	negB := symath.FromRat(new(big.Rat).Neg(b))
	twoA := symath.FromRat(new(big.Rat).Mul(big.NewRat(2, 1), a))

	if n, ok := sq.(*symath.Num); ok {
		half := new(big.Rat).Mul(big.NewRat(2, 1), a)
		r1 := new(big.Rat).Quo(new(big.Rat).Add(new(big.Rat).Neg(b), n.Rat()), half)
		r2 := new(big.Rat).Quo(new(big.Rat).Sub(new(big.Rat).Neg(b), n.Rat()), half)
		return []*big.Rat{r1, r2}, nil, true
	}

	s1 := symath.Divide(symath.Add(negB, sq), twoA)
	s2 := symath.Divide(symath.Subtract(negB, sq), twoA)
	return nil, []symath.Expr{s1, s2}, true
}

// rationalRootSearchBound caps the integer magnitudes the rational-root
// search will enumerate divisors for.
const rationalRootSearchBound = 1_000_000

// rationalRoot finds one rational root p/q of the dense polynomial, if any,
// by the rational root theorem: p divides the constant term and q divides
// the leading coefficient of the integer-scaled polynomial.
func rationalRoot(dense []*big.Rat) (*big.Rat, bool) {
	ints, ok := integerScale(dense)
	if !ok {
		return nil, false
	}
	lead := ints[len(ints)-1]
	tail := ints[0]
	if tail.Sign() == 0 {
		return new(big.Rat), true
	}

	ps, ok := smallDivisors(tail)
	if !ok {
		return nil, false
	}
	qs, ok := smallDivisors(lead)
	if !ok {
		return nil, false
	}

	for _, p := range ps {
		for _, q := range qs {
			cand := big.NewRat(p, q)
			if hornerIsZero(dense, cand) {
				return cand, true
			}
			cand = big.NewRat(-p, q)
			if hornerIsZero(dense, cand) {
				return cand, true
			}
		}
	}
	return nil, false
}

// integerScale clears denominators, returning integer coefficients small
// enough for divisor enumeration.
func integerScale(dense []*big.Rat) ([]*big.Int, bool) {
	lcm := big.NewInt(1)
	for _, c := range dense {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	bound := big.NewInt(rationalRootSearchBound)
	ints := make([]*big.Int, len(dense))
	for i, c := range dense {
		v := new(big.Int).Mul(c.Num(), new(big.Int).Quo(lcm, c.Denom()))
		if new(big.Int).Abs(v).Cmp(bound) > 0 {
			return nil, false
		}
		ints[i] = v
	}
	return ints, true
}

func smallDivisors(n *big.Int) ([]int64, bool) {
	v := new(big.Int).Abs(n).Int64()
	if v == 0 || v > rationalRootSearchBound {
		return nil, false
	}
	var out []int64
	for d := int64(1); d*d <= v; d++ {
		if v%d == 0 {
			out = append(out, d, v/d)
		}
	}
	return out, true
}

func hornerIsZero(dense []*big.Rat, x *big.Rat) bool {
	acc := new(big.Rat)
	for i := len(dense) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, dense[i])
	}
	return acc.Sign() == 0
}

// deflate divides the dense polynomial by (x - r), assuming r is a root.
func deflate(dense []*big.Rat, r *big.Rat) []*big.Rat {
	n := len(dense) - 1
	out := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(dense[i], new(big.Rat).Mul(carry, r))
		out[i-1] = carry
	}
	return out
}

// polyExpr rebuilds the dense coefficients as an expression in the unknown.
func polyExpr(dense []*big.Rat, unknown string) symath.Expr {
	terms := make([]symath.Expr, 0, len(dense))
	for d := len(dense) - 1; d >= 0; d-- {
		if dense[d].Sign() == 0 {
			continue
		}
		terms = append(terms, symath.Mul(
			symath.FromRat(dense[d]),
			symath.Power(symath.NewVar(unknown), symath.Int(int64(d))),
		))
	}
	return symath.Add(terms...)
}

// finiteValues deduplicates and orders the collected roots. Rational roots
// sort numerically; surds follow, ordered by their float approximation.
func finiteValues(rational []*big.Rat, surds []symath.Expr) []symath.Expr {
	sort.Slice(rational, func(i, j int) bool { return rational[i].Cmp(rational[j]) < 0 })
	values := make([]symath.Expr, 0, len(rational)+len(surds))
	for i, r := range rational {
		if i > 0 && r.Cmp(rational[i-1]) == 0 {
			continue
		}
		values = append(values, symath.FromRat(r))
	}
	sort.Slice(surds, func(i, j int) bool { return approx(surds[i]) < approx(surds[j]) })
	values = append(values, surds...)
	return values
}

func approx(e symath.Expr) float64 {
	if n, ok := e.Eval(); ok {
		return n.Float64()
	}
	return math.Inf(1)
}

// --- inversion path ---

// countVar counts occurrences of the named variable in the expression tree.
func countVar(e symath.Expr, name string) int {
	switch v := e.(type) {
	case *symath.Var:
		if v.Name() == name {
			return 1
		}
	case *symath.Sum:
		n := 0
		for _, t := range v.Terms() {
			n += countVar(t, name)
		}
		return n
	case *symath.Prod:
		n := 0
		for _, f := range v.Factors() {
			n += countVar(f, name)
		}
		return n
	case *symath.Pow:
		return countVar(v.Base(), name) + countVar(v.Exponent(), name)
	case *symath.Fn:
		return countVar(v.Arg(), name)
	}
	return 0
}

// solveByInversion peels operations off the single subtree containing the
// unknown, mirroring each onto the right-hand side, until the unknown stands
// alone. Candidate roots are then checked by back-substitution so that
// principal-branch inversions (even roots, logarithms) cannot smuggle in
// extraneous values.
func (s *Symbolic) solveByInversion(e symath.Expr) (domain.SolutionSet, bool) {
	set, ok := s.invert(e, symath.Int(0))
	if !ok {
		return nil, false
	}
	fin, isFin := set.(domain.Finite)
	if !isFin {
		return set, true
	}

	kept := make([]symath.Expr, 0, len(fin.Values))
	for _, v := range fin.Values {
		root := v.Simplify()
		if !withinResidual(e, s.unknown, root) {
			continue
		}
		kept = append(kept, root)
	}
	if len(kept) == 0 {
		return domain.Empty{}, true
	}
	return domain.Finite{Values: kept}, true
}

// withinResidual reports whether substituting root for name keeps |f(root)|
// inside the residual tolerance. A candidate that lands on a pole of the
// expression (a kernel panic during rewriting) is rejected, and a residual
// that cannot be evaluated to a number is kept: exact zero residuals often
// simplify to forms Eval cannot fold.
func withinResidual(e symath.Expr, name string, root symath.Expr) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	res := e.Substitute(name, root).Simplify()
	if n, evalOK := res.Eval(); evalOK && math.Abs(n.Float64()) > residualTolerance {
		return false
	}
	return true
}

// invert solves e = rhs for the unknown, where the unknown occurs exactly
// once in e. Returns false when the tree contains an operation it cannot
// invert over the reals.
func (s *Symbolic) invert(e symath.Expr, rhs symath.Expr) (domain.SolutionSet, bool) {
	switch v := e.(type) {
	case *symath.Var:
		if v.Name() != s.unknown {
			return nil, false
		}
		return domain.Finite{Values: []symath.Expr{rhs.Simplify()}}, true

	case *symath.Sum:
		var target symath.Expr
		rest := make([]symath.Expr, 0, len(v.Terms()))
		for _, t := range v.Terms() {
			if symath.ContainsVar(t, s.unknown) {
				target = t
			} else {
				rest = append(rest, t)
			}
		}
		return s.invert(target, symath.Subtract(rhs, symath.Add(rest...)))

	case *symath.Prod:
		var target symath.Expr
		rest := make([]symath.Expr, 0, len(v.Factors()))
		for _, f := range v.Factors() {
			if symath.ContainsVar(f, s.unknown) {
				target = f
			} else {
				rest = append(rest, f)
			}
		}
		other := symath.Mul(rest...)
		if n, ok := other.Eval(); ok && n.IsZero() {
			return nil, false
		}
		return s.invert(target, symath.Divide(rhs, other))

	case *symath.Pow:
		return s.invertPow(v, rhs)

	case *symath.Fn:
		return s.invertFn(v, rhs)
	}
	return nil, false
}

func (s *Symbolic) invertPow(p *symath.Pow, rhs symath.Expr) (domain.SolutionSet, bool) {
	if symath.ContainsVar(p.Base(), s.unknown) {
		exp, ok := p.Exponent().(*symath.Num)
		if !ok {
			return nil, false
		}
		er := exp.Rat()
		if er.Sign() == 0 {
			return nil, false
		}
		// base**negative = 0 forces a pole of the base; no real solution.
		if er.Sign() < 0 {
			if rv, ok := rhs.Eval(); ok && rv.IsZero() {
				return domain.Empty{}, true
			}
		}

		if er.IsInt() && er.Num().Int64()%2 == 0 {
			// base**(2k) = rhs: no real preimage when rhs < 0, a symmetric
			// pair otherwise.
			if rv, ok := rhs.Eval(); ok && rv.Sign() < 0 {
				return domain.Empty{}, true
			}
			root := symath.Power(rhs, symath.FromRat(new(big.Rat).Inv(er)))
			pos, okPos := s.invert(p.Base(), root)
			neg, okNeg := s.invert(p.Base(), symath.Neg(root))
			if !okPos || !okNeg {
				return nil, false
			}
			return mergeFinite(pos, neg)
		}

		// Fractional exponents with an even root index act on a nonnegative
		// domain, so a negative right-hand side has no preimage.
		if !er.IsInt() && er.Denom().Int64()%2 == 0 {
			if rv, ok := rhs.Eval(); ok && rv.Sign() < 0 {
				return domain.Empty{}, true
			}
		}
		inv := symath.FromRat(new(big.Rat).Inv(er))
		return s.invert(p.Base(), realPower(rhs, inv))
	}

	// Exponential form: base**g(x) = rhs with constant base.
	base, ok := p.Base().(*symath.Num)
	if !ok || base.Sign() <= 0 || base.IsOne() {
		return nil, false
	}
	if rv, ok := rhs.Eval(); ok && rv.Sign() <= 0 {
		return domain.Empty{}, true
	}
	return s.invert(p.Exponent(), symath.Divide(symath.Ln(rhs), symath.Ln(base)))
}

// realPower raises rhs to the exponent with the real-branch convention for
// odd roots: an odd root of a negative value is the negated root of its
// absolute value.
func realPower(rhs symath.Expr, exp *symath.Num) symath.Expr {
	er := exp.Rat()
	if rv, ok := rhs.Eval(); ok && rv.Sign() < 0 && !er.IsInt() && er.Denom().Int64()%2 == 1 {
		return symath.Neg(symath.Power(symath.Neg(rhs), exp))
	}
	return symath.Power(rhs, exp)
}

func (s *Symbolic) invertFn(f *symath.Fn, rhs symath.Expr) (domain.SolutionSet, bool) {
	switch f.Name() {
	case "exp":
		if rv, ok := rhs.Eval(); ok && rv.Sign() <= 0 {
			return domain.Empty{}, true
		}
		return s.invert(f.Arg(), symath.Ln(rhs))
	case "ln":
		return s.invert(f.Arg(), symath.Exp(rhs))
	case "sin", "cos":
		if rv, ok := rhs.Eval(); ok && math.Abs(rv.Float64()) > 1 {
			return domain.Empty{}, true
		}
		return domain.NonFinite{
			Description: fmt.Sprintf("periodic solution family of %s = %s (infinitely many real solutions)", f, rhs),
		}, true
	case "tan":
		return domain.NonFinite{
			Description: fmt.Sprintf("periodic solution family of %s = %s (infinitely many real solutions)", f, rhs),
		}, true
	}
	return nil, false
}

// mergeFinite joins the two branches of a symmetric inversion. Either branch
// may have collapsed to Empty on a domain check.
func mergeFinite(a, b domain.SolutionSet) (domain.SolutionSet, bool) {
	var values []symath.Expr
	for _, set := range []domain.SolutionSet{a, b} {
		if fin, ok := set.(domain.Finite); ok {
			values = append(values, fin.Values...)
		} else if set.Shape() != domain.ShapeEmpty {
			return nil, false
		}
	}
	if len(values) == 0 {
		return domain.Empty{}, true
	}
	return domain.Finite{Values: values}, true
}
