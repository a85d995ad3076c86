package symath

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// Add returns the simplified sum of the given terms.
func Add(terms ...Expr) Expr { return (&Sum{terms: terms}).Simplify() }

// Mul returns the simplified product of the given factors.
func Mul(factors ...Expr) Expr { return (&Prod{factors: factors}).Simplify() }

// Power returns the simplified power base**exp.
func Power(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Neg returns -e.
func Neg(e Expr) Expr { return Mul(Int(-1), e) }

// Subtract returns a - b.
func Subtract(a, b Expr) Expr { return Add(a, Neg(b)) }

// Divide returns a / b, represented as a * b**(-1).
func Divide(a, b Expr) Expr { return Mul(a, Power(b, Int(-1))) }

// Sqrt returns the principal square root, represented as e**(1/2).
func Sqrt(e Expr) Expr { return Power(e, Rat(1, 2)) }

// Sum is a sum of terms in canonical order: combined like terms first (sorted
// by their non-numeric part), a single numeric constant last.
type Sum struct{ terms []Expr }

// Terms returns the terms of the sum.
func (s *Sum) Terms() []Expr { return s.terms }

func (s *Sum) Simplify() Expr {
	flat := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		switch v := t.Simplify().(type) {
		case *Sum:
			flat = append(flat, v.terms...)
		default:
			flat = append(flat, v)
		}
	}

	constant := Int(0)
	coeffs := map[string]*Num{}
	rests := map[string]Expr{}

	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			constant = numAdd(constant, n)

			continue
		}

		coeff, rest := splitCoeff(t)
		key := rest.String()
		if _, seen := coeffs[key]; !seen {
			coeffs[key] = Int(0)
			rests[key] = rest
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}

	keys := make([]string, 0, len(coeffs))
	for k := range coeffs {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	result := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		coeff := coeffs[k]
		switch {
		case coeff.IsZero():
		case coeff.IsOne():
			result = append(result, rests[k])
		default:
			result = append(result, Mul(coeff, rests[k]))
		}
	}
	if !constant.IsZero() {
		result = append(result, constant)
	}

	if len(result) == 0 {
		return Int(0)
	}
	if len(result) == 1 {
		return result[0]
	}

	return &Sum{terms: result}
}

func (s *Sum) String() string {
	var sb strings.Builder
	for i, t := range s.terms {
		neg, body := renderSigned(t)
		switch {
		case i == 0 && neg:
			sb.WriteString("-" + body)
		case i == 0:
			sb.WriteString(body)
		case neg:
			sb.WriteString(" - " + body)
		default:
			sb.WriteString(" + " + body)
		}
	}

	return sb.String()
}

func (s *Sum) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Substitute(name, value)
	}

	return Add(out...)
}

func (s *Sum) Diff(name string) Expr {
	out := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		out[i] = t.Diff(name)
	}

	return Add(out...)
}

func (s *Sum) Eval() (*Num, bool) {
	acc := Int(0)
	for _, t := range s.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}

	return acc, true
}

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	if !ok || len(s.terms) != len(o.terms) {
		return false
	}
	for i := range s.terms {
		if !s.terms[i].Equal(o.terms[i]) {
			return false
		}
	}

	return true
}

// Prod is a product of factors in canonical order: a single numeric
// coefficient first, the remaining factors sorted by their string form.
type Prod struct{ factors []Expr }

// Factors returns the factors of the product.
func (p *Prod) Factors() []Expr { return p.factors }

func (p *Prod) Simplify() Expr {
	flat := make([]Expr, 0, len(p.factors))
	for _, f := range p.factors {
		switch v := f.Simplify().(type) {
		case *Prod:
			flat = append(flat, v.factors...)
		default:
			flat = append(flat, v)
		}
	}

	coeff := Int(1)
	others := make([]Expr, 0, len(flat))
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)

			continue
		}
		others = append(others, f)
	}

	if coeff.IsZero() {
		return Int(0)
	}
	if len(others) == 0 {
		return coeff
	}

	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}

		return &Prod{factors: others}
	}

	return &Prod{factors: append([]Expr{coeff}, others...)}
}

func (p *Prod) String() string {
	factors := p.factors
	prefix := ""
	if n, ok := factors[0].(*Num); ok && n.IsNegOne() && len(factors) > 1 {
		prefix = "-"
		factors = factors[1:]
	}

	parts := make([]string, len(factors))
	for i, f := range factors {
		if _, isSum := f.(*Sum); isSum {
			parts[i] = "(" + f.String() + ")"

			continue
		}
		if n, isNum := f.(*Num); isNum && (n.Sign() < 0 || !n.IsInt()) {
			parts[i] = "(" + n.String() + ")"

			continue
		}
		parts[i] = f.String()
	}

	return prefix + strings.Join(parts, "*")
}

func (p *Prod) Substitute(name string, value Expr) Expr {
	out := make([]Expr, len(p.factors))
	for i, f := range p.factors {
		out[i] = f.Substitute(name, value)
	}

	return Mul(out...)
}

// Diff applies the product rule over all factors.
func (p *Prod) Diff(name string) Expr {
	terms := make([]Expr, len(p.factors))
	for i, fi := range p.factors {
		parts := make([]Expr, 0, len(p.factors))
		parts = append(parts, fi.Diff(name))
		for j, fj := range p.factors {
			if j != i {
				parts = append(parts, fj)
			}
		}
		terms[i] = Mul(parts...)
	}

	return Add(terms...)
}

func (p *Prod) Eval() (*Num, bool) {
	acc := Int(1)
	for _, f := range p.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}

	return acc, true
}

func (p *Prod) Equal(other Expr) bool {
	o, ok := other.(*Prod)
	if !ok || len(p.factors) != len(o.factors) {
		return false
	}
	for i := range p.factors {
		if !p.factors[i].Equal(o.factors[i]) {
			return false
		}
	}

	return true
}

// splitCoeff separates the numeric coefficient from the rest of a term.
// A term without an explicit coefficient has coefficient one.
func splitCoeff(e Expr) (*Num, Expr) {
	p, ok := e.(*Prod)
	if !ok || len(p.factors) < 2 {
		return Int(1), e
	}
	coeff, ok := p.factors[0].(*Num)
	if !ok {
		return Int(1), e
	}
	rest := p.factors[1:]
	if len(rest) == 1 {
		return coeff, rest[0]
	}

	return coeff, &Prod{factors: rest}
}

// renderSigned reports whether the term renders with a leading minus and, if
// so, the rendering of its negation.
func renderSigned(e Expr) (bool, string) {
	switch v := e.(type) {
	case *Num:
		if v.Sign() < 0 {
			return true, numNeg(v).String()
		}
	case *Prod:
		if n, ok := v.factors[0].(*Num); ok && n.Sign() < 0 {
			flipped := Mul(append([]Expr{numNeg(n)}, v.factors[1:]...)...)

			return true, flipped.String()
		}
	}

	return false, e.String()
}

// Pow is base**exp.
type Pow struct{ base, exp Expr }

// Base returns the base of the power.
func (p *Pow) Base() Expr { return p.base }

// Exponent returns the exponent of the power.
func (p *Pow) Exponent() Expr { return p.exp }

const maxFoldExp = 64

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		bn, baseIsNum := base.(*Num)

		// 0**negative is a division by zero; 0**0 stays unevaluated so Eval
		// reports failure instead of inventing a value.
		if baseIsNum && bn.IsZero() {
			if en.Sign() > 0 {
				return Int(0)
			}
			if en.Sign() < 0 {
				panic("symath: division by zero")
			}

			return &Pow{base: base, exp: exp}
		}

		if en.IsZero() {
			return Int(1)
		}
		if en.IsOne() {
			return base
		}

		if baseIsNum && bn.IsOne() {
			return Int(1)
		}

		if baseIsNum && en.IsInt() {
			if e := en.val.Num().Int64(); e >= -maxFoldExp && e <= maxFoldExp {
				return intPow(bn, e)
			}
		}

		// Exact rational roots: 4**(1/2) -> 2, 8**(1/3) -> 2, (1/4)**(1/2) -> 1/2.
		if baseIsNum && !en.IsInt() {
			if folded, ok := ratPow(bn, en); ok {
				return folded
			}
		}
	}

	// (b**k)**m -> b**(k*m) for integer outer exponents; sound for principal
	// real powers.
	if inner, ok := base.(*Pow); ok {
		if en, isNum := exp.(*Num); isNum && en.IsInt() {
			return Power(inner.base, Mul(inner.exp, exp))
		}
	}

	return &Pow{base: base, exp: exp}
}

func intPow(b *Num, e int64) *Num {
	neg := e < 0
	if neg {
		e = -e
	}
	acc := Int(1)
	for i := int64(0); i < e; i++ {
		acc = numMul(acc, b)
	}
	if neg {
		return numRecip(acc)
	}

	return acc
}

// ratPow folds b**(p/q) when the exact result is rational. Negative bases and
// large exponents are left symbolic.
func ratPow(b, e *Num) (*Num, bool) {
	if b.Sign() < 0 {
		return nil, false
	}
	p := e.val.Num().Int64()
	q := e.val.Denom().Int64()
	if q > 4 || p > maxFoldExp || p < -maxFoldExp {
		return nil, false
	}

	raised := intPow(b, p)
	num, ok := intRoot(raised.val.Num(), q)
	if !ok {
		return nil, false
	}
	den, ok := intRoot(raised.val.Denom(), q)
	if !ok {
		return nil, false
	}

	return ratNum(new(big.Rat).SetFrac(num, den)), true
}

// intRoot returns the exact q-th root of z when z is a perfect q-th power.
func intRoot(z *big.Int, q int64) (*big.Int, bool) {
	if z.Sign() < 0 {
		return nil, false
	}
	f, _ := new(big.Float).SetInt(z).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))

	for _, c := range []int64{guess - 1, guess, guess + 1} {
		if c < 0 {
			continue
		}
		pow := new(big.Int).Exp(big.NewInt(c), big.NewInt(q), nil)
		if pow.Cmp(z) == 0 {
			return big.NewInt(c), true
		}
	}

	return nil, false
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch v := p.base.(type) {
	case *Sum, *Prod, *Pow:
		baseStr = "(" + baseStr + ")"
	case *Num:
		if v.Sign() < 0 || !v.IsInt() {
			baseStr = "(" + baseStr + ")"
		}
	}

	expStr := p.exp.String()
	needParens := true
	if n, ok := p.exp.(*Num); ok && n.IsInt() && n.Sign() >= 0 {
		needParens = false
	}
	if _, ok := p.exp.(*Var); ok {
		needParens = false
	}
	if needParens {
		expStr = "(" + expStr + ")"
	}

	return baseStr + "**" + expStr
}

func (p *Pow) Substitute(name string, value Expr) Expr {
	return Power(p.base.Substitute(name, value), p.exp.Substitute(name, value))
}

func (p *Pow) Diff(name string) Expr {
	du := p.base.Diff(name)
	dv := p.exp.Diff(name)

	// Constant exponent: power rule.
	if _, ok := p.exp.(*Num); ok {
		return Mul(p.exp, Power(p.base, Add(p.exp, Int(-1))), du)
	}
	// Constant base: exponential rule.
	if _, ok := p.base.(*Num); ok {
		return Mul(Power(p.base, p.exp), Ln(p.base), dv)
	}

	// General case: d(u**v) = u**v * (v'*ln(u) + v*u'/u).
	logTerm := Mul(dv, Ln(p.base))
	quotTerm := Mul(p.exp, du, Power(p.base, Int(-1)))

	return Mul(Power(p.base, p.exp), Add(logTerm, quotTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, okB := p.base.Eval()
	e, okE := p.exp.Eval()
	if !okB || !okE {
		return nil, false
	}

	if b.IsZero() && e.Sign() <= 0 {
		return nil, false
	}

	if e.IsInt() {
		if ev := e.val.Num().Int64(); ev >= -1024 && ev <= 1024 {
			if b.IsZero() && ev < 0 {
				return nil, false
			}

			return intPow(b, ev), true
		}
	}

	bf := b.Float64()
	ef := e.Float64()
	r := math.Pow(bf, ef)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}

	return Float(r), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)

	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}
