package symath

import (
	"sort"
)

// FreeVars returns the set of variable names occurring in e.
func FreeVars(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectVars(e, out)

	return out
}

func collectVars(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Var:
		out[v.name] = struct{}{}
	case *Sum:
		for _, t := range v.terms {
			collectVars(t, out)
		}
	case *Prod:
		for _, f := range v.factors {
			collectVars(f, out)
		}
	case *Pow:
		collectVars(v.base, out)
		collectVars(v.exp, out)
	case *Fn:
		collectVars(v.arg, out)
	}
}

// ContainsVar reports whether the named variable occurs in e.
func ContainsVar(e Expr, name string) bool {
	_, ok := FreeVars(e)[name]

	return ok
}

const maxPolyDegree = 64

// Coeffs extracts the coefficients of e viewed as a polynomial in the named
// variable, keyed by degree. The second result is false when e is not a
// polynomial in that variable with rational coefficients (the variable under
// a function or root, in an exponent, raised to a negative power, or an
// irrational constant term).
func Coeffs(e Expr, name string) (map[int]*Num, bool) {
	raw, ok := polyOf(e.Simplify(), name)
	if !ok {
		return nil, false
	}

	out := map[int]*Num{}
	for d, c := range raw {
		if !c.IsZero() {
			out[d] = c
		}
	}

	return out, true
}

// polyOf builds the coefficient map recursively: sums add, products convolve,
// integer powers repeat the convolution.
func polyOf(e Expr, name string) (map[int]*Num, bool) {
	switch v := e.(type) {
	case *Num:
		return map[int]*Num{0: v}, true

	case *Var:
		if v.name == name {
			return map[int]*Num{1: Int(1)}, true
		}

		return nil, false

	case *Sum:
		acc := map[int]*Num{}
		for _, t := range v.terms {
			p, ok := polyOf(t, name)
			if !ok {
				return nil, false
			}
			for d, c := range p {
				if acc[d] == nil {
					acc[d] = Int(0)
				}
				acc[d] = numAdd(acc[d], c)
			}
		}

		return acc, true

	case *Prod:
		acc := map[int]*Num{0: Int(1)}
		for _, f := range v.factors {
			p, ok := polyOf(f, name)
			if !ok {
				return nil, false
			}
			acc = convolve(acc, p)
			if acc == nil {
				return nil, false
			}
		}

		return acc, true

	case *Pow:
		if ContainsVar(v.exp, name) {
			return nil, false
		}
		en, ok := v.exp.(*Num)
		if !ok || !en.IsInt() {
			return nil, false
		}
		k := en.val.Num().Int64()
		if k < 0 || k > maxPolyDegree {
			return nil, false
		}
		base, ok := polyOf(v.base, name)
		if !ok {
			return nil, false
		}
		acc := map[int]*Num{0: Int(1)}
		for i := int64(0); i < k; i++ {
			acc = convolve(acc, base)
			if acc == nil {
				return nil, false
			}
		}

		return acc, true

	case *Fn:
		return nil, false
	}

	return nil, false
}

func convolve(a, b map[int]*Num) map[int]*Num {
	out := map[int]*Num{}
	for da, ca := range a {
		for db, cb := range b {
			d := da + db
			if d > maxPolyDegree {
				return nil
			}
			if out[d] == nil {
				out[d] = Int(0)
			}
			out[d] = numAdd(out[d], numMul(ca, cb))
		}
	}

	return out
}

// Degree returns the degree of e as a polynomial in the named variable. The
// second result is false when e is not such a polynomial.
func Degree(e Expr, name string) (int, bool) {
	coeffs, ok := Coeffs(e, name)
	if !ok {
		return 0, false
	}
	deg := 0
	for d := range coeffs {
		if d > deg {
			deg = d
		}
	}

	return deg, true
}

// IsPolynomial reports whether e is a polynomial in the named variable with
// rational coefficients.
func IsPolynomial(e Expr, name string) bool {
	_, ok := Coeffs(e, name)

	return ok
}

// Collect rewrites a polynomial as a sum of coefficient-times-power terms in
// descending degree order.
func Collect(e Expr, name string) (Expr, bool) {
	coeffs, ok := Coeffs(e, name)
	if !ok {
		return nil, false
	}
	if len(coeffs) == 0 {
		return Int(0), true
	}

	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))

	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, Mul(c, NewVar(name)))
		default:
			terms = append(terms, Mul(c, Power(NewVar(name), Int(int64(d)))))
		}
	}

	return Add(terms...), true
}
