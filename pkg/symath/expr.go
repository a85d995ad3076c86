package symath

import (
	"math/big"
)

// Expr is an immutable symbolic expression. All implementations are value
// semantics safe: no method mutates the receiver, every operation returns a
// new expression.
type Expr interface {
	// Simplify returns an equivalent expression in the kernel's canonical
	// form. Simplifying an already simplified expression is a no-op.
	Simplify() Expr
	// String renders the expression using the same syntax the parser accepts
	// (infix operators, ** for exponentiation, named function calls).
	String() string
	// Substitute replaces every occurrence of the named variable with value.
	Substitute(name string, value Expr) Expr
	// Diff returns the derivative with respect to the named variable.
	Diff(name string) Expr
	// Eval reduces the expression to a single exact rational where possible,
	// falling back to float-backed rationals for transcendental parts. The
	// second result is false when the expression still contains free
	// variables or is undefined over the reals.
	Eval() (*Num, bool)
	// Equal reports structural equality with another expression.
	Equal(other Expr) bool
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// Int returns the integer constant n.
func Int(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// Rat returns the exact fraction p/q. It panics when q is zero.
func Rat(p, q int64) *Num {
	if q == 0 {
		panic("symath: division by zero")
	}

	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Float returns the exact rational value of the float f.
func Float(f float64) *Num { return &Num{val: new(big.Rat).SetFloat64(f)} }

// ParseNum parses a decimal literal ("3", "1.5") into an exact rational.
func ParseNum(s string) (*Num, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}

	return &Num{val: r}, true
}

// FromRat returns the exact rational value r as a constant.
func FromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func ratNum(r *big.Rat) *Num { return FromRat(r) }

func (n *Num) Simplify() Expr                  { return n }
func (n *Num) Substitute(string, Expr) Expr    { return n }
func (n *Num) Diff(string) Expr                { return Int(0) }
func (n *Num) Eval() (*Num, bool)              { return n, true }
func (n *Num) Equal(other Expr) bool {
	o, ok := other.(*Num)

	return ok && n.val.Cmp(o.val) == 0
}

// Rat returns a copy of the underlying rational value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Float64 returns the nearest float64 to the exact value.
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

func (n *Num) IsZero() bool   { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool    { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInt() bool    { return n.val.IsInt() }
func (n *Num) Sign() int      { return n.val.Sign() }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}

	return n.val.RatString()
}

var (
	ratOne    = new(big.Rat).SetInt64(1)  //nolint: gochecknoglobals
	ratNegOne = new(big.Rat).SetInt64(-1) //nolint: gochecknoglobals
)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numSub(a, b *Num) *Num { return &Num{val: new(big.Rat).Sub(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symath: division by zero")
	}

	return &Num{val: new(big.Rat).Inv(a.val)}
}

func numDiv(a, b *Num) *Num { return numMul(a, numRecip(b)) }

// Var is a symbolic variable.
type Var struct{ name string }

// NewVar returns the variable with the given name.
func NewVar(name string) *Var { return &Var{name: name} }

func (v *Var) Simplify() Expr    { return v }
func (v *Var) String() string    { return v.name }
func (v *Var) Eval() (*Num, bool) { return nil, false }
func (v *Var) Name() string      { return v.name }

func (v *Var) Substitute(name string, value Expr) Expr {
	if v.name == name {
		return value
	}

	return v
}

func (v *Var) Diff(name string) Expr {
	if v.name == name {
		return Int(1)
	}

	return Int(0)
}

func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)

	return ok && v.name == o.name
}
