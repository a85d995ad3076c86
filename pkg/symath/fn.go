package symath

import (
	"math"
	"math/big"
	"strings"
)

// Fn is a named unary function application. The kernel knows the fixed set
// sin, cos, tan, exp, ln and factorial; sqrt is represented as a rational
// power instead.
type Fn struct {
	name string
	arg  Expr
}

// Sin returns sin(arg).
func Sin(arg Expr) Expr { return fnOf("sin", arg) }

// Cos returns cos(arg).
func Cos(arg Expr) Expr { return fnOf("cos", arg) }

// Tan returns tan(arg).
func Tan(arg Expr) Expr { return fnOf("tan", arg) }

// Exp returns e**arg.
func Exp(arg Expr) Expr { return fnOf("exp", arg) }

// Ln returns the natural logarithm of arg.
func Ln(arg Expr) Expr { return fnOf("ln", arg) }

// Factorial returns arg!.
func Factorial(arg Expr) Expr { return fnOf("factorial", arg) }

func fnOf(name string, arg Expr) Expr { return (&Fn{name: name, arg: arg}).Simplify() }

// Name returns the function name.
func (f *Fn) Name() string { return f.name }

// Arg returns the function argument.
func (f *Fn) Arg() Expr { return f.arg }

const maxExactFactorial = 128

// Simplify folds only applications whose result is an exact rational;
// transcendental values stay symbolic until Eval.
func (f *Fn) Simplify() Expr {
	arg := f.arg.Simplify()

	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "sin", "tan":
			if n.IsZero() {
				return Int(0)
			}
		case "cos", "exp":
			if n.IsZero() {
				return Int(1)
			}
		case "ln":
			if n.IsOne() {
				return Int(0)
			}
		case "factorial":
			if n.IsInt() && n.Sign() >= 0 {
				if v := n.val.Num().Int64(); v <= maxExactFactorial {
					fact := new(big.Int).MulRange(1, v)

					return ratNum(new(big.Rat).SetInt(fact))
				}
			}
		}
	}

	if inner, ok := arg.(*Fn); ok {
		if f.name == "ln" && inner.name == "exp" {
			return inner.arg
		}
		if f.name == "exp" && inner.name == "ln" {
			return inner.arg
		}
	}

	return &Fn{name: f.name, arg: arg}
}

func (f *Fn) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Fn) Substitute(name string, value Expr) Expr {
	return (&Fn{name: f.name, arg: f.arg.Substitute(name, value)}).Simplify()
}

// Diff applies the chain rule. Functions without a closed-form derivative in
// this kernel (factorial) produce a placeholder that fails Eval, which makes
// the numeric layer fall back to derivative-free iteration.
func (f *Fn) Diff(name string) Expr {
	du := f.arg.Diff(name)

	var outer Expr
	switch f.name {
	case "sin":
		outer = Cos(f.arg)
	case "cos":
		outer = Neg(Sin(f.arg))
	case "tan":
		outer = Add(Int(1), Power(Tan(f.arg), Int(2)))
	case "exp":
		outer = Exp(f.arg)
	case "ln":
		outer = Power(f.arg, Int(-1))
	default:
		outer = &Fn{name: "D[" + f.name + "]", arg: f.arg}
	}

	return Mul(outer, du)
}

func (f *Fn) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v := n.Float64()

	var r float64
	switch f.name {
	case "sin":
		r = math.Sin(v)
	case "cos":
		r = math.Cos(v)
	case "tan":
		r = math.Tan(v)
	case "exp":
		r = math.Exp(v)
	case "ln":
		if v <= 0 {
			return nil, false
		}
		r = math.Log(v)
	case "factorial":
		if !n.IsInt() || n.Sign() < 0 {
			return nil, false
		}
		fact := new(big.Int).MulRange(1, n.val.Num().Int64())

		return ratNum(new(big.Rat).SetInt(fact)), true
	default:
		// Derivative placeholders (D[...]) have no numeric value.
		return nil, false
	}

	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, false
	}

	return Float(r), true
}

func (f *Fn) Equal(other Expr) bool {
	o, ok := other.(*Fn)

	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

// IsKnownFn reports whether name is one of the kernel's named functions.
func IsKnownFn(name string) bool {
	switch strings.ToLower(name) {
	case "sin", "cos", "tan", "exp", "ln", "factorial":
		return true
	}

	return false
}
