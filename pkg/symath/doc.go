// Package symath is a small deterministic symbolic math kernel for single
// variable algebra. Expressions are immutable trees built from exact rational
// numbers (math/big.Rat), variables, sums, products, powers and a fixed set of
// named functions. Construction simplifies eagerly, so structurally equal
// inputs produce structurally equal trees with a stable String form.
//
// Simplification is exactness preserving: it folds only operations whose
// result stays an exact rational (integer powers, perfect square roots,
// factorials of small integers, sin(0), ln(1), ...). Floating point only
// enters through Eval, which a caller uses to turn a closed expression into a
// number.
//
// Kernel-internal invariant violations (division by zero, 0 raised to a
// negative power) panic; the solving layer recovers them at its boundary.
package symath
