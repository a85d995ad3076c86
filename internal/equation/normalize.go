// Package equation turns free-form equation text into a normalized symbolic
// expression: the formula f such that the original equation is equivalent to
// f = 0. It owns the token allow-list; nothing outside this package ever
// interprets user text.
package equation

import (
	"strings"

	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

// Normalize converts raw equation text into a single expression equal to zero.
//
// The normalization rules:
//   - Text with a single '=' (and no '==') is split at the first '=', both
//     sides are parsed independently, and the result is left - right.
//   - Otherwise every '==' is treated as an equation separator and replaced
//     with subtraction, and the whole text is parsed as one expression that
//     is implicitly "= 0".
//
// Empty or whitespace-only text is rejected with ErrEmptyInput before any
// parsing. Text that cannot be parsed as a formula in the unknown is rejected
// with ErrParse.
//
// Normalization is deterministic: the same text always yields a structurally
// equal expression.
func Normalize(text, unknown string) (symath.Expr, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, serrors.With(serrors.ErrEmptyInput, "no equation entered")
	}

	if strings.Contains(trimmed, "=") && !strings.Contains(trimmed, "==") {
		lhsText, rhsText, _ := strings.Cut(trimmed, "=")

		lhs, err := Parse(lhsText, unknown)
		if err != nil {
			return nil, err
		}
		rhs, err := Parse(rhsText, unknown)
		if err != nil {
			return nil, err
		}

		return symath.Subtract(lhs, rhs), nil
	}

	return Parse(strings.ReplaceAll(trimmed, "==", "-"), unknown)
}
