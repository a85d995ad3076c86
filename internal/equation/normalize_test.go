package equation_test

import (
	"errors"
	"testing"

	"eqsolve/internal/equation"
	"eqsolve/pkg/serrors"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		kind serrors.Kind
	}{
		{
			name: "linear equation moves right side over",
			in:   "1 + x = 4",
			out:  "x - 3",
		},
		{
			name: "quadratic against explicit zero",
			in:   "x**2 - 5*x + 6 = 0",
			out:  "x**2 - 5*x + 6",
		},
		{
			name: "bare expression is implicitly zero",
			in:   "x**3 - 2",
			out:  "x**3 - 2",
		},
		{
			name: "double equals becomes subtraction",
			in:   "x == 2",
			out:  "x - 2",
		},
		{
			name: "false numeric equality still normalizes",
			in:   "1 = 2",
			out:  "-1",
		},
		{
			name: "square root survives normalization",
			in:   "sqrt(x) - 5 = 0",
			out:  "x**(1/2) - 5",
		},
		{
			name: "sympy-qualified names are accepted",
			in:   "sympy.sqrt(x) - 5 = 0",
			out:  "x**(1/2) - 5",
		},
		{
			name: "factorial folds to its exact value",
			in:   "x + factorial(3) = 50",
			out:  "x - 44",
		},
		{
			name: "empty input",
			in:   "",
			kind: serrors.ErrEmptyInput,
		},
		{
			name: "whitespace only input",
			in:   "   \t ",
			kind: serrors.ErrEmptyInput,
		},
		{
			name: "caret is not an exponent operator",
			in:   "x^2",
			kind: serrors.ErrParse,
		},
		{
			name: "foreign variable is rejected",
			in:   "y + 1 = 2",
			kind: serrors.ErrParse,
		},
		{
			name: "unbalanced grouping",
			in:   "(x + 1",
			kind: serrors.ErrParse,
		},
		{
			name: "trailing operator",
			in:   "x *",
			kind: serrors.ErrParse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := equation.Normalize(tc.in, "x")

			if tc.kind != nil {
				if err == nil {
					t.Fatalf("expected error of kind %v, got expression %s", tc.kind, expr)
				}
				if !errors.Is(err, tc.kind) {
					t.Fatalf("expected error kind %v, got %v", tc.kind, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := expr.String(); got != tc.out {
				t.Fatalf("want %q, got %q", tc.out, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	const text = "x**2 - 5*x + 6 = 0"

	first, err := equation.Normalize(text, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := equation.Normalize(text, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Fatalf("normalization not idempotent: %s vs %s", first, second)
	}
}
