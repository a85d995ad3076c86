package equation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"eqsolve/internal/equation"
	"eqsolve/pkg/serrors"
)

func TestParse_Precedence(t *testing.T) {
	expr, err := equation.Parse("1 + 2*x", "x")

	require.NoError(t, err)
	require.Equal(t, "2*x + 1", expr.String())
}

func TestParse_PowerIsRightAssociative(t *testing.T) {
	expr, err := equation.Parse("2**2**3", "x")

	require.NoError(t, err)
	require.Equal(t, "256", expr.String())
}

func TestParse_UnaryMinusBindsLooserThanPower(t *testing.T) {
	expr, err := equation.Parse("-x**2", "x")

	require.NoError(t, err)
	require.Equal(t, "-x**2", expr.String())
}

func TestParse_NegativeExponent(t *testing.T) {
	expr, err := equation.Parse("x**-1", "x")

	require.NoError(t, err)
	require.Equal(t, "x**(-1)", expr.String())
}

func TestParse_DecimalLiteralIsExact(t *testing.T) {
	expr, err := equation.Parse("1.5", "x")

	require.NoError(t, err)
	require.Equal(t, "3/2", expr.String())
}

func TestParse_NestedFunctions(t *testing.T) {
	expr, err := equation.Parse("sin(cos(x))", "x")

	require.NoError(t, err)
	require.Equal(t, "sin(cos(x))", expr.String())
}

func TestParse_DeeplyNestedRoot(t *testing.T) {
	expr, err := equation.Parse("sqrt((x+4)**5 - x + 6) - 50", "x")

	require.NoError(t, err)
	require.Contains(t, expr.String(), "**(1/2)")
}

func TestParse_LogIsNaturalLogarithm(t *testing.T) {
	expr, err := equation.Parse("log(x)", "x")

	require.NoError(t, err)
	require.Equal(t, "ln(x)", expr.String())
}

func TestParse_PostfixFactorial(t *testing.T) {
	expr, err := equation.Parse("3!", "x")
	require.NoError(t, err)
	require.Equal(t, "6", expr.String())

	expr, err = equation.Parse("3!**2", "x")
	require.NoError(t, err)
	require.Equal(t, "36", expr.String())

	expr, err = equation.Parse("x!", "x")
	require.NoError(t, err)
	require.Equal(t, "factorial(x)", expr.String())
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{name: "implicit multiplication", in: "2x"},
		{name: "unknown function", in: "foo(3)"},
		{name: "unknown variable is not callable", in: "x(3)"},
		{name: "double dot number", in: "1.2.3"},
		{name: "equality operator inside expression", in: "x = 1"},
		{name: "stray caret", in: "x^2"},
		{name: "empty parentheses", in: "()"},
		{name: "division by literal zero", in: "x/0"},
		{name: "zero raised to negative power", in: "x + 0**(-2)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := equation.Parse(tc.in, "x")

			require.Error(t, err)
			require.ErrorIs(t, err, serrors.ErrParse)
		})
	}
}
