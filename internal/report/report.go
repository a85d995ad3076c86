// Package report renders a solve run for the terminal. It is a pure
// presentation layer: the report content is taken verbatim and never changes
// what was solved.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"eqsolve/pkg/domain"
	"eqsolve/pkg/serrors"
	"eqsolve/pkg/symath"
)

// Options configures the renderer.
type Options struct {
	// Unknown is the variable name shown in usage and result lines.
	Unknown string
	// InitialGuess is echoed in the numeric section.
	InitialGuess float64
	// Precision is the number of fractional digits for numeric roots.
	Precision int
}

// Renderer turns a report into styled terminal output.
type Renderer struct {
	opts Options

	rule    lipgloss.Style
	heading lipgloss.Style
	result  lipgloss.Style
	caution lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

// NewRenderer builds a renderer with the default color scheme.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:    opts,
		rule:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		heading: lipgloss.NewStyle().Bold(true),
		result:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		caution: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:   lipgloss.NewStyle().Faint(true),
	}
}

const ruleWidth = 36

func (r *Renderer) hr() string {
	return r.rule.Render(strings.Repeat("-", ruleWidth))
}

// Usage returns the input-syntax banner shown before reading an equation.
func (r *Renderer) Usage() string {
	x := r.opts.Unknown

	var b strings.Builder
	b.WriteString(r.hr() + "\n")
	b.WriteString(r.heading.Render(fmt.Sprintf("Equation Solver for %q", x)) + "\n")
	b.WriteString(r.hr() + "\n")
	b.WriteString("Enter the equation:\n")
	fmt.Fprintf(&b, "  - Use %q as the variable.\n", x)
	b.WriteString("  - Use '**' for exponentiation (e.g., " + x + "**2 for " + x + " squared).\n")
	b.WriteString("  - Functions: sqrt(), sin(), cos(), tan(), exp(), log(), factorial()\n")
	b.WriteString("  - Examples:\n")
	b.WriteString("    1 + " + x + " = 4\n")
	b.WriteString("    " + x + "**2 - 5*" + x + " + 6 = 0\n")
	b.WriteString("    sqrt(" + x + ") - 5 = 0\n")
	b.WriteString(r.hr())

	return b.String()
}

// Render formats one complete solve run.
func (r *Renderer) Render(rep *domain.Report) string {
	var b strings.Builder

	b.WriteString("\n" + r.heading.Render("--- Symbolic Solution (Exact) ---") + "\n")
	r.renderSymbolic(&b, rep)

	if rep.NormalizeErr == nil && !rep.NumericSkipped {
		b.WriteString("\n" + r.heading.Render("--- Numerical Solution (Approximate) ---") + "\n")
		r.renderNumeric(&b, rep)
	} else if rep.NumericSkipped {
		b.WriteString(r.muted.Render("Exact solution found; numerical stage skipped.") + "\n")
	}

	b.WriteString("\n" + r.hr() + "\n")
	b.WriteString("Solver finished.\n")
	b.WriteString(r.hr() + "\n")

	return b.String()
}

func (r *Renderer) renderSymbolic(b *strings.Builder, rep *domain.Report) {
	if rep.NormalizeErr != nil {
		if errors.Is(rep.NormalizeErr, serrors.ErrEmptyInput) {
			b.WriteString(r.fail.Render("No equation entered.") + "\n")
			return
		}
		b.WriteString(r.fail.Render(fmt.Sprintf("Error parsing equation: %v", rep.NormalizeErr)) + "\n")
		b.WriteString(r.muted.Render("Please check syntax (use '**' for powers, ensure balanced parentheses).") + "\n")

		return
	}

	fmt.Fprintf(b, "Solving %s = 0\n", rep.Normalized)

	if rep.SymbolicErr != nil {
		b.WriteString(r.fail.Render(fmt.Sprintf("An unexpected error occurred during symbolic solving: %v", rep.SymbolicErr)) + "\n")
		return
	}

	switch set := rep.Solution.(type) {
	case domain.Finite:
		b.WriteString("Symbolic solution(s) found:\n")
		b.WriteString(r.result.Render(r.formatValues(set.Values)) + "\n")
	case domain.Empty:
		b.WriteString(r.caution.Render("Symbolic solver found no real solutions.") + "\n")
	case domain.Conditional:
		b.WriteString("Symbolic solver returned a conditional solution set:\n")
		b.WriteString(r.caution.Render(set.Predicate) + "\n")
		if len(set.Known) > 0 {
			b.WriteString("Exact solution(s) already found:\n")
			b.WriteString(r.result.Render(r.formatValues(set.Known)) + "\n")
		}
		b.WriteString(r.muted.Render("This often means numerical methods are needed for specific values.") + "\n")
	case domain.NonFinite:
		b.WriteString("Symbolic solver returned a non-finite set:\n")
		b.WriteString(r.caution.Render(set.Description) + "\n")
	}
}

func (r *Renderer) renderNumeric(b *strings.Builder, rep *domain.Report) {
	fmt.Fprintf(b, "Using initial guess for %s = %g\n", r.opts.Unknown, r.opts.InitialGuess)
	b.WriteString(r.muted.Render("(If the solver fails or finds an unexpected root, try changing this guess.)") + "\n")

	if rep.NumericErr != nil {
		switch {
		case errors.Is(rep.NumericErr, serrors.ErrEvaluation):
			b.WriteString(r.fail.Render(fmt.Sprintf("Error during numerical evaluation: %v", rep.NumericErr)) + "\n")
		default:
			b.WriteString(r.fail.Render("Numerical solver did not converge or failed.") + "\n")
			b.WriteString(r.muted.Render(fmt.Sprintf("Solver message: %v", rep.NumericErr)) + "\n")
		}

		return
	}
	if rep.Numeric == nil {
		return
	}

	if rep.Numeric.Accepted {
		b.WriteString(r.result.Render(fmt.Sprintf("Numerical solution found: %s ≈ %.*f",
			r.opts.Unknown, r.opts.Precision, rep.Numeric.Root)) + "\n")

		return
	}

	b.WriteString(r.caution.Render(fmt.Sprintf(
		"Numerical solver converged, but %s = %.*f does not precisely satisfy the equation (f(%s) = %.2e).",
		r.opts.Unknown, r.opts.Precision, rep.Numeric.Root, r.opts.Unknown, rep.Numeric.Residual)) + "\n")
}

// formatValues renders exact values as-is; a non-rational exact form gets its
// float approximation appended for readability.
func (r *Renderer) formatValues(values []symath.Expr) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		s := v.String()
		if _, isNum := v.(*symath.Num); !isNum {
			if n, ok := v.Eval(); ok {
				s = fmt.Sprintf("%s ≈ %.*f", s, r.opts.Precision, n.Float64())
			}
		}
		parts = append(parts, s)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
