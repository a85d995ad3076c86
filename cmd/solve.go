package main

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eqsolve/internal/config"
	"eqsolve/internal/report"
	"eqsolve/internal/solver"
)

func newPipeline(cfg *config.Config) *solver.Pipeline {
	opts := solver.Options{
		Unknown:         cfg.Solver.Unknown,
		InitialGuess:    cfg.Solver.InitialGuess,
		Tolerance:       cfg.Solver.Tolerance,
		AcceptTolerance: cfg.Solver.AcceptTolerance,
		MaxIterations:   cfg.Solver.MaxIterations,
		AlwaysNumeric:   cfg.Solver.AlwaysNumeric,
	}

	return solver.New(
		solver.NewSymbolic(opts.Unknown),
		solver.NewNewton(opts.Unknown, opts.Tolerance, opts.AcceptTolerance, opts.MaxIterations),
		opts,
	)
}

// solveCommand solves one equation and renders the report. All solver
// diagnostics (parse errors, empty sets, non-convergence) are part of the
// report, not process failures, so the command itself never errors.
func solveCommand(cfg *config.Config) *cobra.Command {
	var equationText string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solves a single-variable equation symbolically, with a numeric fallback",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			renderer := report.NewRenderer(report.Options{
				Unknown:      cfg.Solver.Unknown,
				InitialGuess: cfg.Solver.InitialGuess,
				Precision:    cfg.Solver.Precision,
			})
			out := cmd.OutOrStdout()

			text := equationText
			if text == "" {
				fmt.Fprintln(out, renderer.Usage())
				fmt.Fprint(out, "Enter equation: ")

				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					text = scanner.Text()
				}
			}

			rep := newPipeline(cfg).Run(ctx, text)
			fmt.Fprint(out, renderer.Render(rep))
		},
	}

	cmd.Flags().StringVarP(&equationText, "equation", "e", "",
		"Equation to solve; read interactively from stdin when omitted")

	return cmd
}
