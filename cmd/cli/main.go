package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"emvenn/adapters/excel"
	"emvenn/adapters/rng"
	"emvenn/adapters/venn"
	"emvenn/app"
	"emvenn/domain/run"
	"emvenn/domain/sampling"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emvenn",
		Short: "Monte Carlo estimation of effect-measure agreement probabilities",
	}

	rootCmd.AddCommand(
		newSimulateCmd(),
		newRenderCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// paramFlags registers the shared simulation flags and returns a builder
func paramFlags(cmd *cobra.Command) func() run.Parameters {
	defaults := run.DefaultParameters()
	lower := cmd.Flags().Float64("lower", defaults.Interval.Lower, "lower risk bound")
	upper := cmd.Flags().Float64("upper", defaults.Interval.Upper, "upper risk bound")
	trials := cmd.Flags().Int("trials", defaults.TrialCount, "number of simulation trials")
	tent := cmd.Flags().Bool("tent", defaults.TentMode, "condition each treatment risk on its control risk")
	workers := cmd.Flags().Int("workers", defaults.Workers, "parallel trial workers")
	resolution := cmd.Flags().Int("resolution", 0, "tent bisection resolution (0 reuses --trials)")
	seed := cmd.Flags().Int64("seed", 0, "RNG seed (0 picks a time-derived seed)")

	return func() run.Parameters {
		return run.Parameters{
			Interval:   sampling.Interval{Lower: *lower, Upper: *upper},
			TrialCount: *trials,
			TentMode:   *tent,
			Workers:    *workers,
			Resolution: *resolution,
			Seed:       *seed,
		}
	}
}

func simulate(ctx context.Context, params run.Parameters) (*run.Result, error) {
	sim := app.NewSimulationService(rng.NewAdapter(), nil)
	return sim.Run(ctx, app.RunRequest{Params: params})
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the simulation and print the run summary",
	}
	params := paramFlags(cmd)
	asJSON := cmd.Flags().Bool("json", false, "emit the full result as JSON")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		result, err := simulate(cmd.Context(), params())
		if err != nil {
			return err
		}
		if *asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		fmt.Print(app.NewReportService().Markdown(result))
		return nil
	}
	return cmd
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <template.svg>",
		Short: "Run the simulation and substitute probabilities into a 6-way Venn SVG template",
		Long: `Run the simulation and write the diagram SVG to stdout with each region's
letter code replaced by its estimated agreement probability.

The template is interactivenn's 6-way base diagram (Heberle et al.).`,
		Args: cobra.ExactArgs(1),
	}
	params := paramFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		result, err := simulate(cmd.Context(), params())
		if err != nil {
			return err
		}
		return venn.NewRenderer(args[0]).Render(result, os.Stdout)
	}
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Run the simulation and export the subset tallies to an Excel workbook",
		Args:  cobra.ExactArgs(1),
	}
	params := paramFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		result, err := simulate(cmd.Context(), params())
		if err != nil {
			return err
		}
		if err := excel.WriteXLSX(args[0], result); err != nil {
			return err
		}
		fmt.Printf("wrote %s (run %s, %d trials)\n", args[0], result.RunID, result.Params.TrialCount)
		return nil
	}
	return cmd
}
