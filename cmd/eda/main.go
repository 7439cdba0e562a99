package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"edakit/domain/dataset"
	"edakit/internal/config"
	"edakit/internal/profiling"
	"edakit/internal/report"
	"edakit/internal/testkit"
)

// datasetFlags are shared by every subcommand
type datasetFlags struct {
	envFile string
	rows    int
	seed    int64
}

func main() {
	flags := &datasetFlags{}

	rootCmd := &cobra.Command{
		Use:   "eda",
		Short: "Exploratory data analysis over a synthetic customer table",
		Long: `eda profiles a seeded synthetic customer table: distribution labels,
outlier bounds, correlation matrices and binary target tests.

Configuration is read from EDA_* environment variables, optionally loaded
from a .env file with --env-file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to a .env file with EDA_* settings")
	rootCmd.PersistentFlags().IntVar(&flags.rows, "rows", testkit.DefaultCustomerConfig().Rows, "Number of rows to generate")
	rootCmd.PersistentFlags().Int64Var(&flags.seed, "seed", testkit.DefaultCustomerConfig().Seed, "Random seed for the generated table")

	rootCmd.AddCommand(
		newOutliersCmd(flags),
		newReportCmd(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newOutliersCmd(flags *datasetFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "outliers",
		Short: "Label numeric columns and count values outside their outlier bounds",
		Long: `Classify every numeric column as normal or skewed by its rounded sample
skewness, then count values outside mean ± k·std (normal) or
Q1 − k·IQR / Q3 + k·IQR (skewed).

Example: eda outliers --rows 1000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, table, err := flags.load()
			if err != nil {
				return err
			}

			res, err := profiling.NewClassifier(cfg.Outlier).ClassifyTable(cmd.Context(), table)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tSKEW\tLABEL\tLOWER\tUPPER\tOUTLIERS\tPERCENT")
			for _, r := range res.Results {
				fmt.Fprintf(w, "%s\t%.1f\t%s\t%.2f\t%.2f\t%d\t%.2f%%\n",
					r.Column, r.Skewness, r.Distribution, r.LowerBound, r.UpperBound, r.OutlierCount, r.OutlierPercentage)
			}
			for _, f := range res.Failures {
				fmt.Fprintf(w, "%s\t-\t%s\t-\t-\t-\t-\n", f.Column, f.Code)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the classification report as JSON")

	return cmd
}

func newReportCmd(flags *datasetFlags) *cobra.Command {
	var format, outPath, target, title string
	var profileOnly bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a full EDA report and render it",
		Long: fmt.Sprintf(`Build the exploration, descriptive, outlier, correlation and binary
target sections and render them in one of: %s.

Example: eda report --format xlsx --out report.xlsx --target churn`, strings.Join(report.Formats, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, table, err := flags.load()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Report.Format
			}

			renderer, err := report.NewRenderer(format)
			if err != nil {
				return err
			}

			r, err := report.NewBuilder(cfg).Build(cmd.Context(), table, report.BuildOptions{
				Title:        title,
				Target:       target,
				SkipAnalysis: profileOnly,
			})
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer file.Close()
				w = file
			}

			if err := renderer.Render(w, r); err != nil {
				return err
			}
			if outPath != "" {
				log.Printf("[eda] wrote %s report to %s", renderer.Format(), outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (defaults to EDA_REPORT_FORMAT)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (defaults to stdout)")
	cmd.Flags().StringVar(&target, "target", testkit.ColumnChurn, "Binary target column; empty skips the target section")
	cmd.Flags().StringVar(&title, "title", "", "Report title (defaults to EDA_REPORT_TITLE)")
	cmd.Flags().BoolVar(&profileOnly, "profile-only", false, "Skip correlation and target analysis")

	return cmd
}

// load reads configuration and generates the table
func (f *datasetFlags) load() (*config.Config, *dataset.Table, error) {
	cfg, err := config.LoadFile(f.envFile)
	if err != nil {
		return nil, nil, err
	}

	gen := testkit.DefaultCustomerConfig()
	gen.Rows = f.rows
	gen.Seed = f.seed
	table, err := testkit.NewCustomerDataGenerator(gen).Generate()
	if err != nil {
		return nil, nil, err
	}
	return cfg, table, nil
}
