package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/spf13/cobra"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format string // Output format: text, json, markdown, csv
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [suite]",
		Short: "Run the expectation suite against the dataset",
		Long: `Load the configured dataset, evaluate every expectation in the suite
against it once, and report per-expectation pass/fail results.

The command exits non-zero when any expectation fails.`,
		Example: `  # Validate with the default suite (expectations.yaml)
  leapcheck validate

  # Validate a specific suite file
  leapcheck validate ./suites/orders.yaml

  # Machine-readable output
  leapcheck validate --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suitePath := ""
			if len(args) > 0 {
				suitePath = args[0]
			}
			return runValidate(cmd, suitePath, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json, markdown, csv")

	return cmd
}

func runValidate(cmd *cobra.Command, suitePath string, opts *ValidateOptions) error {
	cfg, logger := setup(cmd)
	ctx := cmd.Context()

	if suitePath == "" {
		suitePath = cfg.Suite
	}

	suite, err := expect.LoadSuite(suitePath)
	if err != nil {
		return err
	}
	logger.Debug("loaded suite", "path", suitePath, "expectations", len(suite))

	loader := dataset.NewLoader(cfg.DataDir, logger)
	table, err := loader.Load(ctx, cfg.Dataset)
	if err != nil {
		return err
	}

	results, err := expect.Run(table, suite)
	if err != nil {
		return err
	}

	if err := renderResults(cmd.OutOrStdout(), results, opts.Format); err != nil {
		return err
	}

	if failed := expect.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d expectations failed", failed, len(results))
	}
	return nil
}
