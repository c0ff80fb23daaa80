package commands

import (
	"github.com/leapstack-labs/leapcheck/internal/dataset"
	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/leapstack-labs/leapcheck/internal/tui"
	"github.com/spf13/cobra"
)

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the terminal UI",
		Long: `Start the interactive terminal UI: navigate the dataset with the
arrow keys, edit cells in place, add and delete rows, and watch the
expectation results update after every change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := setup(cmd)

			suite, err := expect.LoadSuite(cfg.Suite)
			if err != nil {
				return err
			}

			loader := dataset.NewLoader(cfg.DataDir, logger)
			table, err := loader.Load(cmd.Context(), cfg.Dataset)
			if err != nil {
				return err
			}

			return tui.Run(table, suite)
		},
	}
}
