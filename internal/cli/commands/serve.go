package commands

import (
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/leapcheck/internal/expect"
	"github.com/leapstack-labs/leapcheck/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Host  string
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long: `Start the interactive web UI: an editable data table with the
expectation suite re-evaluated live on every edit.`,
		Example: `  # Serve on the default port
  leapcheck serve

  # Custom port, re-load sessions when the CSV changes on disk
  leapcheck serve --port 9000 --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "Port to listen on")
	cmd.Flags().StringVar(&opts.Host, "host", "", "Host to bind")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch the dataset file and re-load sessions on change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, logger := setup(cmd)

	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if opts.Host != "" {
		cfg.Server.Host = opts.Host
	}
	if opts.Watch {
		cfg.Server.Watch = true
	}

	// Validate the suite up front so a bad file fails at startup, not on the
	// first page load.
	suite, err := expect.LoadSuite(cfg.Suite)
	if err != nil {
		return err
	}
	logger.Debug("loaded suite", "path", cfg.Suite, "expectations", len(suite))

	srv := ui.NewServer(ui.Config{
		DataDir:       cfg.DataDir,
		Dataset:       cfg.Dataset,
		SuitePath:     cfg.Suite,
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		Watch:         cfg.Server.Watch,
		SessionSecret: cfg.Server.SessionSecret,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
