package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ingatlan/agent/config"
	"ingatlan/agent/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	envFile  string
	input    string
	output   string
	format   string
	city     string
	discount int
	fallback bool
	port     string
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "agent",
		Short:         "Value real-estate listings and report aggregate prices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "optional .env file to load")
	root.PersistentFlags().StringVarP(&f.input, "input", "i", "", "listing file (AGENT_INPUT_FILE)")
	root.PersistentFlags().StringVar(&f.city, "city", "", "city of the most expensive listing summary (AGENT_REPORT_CITY)")
	root.PersistentFlags().IntVar(&f.discount, "discount", 0, "discount percentage applied to every listing (AGENT_DISCOUNT)")
	root.PersistentFlags().BoolVar(&f.fallback, "fallback", true, "load built-in data when the input file is missing (AGENT_FALLBACK)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Load listings and write the report to stdout and the output file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup(cmd, f)
			if err := app.RunReport(cfg, logger, os.Stdout); err != nil {
				logger.WithError(err).Error("Failed to produce report")
				return err
			}
			return nil
		},
	}
	reportCmd.Flags().StringVarP(&f.output, "output", "o", "", "report file (AGENT_OUTPUT_FILE)")
	reportCmd.Flags().StringVarP(&f.format, "format", "f", "", "report format, text or json (AGENT_REPORT_FORMAT)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Load listings and serve them read-only over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := setup(cmd, f)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Serve(ctx, cfg, logger); err != nil {
				logger.WithError(err).Error("Server failed")
				return err
			}
			return nil
		},
	}
	serveCmd.Flags().StringVarP(&f.port, "port", "p", "", "HTTP port (HTTP_PORT)")

	root.AddCommand(reportCmd, serveCmd)
	return root
}

// setup loads the configuration, lets explicitly set flags override it and
// builds the logger. Configuration errors are fatal.
func setup(cmd *cobra.Command, f *flags) (*config.Config, *logrus.Logger) {
	cfg, err := config.LoadConfig(f.envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.Apply(overrides(cmd, f))

	logger := app.NewLogger(cfg, os.Stderr)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	return cfg, logger
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command, f *flags) config.Overrides {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	var o config.Overrides
	if changed("input") {
		o.InputFile = &f.input
	}
	if changed("output") {
		o.OutputFile = &f.output
	}
	if changed("format") {
		o.Format = &f.format
	}
	if changed("city") {
		o.City = &f.city
	}
	if changed("discount") {
		o.Discount = &f.discount
	}
	if changed("fallback") {
		o.Fallback = &f.fallback
	}
	if changed("port") {
		o.Port = &f.port
	}
	return o
}
