// Package cli implements the dogspotter command line.
package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrlokans/dogspotter/internal/config"
	"github.com/mrlokans/dogspotter/internal/entrypoint"
	"github.com/mrlokans/dogspotter/internal/logging"
)

// RootCommand creates the root command. Running it without a subcommand
// starts the server.
func RootCommand(version string) *cobra.Command {
	var (
		cfg     *config.Config
		envFile string
	)

	rootCmd := &cobra.Command{
		Use:           "dogspotter",
		Short:         "DogSpotter breed catalog and sighting log",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		cfg = config.NewConfig()
		return logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	}

	// Subcommands read the config after PersistentPreRunE has filled it in
	current := func() *config.Config { return cfg }

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Synchronize the catalog and start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(current(), version)
		},
	}
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(
		serveCmd,
		syncCommand(current),
		breedsCommand(current),
		imageCommand(current, version),
		matchCommand(current),
		sightingsCommand(current),
	)

	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	if err := RootCommand(version).Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
