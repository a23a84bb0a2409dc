package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/gaze-network/crowdsale/pkg/logger"
	"github.com/gaze-network/crowdsale/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var (
	// root command
	cmd = &cobra.Command{
		Use:  "crowdsale",
		Long: `Crowdsale controller: accepts contributions, issues tokens with bonuses and finalizes the sale.`,
	}

	// sub-commands
	cmds = []*cobra.Command{
		NewRunCommand(),
		NewVersionCommand(),
		NewMigrateCommand(),
		NewStatusCommand(),
		NewExportCommand(),
	}
)

// Execute runs the root command.
func Execute(ctx context.Context) {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("database", "", "storage of the sale data, E.g. `postgres` or `leveldb`")

	// Bind flags to configuration
	config.BindPFlag("modules.crowdsale.database", flags.Lookup("database"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Something went wrong, can't init logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})

	// Register sub-commands
	cmd.AddCommand(cmds...)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		// Cobra will print the error message by default
		logger.DebugContext(ctx, "Error executing command", slogx.Error(err))
	}
}
