/*
PURPOSE:
  Defines the root Cobra command for the Toy Robot CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Log level and color are resolved once, before any subcommand runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/toyrobot/main.go
  - Calls: Child commands (run, batch, check)
  - Modifies: output.Logger

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands, Root is usually empty or helps.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init() and applyGlobalOverrides().

RELATED FILES:
  - cmd/toyrobot/main.go

MAINTENANCE:
  - Update when adding global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/toyrobot/internal/config"
	"github.com/daryltucker/toyrobot/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	logLevelOverride string
	colorOverride    bool

	rootCmd = &cobra.Command{
		Use:           "toyrobot",
		Short:         "Toy robot simulator on a bounded table",
		Long:          `Drives a toy robot on a square table with PLACE X,Y,F, MOVE, LEFT, RIGHT and REPORT commands. Use 'run' for interactive input or 'batch' for a command file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./toyrobot.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&colorOverride, "color", false, "colorize report output")
}

// loadConfig loads the config file and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if logLevelOverride != "" {
		cfg.LogLevel = logLevelOverride
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = colorOverride
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	output.SetLogger(output.NewLogger(cmd.ErrOrStderr(), level))
	return cfg, nil
}
