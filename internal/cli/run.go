/*
PURPOSE:
  Defines the 'run' subcommand.
  Reads commands interactively from stdin.

REQUIREMENTS:
  User-specified:
  - Forward every line verbatim to the robot.
  - Print "Output : <report>" on REPORT.

  Implementation-discovered:
  - Show a prompt only when stdin is a terminal, so piped input stays clean.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Session.RunInteractive()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails or stdin cannot be read.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Session -> RunInteractive.

USAGE:
  toyrobot run

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/daryltucker/toyrobot/internal/engine"
)

var (
	promptOverride  string
	metricsOverride string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Read robot commands from stdin",
	Long: `Reads one command per line from standard input until EOF.

Commands:
  PLACE X,Y,F   put the robot at X,Y facing F (NORTH, EAST, SOUTH, WEST)
  MOVE          move one unit forward
  LEFT, RIGHT   rotate 90 degrees
  REPORT        print the current position and heading

Commands that would move the robot off the table, and any command before the
first valid PLACE, are ignored.`,
	Example: `  # Interactive session
  toyrobot run

  # Pipe commands in
  printf 'PLACE 0,0,NORTH\nMOVE\nREPORT\n' | toyrobot run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if metricsOverride != "" {
			cfg.MetricsFile = metricsOverride
		}

		session, err := engine.NewSession(cfg, cmd.OutOrStdout(), engine.TraceFiles{})
		if err != nil {
			return err
		}

		prompt := ""
		if cmd.Flags().Changed("prompt") {
			prompt = promptOverride
		} else if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			prompt = promptOverride
		}

		runErr := session.RunInteractive(cmd.InOrStdin(), prompt)
		if err := session.Close(); err != nil && runErr == nil {
			runErr = err
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&promptOverride, "prompt", "> ", "prompt shown before each line (default only on a terminal)")
	runCmd.Flags().StringVar(&metricsOverride, "metrics-file", "", "write command counters in Prometheus text format on exit")
}
