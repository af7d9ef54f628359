/*
PURPOSE:
  Defines the 'batch' subcommand.
  Runs a file of '|' delimited robot commands.

REQUIREMENTS:
  User-specified:
  - Process every record in order and report completion.

  Implementation-discovered:
  - Optional CSV/JSON trace of each record for debugging command files.
  - Optional Prometheus textfile with command counters.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Session.Batch()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if the file cannot be read or an output cannot be written.
  - Individual bad records never fail the run.

IMPLEMENTATION RULES:
  - Logic: Load Config -> Override -> Session -> Batch -> Close.

USAGE:
  toyrobot batch commands.txt --trace-csv trace.csv

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/toyrobot/internal/engine"
)

var (
	traceJSON         string
	traceCSV          string
	delimiterOverride string
	batchMetrics      string
	quiet             bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Run a file of robot commands",
	Long: `Runs every record of a command file in order. Records are separated by '|'
(configurable), for example:

  PLACE 0,0,NORTH|MOVE|REPORT

Each record is echoed before it runs, followed by any report it produces.`,
	Example: `  toyrobot batch testData.txt

  # Record what happened to every command
  toyrobot batch testData.txt --trace-csv trace.csv --trace-json trace.jsonl

  # Newline separated file, no echo
  toyrobot batch commands.txt --delimiter '\n' -q`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if delimiterOverride != "" {
			cfg.RecordDelimiter = unescapeDelimiter(delimiterOverride)
		}
		if batchMetrics != "" {
			cfg.MetricsFile = batchMetrics
		}
		if quiet {
			cfg.EchoRecords = false
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		session, err := engine.NewSession(cfg, cmd.OutOrStdout(), engine.TraceFiles{
			JSON: traceJSON,
			CSV:  traceCSV,
		})
		if err != nil {
			return err
		}

		runErr := session.Batch(args[0])
		if err := session.Close(); err != nil && runErr == nil {
			runErr = err
		}
		return runErr
	},
}

// unescapeDelimiter lets shells pass common control characters literally.
func unescapeDelimiter(s string) string {
	switch s {
	case `\n`:
		return "\n"
	case `\t`:
		return "\t"
	}
	return s
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&traceJSON, "trace-json", "", "write a JSON Lines trace of every record")
	batchCmd.Flags().StringVar(&traceCSV, "trace-csv", "", "write a CSV trace of every record")
	batchCmd.Flags().StringVarP(&delimiterOverride, "delimiter", "d", "", "record delimiter (default '|')")
	batchCmd.Flags().StringVar(&batchMetrics, "metrics-file", "", "write command counters in Prometheus text format")
	batchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not echo records")
}
