/*
PURPOSE:
  Defines the 'check' subcommand.
  Helps debug command files before running them.

REQUIREMENTS:
  User-specified:
  - Show which records would be dropped as malformed.

  Implementation-discovered:
  - Useful validation step before a full batch run.
  - Only syntax is checked; bounds depend on the robot's state.

ARCHITECTURE INTEGRATION:
  - Calls: internal/parser.Parse()

ERROR HANDLING:
  - Returns error if the file cannot be read.
  - With --strict, returns error if any record is malformed.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  toyrobot check commands.txt

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/parser/parser.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daryltucker/toyrobot/internal/parser"
)

var strict bool

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse a command file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if delimiterOverride != "" {
			cfg.RecordDelimiter = unescapeDelimiter(delimiterOverride)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read command file: %w", err)
		}

		out := cmd.OutOrStdout()
		bad := 0
		for i, record := range strings.Split(string(data), cfg.RecordDelimiter) {
			record = strings.Trim(record, "\r\n")
			if record == "" {
				continue
			}
			c, err := parser.Parse(record)
			if err != nil {
				bad++
				fmt.Fprintf(out, "%d\t%q\tERROR %v\n", i+1, record, err)
				continue
			}
			fmt.Fprintf(out, "%d\t%q\t%s\n", i+1, record, c)
		}

		if bad > 0 && strict {
			return fmt.Errorf("%d malformed record(s) in %s", bad, args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&delimiterOverride, "delimiter", "d", "", "record delimiter (default '|')")
	checkCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if any record is malformed")
}
