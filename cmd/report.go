package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/recallkit/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect saved reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report.json>",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Load(args[0])
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

var reportVerifyCmd = &cobra.Command{
	Use:   "verify <report.json>",
	Short: "Validate a report against the report schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}
		if err := report.Verify(data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportVerifyCmd)
}
