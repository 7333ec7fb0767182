package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var (
	historyLocal bool
	historyLimit int
)

func init() {
	historyCmd.Flags().BoolVar(&historyLocal, "local", false, "show operations recorded on this machine instead of the server log")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the most recent N entries")
}

func resetHistoryCommandState() {
	historyLocal = false
	historyLimit = 0
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the audit log of secret changes",
	Long: `Shows who changed the linked project's secrets and when.

With --local, shows the link, pull, push, rollback and reset operations run
from this machine instead. The local log works without a link.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting history command")
		spinner, cleanup := startSpinner("Fetching history...")
		defer cleanup()

		result, err := workflows.History(cmd.Context(), session, workflows.HistoryOptions{
			Local: historyLocal,
			Limit: historyLimit,
		})
		if err != nil {
			Logger.Errorf("History failed: %v", err)
			spinner.FinalMSG = formatError("fetch the history", err)
			return nil
		}

		if len(result.Events) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No history found."
			return nil
		}

		table := ui.NewTable("Action", "User", "Details", "Date")
		for _, e := range result.Events {
			table.AddRow(e.Action, e.User, e.Details, e.At.Local().Format("2006-01-02 15:04:05"))
		}

		title := "Audit Log"
		if result.Local {
			title = "Local Audit Log"
		}
		spinner.FinalMSG = ui.Info.Sprint(fmt.Sprintf("%s (%d entries)", title, len(result.Events))) + "\n" + table.String()
		return nil
	},
}
