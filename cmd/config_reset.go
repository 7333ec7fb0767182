package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all settings",
	Long: `Logs out, deletes the global config file and removes the link of the
current folder. Your .env files are left alone.`,
	Args: cobra.NoArgs,
	// Reset is how a broken config gets cleaned up, so it runs logged out.
	Annotations: map[string]string{annotationNoAuth: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config reset command")
		spinner, cleanup := startSpinner("Resetting settings...")
		defer cleanup()

		result, err := workflows.ConfigReset(cmd.Context(), withSpinner(spinner))
		if err != nil {
			spinner.FinalMSG = formatError("reset settings", err)
			return nil
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Muted.Sprint("Cancelled.")
			return nil
		}

		msg := ui.Success.Sprint("✓") + " Global config cleared"
		if result.RemovedLink {
			msg += "\n" + ui.Success.Sprint("✓") + " Removed " + ui.Path.Sprint(".envdock.json")
		}
		msg += "\n" + ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk login") + " to start again"
		spinner.FinalMSG = msg
		return nil
	},
}
