package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var configPasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config password command")
		spinner, cleanup := startSpinner("Changing password...")
		defer cleanup()

		err := workflows.ConfigChangePassword(cmd.Context(), withSpinner(spinner), workflows.ConfigPasswordOptions{})
		if err != nil {
			spinner.FinalMSG = formatError("change your password", err)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Password changed"
		return nil
	},
}
