package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var configProfileCmd = &cobra.Command{
	Use:   "profile [name]",
	Short: "Update your display name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config profile command")
		spinner, cleanup := startSpinner("Updating profile...")
		defer cleanup()

		opts := workflows.ConfigProfileOptions{}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		result, err := workflows.ConfigUpdateProfile(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("update your profile", err)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Display name updated to " + ui.Highlight.Sprint(result.Name)
		return nil
	},
}
