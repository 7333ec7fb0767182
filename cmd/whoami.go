package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var whoamiVerify bool

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiVerify, "verify", false, "check the session against the server")
}

func resetWhoamiCommandState() {
	whoamiVerify = false
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting whoami command")
		spinner, cleanup := startSpinner("Checking session...")
		defer cleanup()

		result, err := workflows.Whoami(cmd.Context(), session, workflows.WhoamiOptions{Verify: whoamiVerify})
		if err != nil {
			spinner.FinalMSG = formatError("check your session", err)
			return nil
		}

		msg := ui.Success.Sprint("✓") + " Logged in as " + ui.Highlight.Sprint(result.Name) + " " + ui.Muted.Sprint(result.Email)
		if result.Verified {
			msg += "\n" + ui.Info.Sprint("→") + " Session verified with the server"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
