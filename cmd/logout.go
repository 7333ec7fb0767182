package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	kerrors "github.com/envdock/edk/internal/errors"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var logoutCmd = &cobra.Command{
	Use:         "logout",
	Short:       "Log out and clear credentials",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoAuth: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting logout command")
		spinner, cleanup := startSpinner("Logging out...")
		defer cleanup()

		result, err := workflows.Logout(cmd.Context(), session)
		if errors.Is(err, kerrors.ErrNotLoggedIn) {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " You are not logged in."
			return nil
		}
		if err != nil {
			spinner.FinalMSG = formatError("log out", err)
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Logged out " + ui.Highlight.Sprint(result.Email)
		return nil
	},
}
