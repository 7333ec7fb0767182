package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var statusEnv string

func init() {
	statusCmd.Flags().StringVarP(&statusEnv, "env", "e", "", "environment to inspect (dev, staging, prod)")
}

func resetStatusCommandState() {
	statusEnv = ""
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current project status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		spinner, cleanup := startSpinner("Checking project status...")
		defer cleanup()

		result, err := workflows.Status(cmd.Context(), session, workflows.StatusOptions{Env: statusEnv})
		if err != nil {
			Logger.Errorf("Status failed: %v", err)
			spinner.FinalMSG = formatError("fetch the project status", err)
			return nil
		}

		version := ui.Muted.Sprint("no versions yet")
		if result.ActiveVersion > 0 {
			version = fmt.Sprintf("v%d", result.ActiveVersion)
		}

		spinner.FinalMSG = ui.Info.Sprint("Project:     ") + ui.Highlight.Sprint(result.ProjectName) + "\n" +
			ui.Info.Sprint("Project ID:  ") + result.ProjectID + "\n" +
			ui.Info.Sprint("Environment: ") + ui.Tier(result.Env.String()) + "\n" +
			ui.Info.Sprint("Active:      ") + version
		return nil
	},
}
