package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/secrets"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var (
	pushEnv  string
	pushFile string
)

func init() {
	pushCmd.Flags().StringVarP(&pushEnv, "env", "e", "", "target environment (dev, staging, prod)")
	pushCmd.Flags().StringVarP(&pushFile, "file", "f", ".env", "source file")
}

func resetPushCommandState() {
	pushEnv = ""
	pushFile = ".env"
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload .env file secrets to envdock",
	Long: `Uploads a .env file as the complete secret set of an environment.

Secrets in the cloud that are missing from the file are removed: push is a
full replace, not a merge. You are asked to confirm before anything is sent;
pass --yes to confirm in scripts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting push command")
		spinner, cleanup := startSpinner("Pushing secrets...")
		defer cleanup()

		result, err := workflows.Push(cmd.Context(), withSpinner(spinner), workflows.PushOptions{Env: pushEnv, File: pushFile})
		if err != nil {
			Logger.Errorf("Push failed: %v", err)
			spinner.FinalMSG = formatError("push secrets", err)
			return nil
		}

		if result.State == secrets.Aborted {
			spinner.FinalMSG = ui.Muted.Sprint("Cancelled.")
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Pushed " + utils.Pluralize(result.Count, "secret") +
			" to " + ui.Tier(result.Env.String())
		return nil
	},
}
