package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var (
	pullEnv  string
	pullFile string
)

func init() {
	pullCmd.Flags().StringVarP(&pullEnv, "env", "e", "", "environment to pull (dev, staging, prod)")
	pullCmd.Flags().StringVarP(&pullFile, "file", "f", "", "file to write instead of .env")
}

func resetPullCommandState() {
	pullEnv = ""
	pullFile = ""
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download secrets to a .env file",
	Long: `Downloads the secrets of an environment and replaces the local .env file.

The environment is taken from --env, then the folder's default in
.envdock.json, then dev. The file is only touched once the download
succeeded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")
		spinner, cleanup := startSpinner("Pulling secrets...")
		defer cleanup()

		result, err := workflows.Pull(cmd.Context(), session, workflows.PullOptions{Env: pullEnv, File: pullFile})
		if err != nil {
			Logger.Errorf("Pull failed: %v", err)
			spinner.FinalMSG = formatError("pull secrets", err)
			return nil
		}
		Logger.Infof("Wrote %d secrets to %s", len(result.Secrets), result.Path)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Pulled " + utils.Pluralize(len(result.Secrets), "secret") +
			" from " + ui.Tier(result.Env.String()) + " into " + ui.Path.Sprint(displayPath(result.Path))
		return nil
	},
}
