package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var configEnvCmd = &cobra.Command{
	Use:   "env [dev|staging|prod]",
	Short: "Set the default environment of this folder",
	Long: `Changes the default environment recorded in .envdock.json.

pull, push, run and versions use it when --env is not given. Other fields
in .envdock.json are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config env command")
		spinner, cleanup := startSpinner("Updating default environment...")
		defer cleanup()

		opts := workflows.ConfigSetEnvOptions{}
		if len(args) == 1 {
			opts.Env = args[0]
		}
		result, err := workflows.ConfigSetEnv(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("update the default environment", err)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Default environment set to " + ui.Tier(result.Env.String())
		return nil
	},
}
