package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/environment"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var runEnv string

func init() {
	runCmd.Flags().StringVarP(&runEnv, "env", "e", "", "environment to inject (dev, staging, prod)")
	// Flags after the command belong to the command, not to edk.
	runCmd.Flags().SetInterspersed(false)
}

func resetRunCommandState() {
	runEnv = ""
}

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Run a command with injected secrets",
	Long: `Fetches the secrets of an environment and runs a command with them set as
environment variables. Every secret is also exposed as REACT_APP_, VITE_ and
NEXT_PUBLIC_ variants for front-end tooling, unless already defined.

The command runs through the system shell; edk exits with its exit code.

Examples:
  edk run "npm start"
  edk run -e prod "node app.js"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting run command")
		spinner, cleanup := startSpinner("Fetching secrets...")

		result, err := workflows.Run(cmd.Context(), session, workflows.RunOptions{
			Env:     runEnv,
			Command: args,
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
			Loaded: func(count int, env environment.Tier) {
				spinner.FinalMSG = ui.Success.Sprint("✓") + " Loaded " + utils.Pluralize(count, "secret") +
					" from " + ui.Tier(env.String())
				cleanup()
			},
		})
		if err != nil {
			Logger.Errorf("Run failed: %v", err)
			spinner.FinalMSG = formatError("run the command", err)
			cleanup()
			return &ExitError{Code: 1}
		}

		Logger.Debugf("Child exited with code %d", result.ExitCode)
		if result.ExitCode != 0 {
			return &ExitError{Code: result.ExitCode}
		}
		return nil
	},
}
