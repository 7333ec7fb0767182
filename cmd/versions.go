package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/secrets"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var versionsEnv string

func init() {
	VersionsCmd.PersistentFlags().StringVarP(&versionsEnv, "env", "e", "", "environment (dev, staging, prod)")

	VersionsCmd.AddCommand(versionsListCmd)
	VersionsCmd.AddCommand(versionsRollbackCmd)
}

func resetVersionsCommandState() {
	versionsEnv = ""
}

// VersionsCmd groups secret version management. Without a subcommand it lists versions.
var VersionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage secret versions",
	Long: `Lists the version history of an environment and restores earlier versions.

Every push creates a new version. Rolling back makes an earlier version
active again and mirrors it into .env.

Examples:
  edk versions -e staging
  edk versions rollback            # Pick a version interactively
  edk versions rollback 4 -e prod`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return versionsListCmd.RunE(cmd, args)
	},
}

var versionsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the versions of an environment",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting versions list command")
		spinner, cleanup := startSpinner("Fetching versions...")
		defer cleanup()

		result, err := workflows.Versions(cmd.Context(), session, workflows.VersionsOptions{Env: versionsEnv})
		if err != nil {
			spinner.FinalMSG = formatError("fetch versions", err)
			return nil
		}
		if len(result.History.History) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No version history found for " + ui.Tier(result.Env.String())
			return nil
		}

		table := ui.NewTable("Version", "Created By", "Date", "Status")
		for _, v := range result.History.History {
			status := ui.Muted.Sprint("Archived")
			if v.Version == result.History.ActiveVersion {
				status = ui.Success.Sprint("ACTIVE")
			}
			table.AddRow(fmt.Sprintf("v%d", v.Version), personName(v.CreatedBy),
				v.CreatedAt.Local().Format("2006-01-02 15:04:05"), status)
		}
		spinner.FinalMSG = ui.Info.Sprint("Version History for ") + ui.Tier(result.Env.String()) + "\n" + table.String()
		return nil
	},
}

var versionsRollbackCmd = &cobra.Command{
	Use:     "rollback [version]",
	Aliases: []string{"revoke"},
	Short:   "Restore an earlier version of an environment",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting versions rollback command")

		opts := workflows.RollbackOptions{Env: versionsEnv}
		if len(args) == 1 {
			version, err := strconv.Atoi(strings.TrimPrefix(args[0], "v"))
			if err != nil || version <= 0 {
				fmt.Println(ui.Error.Sprint("✗") + " Invalid version " + ui.Highlight.Sprint(args[0]) +
					": expected a number like 3 or v3")
				return nil
			}
			opts.Version = version
		}

		spinner, cleanup := startSpinner("Restoring version...")
		defer cleanup()

		result, err := workflows.Rollback(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			Logger.Errorf("Rollback failed: %v", err)
			spinner.FinalMSG = formatError("roll back secrets", err)
			return nil
		}
		if result.State == secrets.Aborted {
			spinner.FinalMSG = ui.Muted.Sprint("Cancelled.")
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Rolled back %s to v%d", ui.Tier(result.Env.String()), result.Version)
		if result.Path == "" {
			spinner.FinalMSG += "\n" + ui.Muted.Sprint("No secrets returned; local files were not changed.")
			return nil
		}
		spinner.FinalMSG += "\n" + ui.Info.Sprint("→") + " Updated " + ui.Path.Sprint(displayPath(result.Path)) + " with " +
			utils.Pluralize(len(result.Secrets), "secret")
		return nil
	},
}
