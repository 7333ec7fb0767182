package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var teamRole string

func init() {
	for _, c := range []*cobra.Command{teamAddCmd, teamUpdateCmd} {
		c.Flags().StringVarP(&teamRole, "role", "r", "", "role to grant ("+strings.Join(workflows.Roles, ", ")+")")
	}

	TeamCmd.AddCommand(teamListCmd)
	TeamCmd.AddCommand(teamAddCmd)
	TeamCmd.AddCommand(teamUpdateCmd)
	TeamCmd.AddCommand(teamRemoveCmd)
}

func resetTeamCommandState() {
	teamRole = ""
}

// TeamCmd groups team membership management. Without a subcommand it lists members.
var TeamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage team members",
	Long: `Lists and manages the members of the linked project.

Examples:
  edk team                              # List members
  edk team add dev@example.com -r editor
  edk team update dev@example.com -r admin
  edk team remove dev@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return teamListCmd.RunE(cmd, args)
	},
}

var teamListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the members of the linked project",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting team list command")
		spinner, cleanup := startSpinner("Fetching team members...")
		defer cleanup()

		result, err := workflows.TeamList(cmd.Context(), session)
		if err != nil {
			spinner.FinalMSG = formatError("list team members", err)
			return nil
		}
		if len(result.Members) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No members found."
			return nil
		}

		table := ui.NewTable("Name", "Email", "Role")
		for _, m := range result.Members {
			table.AddRow(m.Name, m.Email, strings.ToUpper(m.Role))
		}
		spinner.FinalMSG = ui.Info.Sprint("Team Members") + "\n" + table.String()
		return nil
	},
}

var teamAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Invite a user to the linked project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting team add command")
		spinner, cleanup := startSpinner("Adding member...")
		defer cleanup()

		result, err := workflows.TeamAdd(cmd.Context(), withSpinner(spinner), workflows.TeamAddOptions{
			Email: args[0],
			Role:  teamRole,
		})
		if err != nil {
			spinner.FinalMSG = formatError("add members", err)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added " + ui.Highlight.Sprint(result.Email) +
			" as " + strings.ToUpper(result.Role)
		return nil
	},
}

var teamUpdateCmd = &cobra.Command{
	Use:   "update [email]",
	Short: "Change the role of a member",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting team update command")
		spinner, cleanup := startSpinner("Updating member...")
		defer cleanup()

		opts := workflows.TeamUpdateOptions{Role: teamRole}
		if len(args) == 1 {
			opts.Email = args[0]
		}
		result, err := workflows.TeamUpdate(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("update members", err)
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Updated " + ui.Highlight.Sprint(result.Email) +
			" to " + strings.ToUpper(result.Role)
		return nil
	},
}

var teamRemoveCmd = &cobra.Command{
	Use:     "remove [email]",
	Aliases: []string{"rm"},
	Short:   "Remove a member from the linked project",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting team remove command")
		spinner, cleanup := startSpinner("Removing member...")
		defer cleanup()

		opts := workflows.TeamRemoveOptions{}
		if len(args) == 1 {
			opts.Email = args[0]
		}
		result, err := workflows.TeamRemove(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("remove members", err)
			return nil
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Muted.Sprint("Cancelled.")
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed " + ui.Highlight.Sprint(result.Email)
		return nil
	},
}
