package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

func init() {
	TokensCmd.AddCommand(tokensListCmd)
	TokensCmd.AddCommand(tokensCreateCmd)
	TokensCmd.AddCommand(tokensRevokeCmd)
}

func resetTokensCommandState() {}

// TokensCmd groups CI token management. Without a subcommand it lists tokens.
var TokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Manage CI/CD tokens",
	Long: `Lists, creates and revokes the CI tokens of the linked project.

A new token is shown exactly once. Store it in your CI secret store.

Examples:
  edk tokens                 # List tokens
  edk tokens create ci-main
  edk tokens revoke ci-main`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tokensListCmd.RunE(cmd, args)
	},
}

var tokensListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the CI tokens of the linked project",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tokens list command")
		spinner, cleanup := startSpinner("Fetching tokens...")
		defer cleanup()

		result, err := workflows.TokensList(cmd.Context(), session)
		if err != nil {
			spinner.FinalMSG = formatError("list tokens", err)
			return nil
		}
		if len(result.Tokens) == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " No active tokens. Create one with " +
				ui.Code.Sprint("edk tokens create")
			return nil
		}

		table := ui.NewTable("Name", "Prefix", "Created By", "Created")
		for _, t := range result.Tokens {
			table.AddRow(t.Name, t.TokenPrefix+"...", personName(t.CreatedBy), t.CreatedAt.Local().Format("2006-01-02"))
		}
		spinner.FinalMSG = ui.Info.Sprint("CI Tokens") + "\n" + table.String()
		return nil
	},
}

var tokensCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a CI token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tokens create command")
		spinner, cleanup := startSpinner("Creating token...")
		defer cleanup()

		opts := workflows.TokensCreateOptions{}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		result, err := workflows.TokensCreate(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("create tokens", err)
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Token " + ui.Highlight.Sprint(result.Name) + " created\n" +
			"  " + ui.Secret.Sprint(result.Secret) + "\n" +
			ui.Warning.Sprint("⚠") + " Copy this token now. You will not be able to see it again."
		return nil
	},
}

var tokensRevokeCmd = &cobra.Command{
	Use:   "revoke [name]",
	Short: "Revoke a CI token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tokens revoke command")
		spinner, cleanup := startSpinner("Revoking token...")
		defer cleanup()

		opts := workflows.TokensRevokeOptions{}
		if len(args) == 1 {
			opts.Name = args[0]
		}
		result, err := workflows.TokensRevoke(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			spinner.FinalMSG = formatError("revoke tokens", err)
			return nil
		}
		if result.Cancelled {
			spinner.FinalMSG = ui.Muted.Sprint("Cancelled.")
			return nil
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Token " + ui.Highlight.Sprint(result.Name) + " revoked"
		return nil
	},
}
