package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/ui"
)

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configEnvCmd)
	ConfigCmd.AddCommand(configProfileCmd)
	ConfigCmd.AddCommand(configPasswordCmd)
	ConfigCmd.AddCommand(configResetCmd)
}

func resetConfigCommandState() {
	resetConfigShowState()
}

// ConfigCmd groups settings management. Without a subcommand it opens a menu.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure CLI settings",
	Long: `Shows and changes envdock settings.

Use these commands to:
  - Show the stored account and the folder's link (config show)
  - Change the default environment of this folder (config env)
  - Update your display name (config profile)
  - Change your password (config password)
  - Wipe all local settings (config reset)

Run without a subcommand to pick one from a menu.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config menu")

		choice, err := session.Prompt.Select("What would you like to configure?", []prompt.Option{
			{Label: "Show current settings", Value: configShowCmd.Name()},
			{Label: "Default environment (for this folder)", Value: configEnvCmd.Name()},
			{Label: "Update profile name", Value: configProfileCmd.Name()},
			{Label: "Change password", Value: configPasswordCmd.Name()},
			{Label: "Reset all settings", Value: configResetCmd.Name()},
		})
		if err != nil {
			fmt.Print(ui.EnsureNewline(formatError("open the menu", err)))
			return nil
		}

		for _, c := range cmd.Commands() {
			if c.Name() == choice {
				return c.RunE(c, nil)
			}
		}
		return nil
	},
}
