package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the stored account settings and the link of the current folder.

The session token is masked.

Examples:
  edk config show
  edk config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		result, err := workflows.ConfigShow(cmd.Context(), session)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			return outputConfigJSON(result)
		}

		table := ui.NewTable("Key", "Value")
		for _, e := range result.Entries {
			value := e.Value
			if value == "" {
				value = ui.Muted.Sprint("not set")
			}
			table.AddRow(string(e.Key), value)
		}
		fmt.Println(ui.Info.Sprint("User Configuration"))
		fmt.Println(table.String())

		fmt.Println()
		if result.Link == nil {
			fmt.Println(ui.Muted.Sprint("This folder is not linked"))
			return nil
		}
		fmt.Println(ui.Info.Sprint("Folder Link ") + ui.Path.Sprint(".envdock.json"))
		fmt.Println("  Project ID:  " + result.Link.ProjectID)
		env := result.Link.Env
		if env == "" {
			env = "dev"
		}
		fmt.Println("  Environment: " + ui.Tier(env))
		return nil
	},
}

func outputConfigJSON(result *workflows.ConfigShowResult) error {
	out := map[string]any{}
	user := map[string]string{}
	for _, e := range result.Entries {
		user[string(e.Key)] = e.Value
	}
	out["user"] = user
	if result.Link != nil {
		out["link"] = result.Link
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("Failed to marshal JSON: %v", err)
	}
	fmt.Println(string(data))
	return nil
}
