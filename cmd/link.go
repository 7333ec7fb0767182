package cmd

import (
	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var (
	linkForce   bool
	linkProject string
	linkCreate  string
	linkEnv     string
	linkPull    bool
	linkNoPull  bool
)

func init() {
	linkCmd.Flags().BoolVarP(&linkForce, "force", "f", false, "overwrite an existing link without asking")
	linkCmd.Flags().StringVarP(&linkProject, "project", "p", "", "id of the project to link")
	linkCmd.Flags().StringVar(&linkCreate, "create", "", "create a new project with this name and link it")
	linkCmd.Flags().StringVarP(&linkEnv, "env", "e", "", "default environment for this folder (dev, staging, prod)")
	linkCmd.Flags().BoolVar(&linkPull, "pull", false, "pull secrets after linking without asking")
	linkCmd.Flags().BoolVar(&linkNoPull, "no-pull", false, "do not pull secrets after linking")
	linkCmd.MarkFlagsMutuallyExclusive("project", "create")
	linkCmd.MarkFlagsMutuallyExclusive("pull", "no-pull")
}

func resetLinkCommandState() {
	linkForce = false
	linkProject = ""
	linkCreate = ""
	linkEnv = ""
	linkPull = false
	linkNoPull = false
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link the current directory to an envdock project",
	Long: `Links the current directory to an envdock project by writing .envdock.json.

You choose an existing project or create a new one, and the default
environment used by pull, push and run in this folder. After linking an
existing project you can pull its secrets straight into .env.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting link command")
		spinner, cleanup := startSpinner("Linking project...")
		defer cleanup()

		opts := workflows.LinkOptions{
			Force:      linkForce,
			ProjectID:  linkProject,
			NewProject: linkCreate,
			Env:        linkEnv,
		}
		switch {
		case linkPull:
			opts.Pull = &linkPull
		case linkNoPull:
			pull := false
			opts.Pull = &pull
		}

		result, err := workflows.Link(cmd.Context(), withSpinner(spinner), opts)
		if err != nil {
			Logger.Errorf("Link failed: %v", err)
			spinner.FinalMSG = formatError("link this folder", err)
			return nil
		}
		Logger.Infof("Linked %s to project %s", session.Dir, result.ProjectID)

		name := result.ProjectName
		if name == "" {
			name = result.ProjectID
		}
		msg := ""
		if result.Created {
			msg = ui.Success.Sprint("✓") + " Created project " + ui.Highlight.Sprint(name) + "\n"
		}
		msg += ui.Success.Sprint("✓") + " Linked to " + ui.Highlight.Sprint(name) +
			" (default: " + ui.Tier(result.Env.String()) + ")"

		switch {
		case result.Pulled != nil:
			msg += "\n" + ui.Success.Sprint("✓") + " Pulled " + utils.Pluralize(len(result.Pulled.Secrets), "secret") +
				" into " + ui.Path.Sprint(".env")
		case result.PullErr != nil:
			msg += "\n" + formatError("pull secrets", result.PullErr)
		}
		if result.EnvNotIgnored {
			msg += "\n" + ui.Warning.Sprint("⚠") + " " + ui.Path.Sprint(".env") + " is not in your " +
				ui.Path.Sprint(".gitignore") + ". Add it to avoid committing secrets."
		}
		spinner.FinalMSG = msg
		return nil
	},
}
