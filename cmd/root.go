package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/envdock/edk/internal/audit"
	"github.com/envdock/edk/internal/configs"
	logger "github.com/envdock/edk/internal/logging"
	"github.com/envdock/edk/internal/prompt"
	"github.com/envdock/edk/internal/remote"
	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/workflows"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// annotationNoAuth marks commands that run without a stored session.
const annotationNoAuth = "envdock/no-auth"

var (
	verbose   bool
	debug     bool
	apiURL    string
	assumeYes bool
	Logger    logger.Logger

	// session is built once per invocation in PersistentPreRunE.
	session *workflows.Session

	// newSession builds the collaborators of an invocation. Tests replace it.
	newSession = defaultSession

	RootCmd = &cobra.Command{
		Use:   "edk",
		Short: "Manage your secrets securely from the CLI",
		Long: `edk keeps the .env files of a project in sync with envdock.

Link a folder to a project once, then pull and push secrets per environment
(dev, staging, prod), roll back to earlier versions, or run a command with
the secrets injected.

Examples:
  edk login                          # Browser-based auth
  edk login user@example.com         # Manual email auth
  edk link                           # Connect folder to a cloud project
  edk pull                           # Sync secrets to .env
  edk push -e staging                # Upload .env to staging
  edk run -e prod "node app.js"      # Inject prod secrets

Documentation: https://www.envdock.cloud/docs`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Running %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

			s, err := newSession()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to initialize session: %v", err)
			}
			session = s

			if requiresAuth(cmd) && !session.LoggedIn() {
				Logger.Debugf("No stored token, refusing %s", cmd.Name())
				fmt.Println(ui.Error.Sprint("⛔") + " You are not logged in.")
				fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("edk login") + " to authenticate first.")
				return &ExitError{Code: 1}
			}
			return nil
		},
		Annotations: map[string]string{annotationNoAuth: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			banner := figure.NewColorFigure("envdock", "small", "cyan", true)
			banner.Print()
			fmt.Println()
			fmt.Println("Welcome to envdock! Run " + ui.Code.Sprint("edk --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the envdock API base URL")
	RootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmations")
	RootCmd.CompletionOptions.DisableDefaultCmd = true

	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
	RootCmd.AddCommand(whoamiCmd)
	RootCmd.AddCommand(linkCmd)
	RootCmd.AddCommand(pullCmd)
	RootCmd.AddCommand(pushCmd)
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(TeamCmd)
	RootCmd.AddCommand(TokensCmd)
	RootCmd.AddCommand(VersionsCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// defaultSession wires the real filesystem, config file and API client.
func defaultSession() (*workflows.Session, error) {
	fs := afero.NewOsFs()
	settings := configs.UserEnvdockSettings
	Logger.Debugf("Config path: %s", settings.ConfigPath())

	store := configs.NewFileStore(fs, settings.ConfigPath())
	store.Warnf = Logger.Warnf
	token, err := store.Get(configs.KeyToken)
	if err != nil {
		return nil, err
	}

	baseURL := configs.ResolveAPIURL(apiURL, store)
	Logger.Debugf("API base URL: %s", baseURL)
	client, err := remote.New(baseURL, remote.WithToken(token))
	if err != nil {
		return nil, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &workflows.Session{
		Fs:      fs,
		Dir:     wd,
		Config:  store,
		Service: client,
		Prompt:  prompt.New(assumeYes),
		Audit:   audit.NewTrail(fs, settings.AuditLogPath()),
	}, nil
}

// requiresAuth reports whether cmd needs a stored token. The annotation is
// inherited from parent commands; the root itself and help never need one.
func requiresAuth(cmd *cobra.Command) bool {
	root := cmd.Root()
	if cmd == root || cmd.Name() == "help" {
		return false
	}
	for c := cmd; c != nil && c != root; c = c.Parent() {
		if c.Annotations[annotationNoAuth] == "true" {
			return false
		}
	}
	return true
}

// ResetGlobalState resets flags and per-command state between tests.
func ResetGlobalState() {
	verbose = false
	debug = false
	apiURL = ""
	assumeYes = false
	session = nil
	newSession = defaultSession

	resetLoginCommandState()
	resetWhoamiCommandState()
	resetLinkCommandState()
	resetPullCommandState()
	resetPushCommandState()
	resetRunCommandState()
	resetStatusCommandState()
	resetHistoryCommandState()
	resetTeamCommandState()
	resetTokensCommandState()
	resetVersionsCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so values do not leak between tests.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) { flag.Changed = false }
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}
