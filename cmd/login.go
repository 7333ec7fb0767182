package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/envdock/edk/internal/ui"
	"github.com/envdock/edk/internal/utils"
	"github.com/envdock/edk/internal/workflows"
)

var loginPasswordStdin bool

func init() {
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false, "read the password from stdin")
}

func resetLoginCommandState() {
	loginPasswordStdin = false
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Login to envdock",
	Long: `Authenticates this machine with envdock.

Without an email, a browser window opens on the envdock login page and the
CLI waits for it to redirect back to a local callback. With an email, you are
asked for your password instead.

Examples:
  # Browser-based login
  edk login

  # Manual login
  edk login user@example.com

  # Non-interactive login
  echo "$PASSWORD" | edk login user@example.com --password-stdin`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationNoAuth: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting login command")

		if len(args) == 0 {
			return browserLogin(cmd)
		}

		password := ""
		if loginPasswordStdin {
			var err error
			password, err = utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read password: %v", err)
			}
		}

		spinner, cleanup := startSpinner("Logging in...")
		defer cleanup()

		result, err := workflows.Login(cmd.Context(), withSpinner(spinner), workflows.LoginOptions{
			Email:    args[0],
			Password: password,
		})
		if err != nil {
			Logger.Errorf("Login failed: %v", err)
			spinner.FinalMSG = formatError("log in", err)
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Logged in as " + ui.Highlight.Sprint(result.Name) +
			" " + ui.Muted.Sprint(result.Email)
		return nil
	},
}

func browserLogin(cmd *cobra.Command) error {
	spinner, cleanup := startSpinner("Waiting for browser login...")
	defer cleanup()

	result, err := workflows.BrowserLogin(cmd.Context(), withSpinner(spinner), workflows.BrowserLoginOptions{
		Waiting: func(target string) {
			Logger.Debugf("Login URL: %s", target)
			resume := pauseSpinner(spinner)
			fmt.Println(ui.Info.Sprint("→") + " Opening your browser to log in. If it does not open, visit:")
			fmt.Println("  " + target)
			resume()
		},
	})
	if err != nil {
		Logger.Errorf("Browser login failed: %v", err)
		spinner.FinalMSG = formatError("log in", err)
		return nil
	}

	spinner.FinalMSG = ui.Success.Sprint("✓") + " Logged in as " + ui.Highlight.Sprint(result.Name)
	return nil
}
