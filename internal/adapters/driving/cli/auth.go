package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage workspace credentials",
	Long: `Connect folio to your document workspace.

Credentials are an instance URL and an API token, stored in the
configuration file. Create a token in your workspace's account
settings, then run 'folio auth login'.

Examples:
  # Interactive login (token read without echo)
  folio auth login

  # Non-interactive login
  folio auth login --url https://docs.example.com --token ol_api_xxx

  # Show the stored credentials
  folio auth status`,
	RunE: runAuthStatus,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store workspace credentials",
	Long: `Store the workspace URL and API token in the configuration file.

Prompts for anything not provided via flags. The token is verified
against the workspace before it is saved unless --no-verify is set.`,
	RunE: runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credentials",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API token",
	RunE:  runAuthLogout,
}

// Flags for auth login.
var (
	authLoginURL      string
	authLoginToken    string
	authLoginNoVerify bool
)

func init() {
	authLoginCmd.Flags().StringVar(
		&authLoginURL, "url", "", "Workspace URL (e.g. https://docs.example.com)")
	authLoginCmd.Flags().StringVar(
		&authLoginToken, "token", "", "API token (for non-interactive mode)")
	authLoginCmd.Flags().BoolVar(
		&authLoginNoVerify, "no-verify", false, "Skip verifying the token against the workspace")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

//nolint:errcheck // CLI interactive flow
func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	serverURL := strings.TrimSpace(authLoginURL)
	if serverURL == "" {
		current := configStore.GetString("api.url")
		if current != "" {
			cmd.Printf("Workspace URL [%s]: ", current)
		} else {
			cmd.Print("Workspace URL: ")
		}
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			serverURL = input
		} else {
			serverURL = current
		}
	}
	if serverURL == "" {
		return errors.New("workspace URL is required")
	}
	serverURL = strings.TrimRight(serverURL, "/")

	token := strings.TrimSpace(authLoginToken)
	if token == "" {
		cmd.Print("API token (input hidden): ")
		token = readSecret()
		cmd.Println()
	}
	if token == "" {
		return errors.New("API token is required")
	}

	if !authLoginNoVerify && verifyCredentials != nil {
		cmd.Println("Verifying credentials...")
		name, err := verifyCredentials(context.Background(), serverURL, token)
		if err != nil {
			return fmt.Errorf("credential verification failed: %w", err)
		}
		cmd.Printf("Authenticated as %s.\n", name)
	}

	if err := configStore.Set("api.url", serverURL); err != nil {
		return fmt.Errorf("failed to save workspace URL: %w", err)
	}
	if err := configStore.Set("api.token", token); err != nil {
		return fmt.Errorf("failed to save API token: %w", err)
	}

	cmd.Printf("Credentials saved to %s\n", configStore.Path())
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	serverURL := configStore.GetString("api.url")
	token := configStore.GetString("api.token")

	if serverURL == "" && token == "" {
		cmd.Println("Not logged in.")
		cmd.Println("Run 'folio auth login' to connect to your workspace.")
		return nil
	}

	cmd.Printf("Workspace: %s\n", serverURL)
	if token != "" {
		cmd.Printf("Token:     %s...\n", truncate(token, 8))
	} else {
		cmd.Println("Token:     (not set)")
	}
	cmd.Printf("Config:    %s\n", configStore.Path())
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if configStore.GetString("api.token") == "" {
		cmd.Println("No stored token.")
		return nil
	}

	if err := configStore.Set("api.token", ""); err != nil {
		return fmt.Errorf("failed to clear API token: %w", err)
	}

	cmd.Println("API token cleared.")
	return nil
}

// truncate truncates a string to the specified length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Read without echo when stdin is a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
