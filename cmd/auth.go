package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gcalmcp/internal/config"
	"gcalmcp/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Obtain a Google refresh token",
		Long: `Run the one-time OAuth authorization flow to obtain a refresh token.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment or
in a .env file. The command prints an authorization URL, waits for the
authorization code, and prints the resulting refresh token to set as
GOOGLE_REFRESH_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd)
		},
	}

	return cmd
}

func runAuth(cmd *cobra.Command) error {
	cfg, err := config.LoadClientOnly()
	if err != nil {
		return err
	}

	authURL := google.AuthCodeURL(cfg.GoogleClientID, cfg.GoogleClientSecret)

	fmt.Fprintf(cmd.OutOrStdout(), `To authorize access to Google Calendar:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account and grant calendar access
3. Copy the authorization code

Enter the authorization code: `, authURL)

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	token, err := google.Exchange(cmd.Context(), cfg.GoogleClientID, cfg.GoogleClientSecret, code)
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `
Authorization complete. Add this to your environment or .env file:

GOOGLE_REFRESH_TOKEN=%s
`, token.RefreshToken)

	return nil
}
