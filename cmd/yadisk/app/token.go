package app

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	yadisk "github.com/natserract/yadisk/pkg/yandex/disk"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

// TokenOptions holds options for the token command
type TokenOptions struct {
	*GlobalOptions
	ClientID string
	Open     bool
}

// openURL is replaced in tests.
var openURL = browser.OpenURL

// NewTokenCommand creates the token command.
//
// The command prints the page where the user grants the application access
// and receives a token for YADISK_TOKEN. With --open the page is also opened
// in the default browser.
func NewTokenCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &TokenOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print the authorization page URL for a new token",
		Example: `  # Print the URL for the application in YADISK_CLIENT_ID
  yadisk token

  # Open the page in a browser
  yadisk token --client-id 0123456789abcdef --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ClientID, "client-id", "", "application id (default: $YADISK_CLIENT_ID)")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "open the page in the default browser")

	return cmd
}

func runToken(cmd *cobra.Command, opts *TokenOptions) error {
	_ = godotenv.Load()

	clientID := opts.ClientID
	if clientID == "" {
		clientID = os.Getenv("YADISK_CLIENT_ID")
	}

	authURL, err := yadisk.AuthorizeURL(clientID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), authURL)

	if opts.Open {
		if err := openURL(authURL); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}
