package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"voxsched/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account string
		code    string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Google account and cache its OAuth token",
		Long: `Authorize access to a Google account's calendar.

Run without --code to print the authorization URL. Open it in a browser,
approve access, then run the command again with the code Google displays:

  voxsched auth
  voxsched auth --code 4/0AX4XfW...

Tokens are cached on disk per account, so this only needs to run once per
account. Use --account to authorize additional accounts (e.g. "work").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, account, code)
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to store the token under")
	cmd.Flags().StringVar(&code, "code", "", "Authorization code from the Google consent page")

	return cmd
}

func runAuth(cmd *cobra.Command, account, code string) error {
	if code == "" {
		url := google.GetAuthURLForAccount(account)
		fmt.Printf("Open the following URL in your browser and approve access:\n\n")
		fmt.Printf("  %s\n\n", url)
		fmt.Printf("Then run: voxsched auth --account %s --code <code>\n", account)
		return nil
	}

	if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Printf("Token saved for account %q.\n", account)
	return nil
}
