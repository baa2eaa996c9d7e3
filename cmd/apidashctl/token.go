package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/apidashio/apidash/pkg/server/middleware"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed access token for a dashboard user",
	Long: `Mint a signed access token for a dashboard user.

The token is signed with the key in APIDASH_TOKEN_SIGNING_KEY and can be
used as a bearer token against the API. Intended for development and
smoke testing.

Example:
  apidashctl token --login alice
  apidashctl token --login alice --user-id 6cbbffdb-6021-4a5c-9cd5-bd4d1e0cbca3 --ttl 24h`,
	Run: func(cmd *cobra.Command, args []string) {
		signingKey := os.Getenv("APIDASH_TOKEN_SIGNING_KEY")
		if signingKey == "" {
			fmt.Fprintln(os.Stderr, "No APIDASH_TOKEN_SIGNING_KEY environment variable set")
			os.Exit(1)
		}

		login, _ := cmd.Flags().GetString("login")
		rawID, _ := cmd.Flags().GetString("user-id")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		userID := uuid.New()
		if rawID != "" {
			parsed, err := uuid.Parse(rawID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid user id %q: %v\n", rawID, err)
				os.Exit(1)
			}
			userID = parsed
		}

		authenticator := middleware.NewJWTAuthenticator([]byte(signingKey))
		token, err := authenticator.Mint(userID, login, ttl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to mint token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("login", "admin", "Login name to embed in the token")
	tokenCmd.Flags().String("user-id", "", "User id to embed in the token (random when omitted)")
	tokenCmd.Flags().Duration("ttl", 8*time.Hour, "Token lifetime")
}
