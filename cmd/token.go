// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token for the admin commands using the client credentials flow",
	Long: `Get an access token for the admin commands using the client credentials flow.
The server must run with AUTHENTICATION_METHOD=jwt and accept the client as an
allowed subject or through the required scope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientID, _ := cmd.Flags().GetString("client-id")
		clientSecret, _ := cmd.Flags().GetString("client-secret")
		tokenURL, _ := cmd.Flags().GetString("token-url")
		issuerURL, _ := cmd.Flags().GetString("issuer-url")
		scopes, _ := cmd.Flags().GetStringSlice("scopes")
		export, _ := cmd.Flags().GetBool("export")

		if tokenURL == "" {
			if issuerURL == "" {
				return fmt.Errorf("either --token-url or --issuer-url must be provided")
			}

			provider, err := oidc.NewProvider(ctx, issuerURL)
			if err != nil {
				return fmt.Errorf("failed to discover issuer %s: %w", issuerURL, err)
			}
			tokenURL = provider.Endpoint().TokenURL
		}

		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
		}

		token, err := config.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}

		if export {
			fmt.Printf("export ONBOARD_TOKEN=%s\n", token.AccessToken)
			return nil
		}

		fmt.Println(token.AccessToken)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("client-id", "", "Client ID")
	tokenCmd.Flags().String("client-secret", "", "Client Secret")
	tokenCmd.Flags().String("token-url", "", "Token URL")
	tokenCmd.Flags().String("issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSlice("scopes", []string{}, "Scopes (comma-separated)")
	tokenCmd.Flags().Bool("export", false, "Print a shell export line for the --token default")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")

	rootCmd.AddCommand(tokenCmd)
}
