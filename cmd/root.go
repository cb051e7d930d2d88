// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	httpEndpoint string
	accessToken  string
)

var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "Onboard Service",
	Long: `Onboard Service runs the agency onboarding API and manages agencies,
invites and super-admins through it.`,
	SilenceUsage: true,
}

// Execute runs the root command, it is called once by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&httpEndpoint, "http-endpoint", "http://localhost:8080", "Onboard API endpoint used by the client commands")
	flags.StringVar(&accessToken, "token", os.Getenv("ONBOARD_TOKEN"), "Bearer token sent with API calls, defaults to $ONBOARD_TOKEN")
}
