// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/internal/version"
	"github.com/velocityonboard/onboard-service/pkg/status"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version, or the server version with --remote",
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		if !remote {
			fmt.Fprintf(cmd.OutOrStdout(), "App Version: %s\n", version.Version)
			return nil
		}

		c := getClient()
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, c.endpoint+"/version", nil)
		if err != nil {
			return err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("api error (status %d)", resp.StatusCode)
		}

		info := new(status.BuildInfo)
		if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
			return fmt.Errorf("failed to decode version: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Server Version: %s\n", info.Version)
		if info.CommitHash != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", info.CommitHash)
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("remote", false, "Query the server at --http-endpoint")

	rootCmd.AddCommand(versionCmd)
}
