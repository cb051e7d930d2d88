// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/admin"
)

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "Manage the platform admin allowlist",
}

var listAdminsCmd = &cobra.Command{
	Use:   "list",
	Short: "List admins",
	RunE: func(cmd *cobra.Command, args []string) error {
		var admins []*types.AdminUser
		if _, err := getClient().do(context.Background(), http.MethodGet, "/admin/admins", nil, &admins); err != nil {
			return fmt.Errorf("failed to list admins: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tCREATED_AT")
		for _, a := range admins {
			fmt.Fprintf(w, "%s\t%s\n", a.Email, a.CreatedAt.Format(time.RFC3339))
		}
		w.Flush()
		return nil
	},
}

var addAdminCmd = &cobra.Command{
	Use:   "add [email]",
	Short: "Add an admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		added := new(types.AdminUser)
		if _, err := getClient().do(context.Background(), http.MethodPost, "/admin/admins", admin.AddAdminRequest{Email: args[0]}, added); err != nil {
			return fmt.Errorf("failed to add admin: %w", err)
		}

		fmt.Printf("Admin added: %s\n", added.Email)
		return nil
	},
}

var removeAdminCmd = &cobra.Command{
	Use:   "remove [email]",
	Short: "Remove an admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := getClient().do(context.Background(), http.MethodDelete, "/admin/admins/"+url.PathEscape(args[0]), nil, nil); err != nil {
			return fmt.Errorf("failed to remove admin: %w", err)
		}

		fmt.Printf("Admin removed: %s\n", args[0])
		return nil
	},
}

func init() {
	adminsCmd.AddCommand(listAdminsCmd)
	adminsCmd.AddCommand(addAdminCmd)
	adminsCmd.AddCommand(removeAdminCmd)
	rootCmd.AddCommand(adminsCmd)
}
