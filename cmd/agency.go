// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/agency"
)

var agencyCmd = &cobra.Command{
	Use:   "agency",
	Short: "Manage agencies (requires an admin token)",
}

var listAgenciesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all agencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")

		var agencies []*types.Agency
		path := fmt.Sprintf("/admin/agencies?page=%d&size=%d", page, size)
		if _, err := getClient().do(context.Background(), http.MethodGet, path, nil, &agencies); err != nil {
			return fmt.Errorf("failed to list agencies: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSLUG\tOWNER\tMEMBERS\tSUSPENDED")
		for _, a := range agencies {
			owner := a.OwnerUserID
			if a.Pending() {
				owner = "pending: " + a.PendingOwnerEmail
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%v\n", a.ID, a.Name, a.Slug, owner, a.MemberCount, a.Suspended)
		}
		w.Flush()
		return nil
	},
}

var provisionAgencyCmd = &cobra.Command{
	Use:   "provision [name] [owner email]",
	Short: "Create an agency on behalf of its owner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug, _ := cmd.Flags().GetString("slug")
		public, _ := cmd.Flags().GetBool("public")

		in := agency.ProvisionInput{
			Input:      agency.Input{Name: args[0], Slug: slug, IsPublic: public},
			OwnerEmail: args[1],
		}

		result := new(agency.ProvisionResult)
		if _, err := getClient().do(context.Background(), http.MethodPost, "/admin/agencies", in, result); err != nil {
			return fmt.Errorf("failed to provision agency: %w", err)
		}

		fmt.Printf("Agency provisioned: %s (ID: %s, owner %s)\n", result.Agency.Name, result.Agency.ID, result.Status)
		if result.RecoveryLink != "" {
			fmt.Printf("Send the owner this link to set a password: %s\n", result.RecoveryLink)
		}
		return nil
	},
}

var suspendAgencyCmd = &cobra.Command{
	Use:   "suspend [id]",
	Short: "Suspend an agency, or resume it with --resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resume, _ := cmd.Flags().GetBool("resume")

		msg, err := getClient().do(context.Background(), http.MethodPost, "/admin/agencies/"+args[0]+"/suspend", agency.SuspendRequest{Suspended: !resume}, nil)
		if err != nil {
			return fmt.Errorf("failed to update agency: %w", err)
		}

		fmt.Printf("%s: %s\n", args[0], msg)
		return nil
	},
}

func init() {
	listAgenciesCmd.Flags().Int("page", 1, "Page number")
	listAgenciesCmd.Flags().Int("size", 0, "Page size, 0 for the server default")

	provisionAgencyCmd.Flags().String("slug", "", "Agency slug, derived from the name when empty")
	provisionAgencyCmd.Flags().Bool("public", false, "Publish the tenant page under the slug")

	suspendAgencyCmd.Flags().Bool("resume", false, "Lift a suspension instead")

	agencyCmd.AddCommand(listAgenciesCmd)
	agencyCmd.AddCommand(provisionAgencyCmd)
	agencyCmd.AddCommand(suspendAgencyCmd)
	rootCmd.AddCommand(agencyCmd)
}
