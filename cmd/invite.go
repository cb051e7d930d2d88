// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/invite"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage agency invite codes",
}

var createInviteCmd = &cobra.Command{
	Use:   "create [agency id]",
	Short: "Create an invite code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		maxUses, _ := cmd.Flags().GetInt("max-uses")
		days, _ := cmd.Flags().GetInt("days")

		inv := new(types.Invite)
		req := invite.CreateInviteRequest{Role: role, MaxUses: maxUses, Days: days}
		if _, err := getClient().do(context.Background(), http.MethodPost, "/agencies/"+args[0]+"/invites", req, inv); err != nil {
			return fmt.Errorf("failed to create invite: %w", err)
		}

		fmt.Printf("Invite created: %s (role %s, ID: %s)\n", inv.Code, inv.Role, inv.ID)
		return nil
	},
}

var listInvitesCmd = &cobra.Command{
	Use:   "list [agency id]",
	Short: "List the invite codes of an agency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var invites []*types.Invite
		if _, err := getClient().do(context.Background(), http.MethodGet, "/agencies/"+args[0]+"/invites", nil, &invites); err != nil {
			return fmt.Errorf("failed to list invites: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tROLE\tSTATUS\tUSES\tEXPIRES_AT")
		for _, inv := range invites {
			uses := fmt.Sprint(inv.Uses)
			if inv.MaxUses != nil {
				uses = fmt.Sprintf("%d/%d", inv.Uses, *inv.MaxUses)
			}
			expires := "never"
			if inv.ExpiresAt != nil {
				expires = inv.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", inv.ID, inv.Code, inv.Role, inv.Status, uses, expires)
		}
		w.Flush()
		return nil
	},
}

var disableInviteCmd = &cobra.Command{
	Use:   "disable [invite id]",
	Short: "Disable an invite code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := getClient().do(context.Background(), http.MethodPost, "/invites/"+args[0]+"/disable", nil, nil); err != nil {
			return fmt.Errorf("failed to disable invite: %w", err)
		}

		fmt.Printf("Invite disabled: %s\n", args[0])
		return nil
	},
}

func init() {
	createInviteCmd.Flags().String("role", string(types.RoleAgent), "Role granted by the code (owner, manager or agent)")
	createInviteCmd.Flags().Int("max-uses", 0, "Maximum redemptions, 0 for unlimited")
	createInviteCmd.Flags().Int("days", 0, "Days until the code expires, 0 for never")

	inviteCmd.AddCommand(createInviteCmd)
	inviteCmd.AddCommand(listInvitesCmd)
	inviteCmd.AddCommand(disableInviteCmd)
	rootCmd.AddCommand(inviteCmd)
}
