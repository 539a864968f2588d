package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/cmdreview/internal/users"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

func userCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(userAddCmd(a))
	cmd.AddCommand(userListCmd(a))

	return cmd
}

func userAddCmd(a *app) *cobra.Command {
	var in users.CreateCommand

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account with any role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s #%d %s <%s>\n", u.Role, u.ID, u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&in.Role, "role", auth.RoleValidator, "validator, viewer, or admin")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func userListCmd(a *app) *cobra.Command {
	var (
		role   string
		search string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pagination.PageRequest{Page: page}
			if search != "" {
				req.Search = &search
			}
			req.Normalize(a.cfg.API.Pagination)

			var filters users.Filters
			if role != "" {
				filters.Role = &role
			}

			result, err := a.users.List(cmd.Context(), req, filters)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCURSOR")
			for _, u := range result.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", u.ID, u.Name, u.Email, u.Role, u.Cursor)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	cmd.Flags().StringVar(&search, "search", "", "match name or email")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}
