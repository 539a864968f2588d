package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/cmdreview/internal/reporting"
)

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <validator-id>",
		Short: "Print a validator's classification counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid validator id %q", args[0])
			}

			s, err := a.reporting.Stats(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dynamic:   %d\n", s.Dynamic)
			fmt.Fprintf(out, "static:    %d\n", s.Static)
			fmt.Fprintf(out, "processed: %d\n", s.Processed)
			fmt.Fprintf(out, "remaining: %d\n", s.Remaining)
			fmt.Fprintf(out, "total:     %d\n", s.Total)
			return nil
		},
	}
}

func recentCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Print recently active validators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.reporting.RecentActivity(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLAST SEEN")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\n", r.ID, r.Name, r.Label)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", reporting.DefaultRecentLimit, "maximum rows")

	return cmd
}
