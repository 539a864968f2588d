package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/cmdreview/pkg/formatting"
)

func assetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage blobs served under /assets",
	}

	cmd.AddCommand(assetPutCmd(a))
	cmd.AddCommand(assetRmCmd(a))

	return cmd
}

func assetPutCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "put <key> <file>",
		Short: "Upload a file to blob storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, path := args[0], args[1]

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			if err := a.infra.Storage.Upload(cmd.Context(), key, f, contentType); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s)\n", key, formatting.FormatBytes(info.Size(), 1))
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "override the type inferred from the key")

	return cmd
}

func assetRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <key>",
		Short: "Delete a blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.infra.Storage.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
