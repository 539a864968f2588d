package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func corpusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the command corpus",
	}

	cmd.AddCommand(corpusLoadCmd(a))

	return cmd
}

func corpusLoadCmd(a *app) *cobra.Command {
	var blob string

	cmd := &cobra.Command{
		Use:   "load [file.jsonl]",
		Short: "Upsert commands, arguments, and contexts from JSON lines",
		Long: "Reads one JSON object per line from a local file or, with --blob, " +
			"from the configured blob storage. Existing ids are updated in place.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.openSource(cmd, args, blob)
			if err != nil {
				return err
			}
			defer src.Close()

			res, err := a.corpus.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d commands, %d arguments, %d contexts\n",
				res.Commands, res.Arguments, res.Contexts)
			return nil
		},
	}

	cmd.Flags().StringVar(&blob, "blob", "", "read from this storage key instead of a file")

	return cmd
}

func (a *app) openSource(cmd *cobra.Command, args []string, blob string) (io.ReadCloser, error) {
	switch {
	case blob != "" && len(args) > 0:
		return nil, fmt.Errorf("give a file or --blob, not both")
	case blob != "":
		obj, err := a.infra.Storage.Download(cmd.Context(), blob)
		if err != nil {
			return nil, err
		}
		return obj.Body, nil
	case len(args) == 1:
		return os.Open(args[0])
	default:
		return nil, fmt.Errorf("a file or --blob is required")
	}
}
