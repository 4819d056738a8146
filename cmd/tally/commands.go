package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

func newListCmd(opts *app.Options) *cobra.Command {
	var lo app.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cmd.Context(), *opts, cmd.OutOrStdout(), lo)
		},
	}

	cmd.Flags().StringVarP(&lo.Search, "search", "s", "", "only products whose name contains this text")
	cmd.Flags().StringVar(&lo.Sort, "sort", "name", "sort column: name, quantity or price")
	cmd.Flags().BoolVar(&lo.Desc, "desc", false, "sort descending")
	cmd.Flags().IntVarP(&lo.Page, "page", "p", 1, "page to print")

	return cmd
}

func newStatsCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print inventory totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Stats(cmd.Context(), *opts, cmd.OutOrStdout())
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of tally's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Logs(*opts, cmd.OutOrStdout(), lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 40, "number of entries to show")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tally %s\n", version)
		},
	}
}
