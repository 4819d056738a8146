package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tally: %v\n", err)
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. Without a subcommand tally opens the
// dashboard.
func newRootCmd() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:           "tally",
		Short:         "Terminal dashboard for a product inventory API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/tally/config.toml)")
	flags.StringVar(&opts.APIURL, "api-url", "", "inventory API base URL, overrides api_url")
	rootCmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "prefs file (default ~/.config/tally/prefs.toml)")
	rootCmd.Flags().IntVar(&opts.RefreshSeconds, "refresh", 0, "refresh interval in seconds; negative disables (default from config)")

	rootCmd.AddCommand(newListCmd(&opts))
	rootCmd.AddCommand(newStatsCmd(&opts))
	rootCmd.AddCommand(newLogsCmd(&opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
