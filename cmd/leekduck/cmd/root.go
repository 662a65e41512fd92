// Package cmd holds the leekduck command tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/use-agent/leekduck/app"
	"github.com/use-agent/leekduck/config"
)

var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:           "leekduck",
	Short:         "leekduck extracts raid, event, research and egg listings into localized JSON.",
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Logs go to stderr so JSON on stdout stays clean.
		slog.SetDefault(app.NewLogger(cfg.Log, os.Stderr))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Data.Dir, "data-dir", cfg.Data.Dir, "directory with table overrides")
	flags.StringVar(&cfg.Data.Locale, "locale", cfg.Data.Locale, "display locale")
	flags.StringVar(&cfg.Data.Timezone, "timezone", cfg.Data.Timezone, "timezone of times printed without an offset")
	flags.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	flags.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "json or text")
}

// Execute runs the root command, cancelling on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
