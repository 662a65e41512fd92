package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/use-agent/leekduck/app"
	"github.com/use-agent/leekduck/models"
	"github.com/use-agent/leekduck/output"
	"github.com/use-agent/leekduck/webhook"
)

var scrapeOpts struct {
	concurrent bool
	noMerge    bool
	query      models.ListQuery
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [kind...]",
	Short: "Scrapes the given listings (raids, events, research, eggs). No arguments means all of them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(args)
		if err != nil {
			return err
		}
		a, err := app.Build(cfg)
		if err != nil {
			return err
		}

		q := scrapeOpts.query
		merge := !scrapeOpts.noMerge
		q.Merge = &merge

		responses := a.Scraper.Run(cmd.Context(), kinds, q, scrapeOpts.concurrent)
		if err := write(cmd.OutOrStdout(), responses); err != nil {
			return err
		}
		notify(cmd, responses)

		if n := failed(responses); n > 0 {
			return fmt.Errorf("%d of %d listings failed", n, len(responses))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	flags := scrapeCmd.Flags()
	flags.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "write <kind>.json files into this directory instead of stdout")
	flags.StringVarP(&cfg.Output.Format, "format", "f", cfg.Output.Format, "json or table")
	flags.StringVar(&cfg.Source.OfflineDir, "from", cfg.Source.OfflineDir, "read saved <kind>.html pages from this directory instead of fetching")
	flags.StringVar(&cfg.Source.Host, "host", cfg.Source.Host, "site root the listing paths are joined to")
	flags.StringVar(&cfg.Output.WebhookURL, "webhook", cfg.Output.WebhookURL, "POST a signed run summary to this URL")
	flags.BoolVar(&scrapeOpts.concurrent, "concurrent", false, "scrape listings in parallel")
	flags.BoolVar(&scrapeOpts.noMerge, "no-merge", false, "keep current and upcoming events unreconciled")
	flags.StringVar(&scrapeOpts.query.Tier, "tier", "", "only raid bosses of this tier")
	flags.StringVar(&scrapeOpts.query.Label, "label", "", "only current or upcoming events")
	flags.StringVar(&scrapeOpts.query.Category, "category", "", "only research tasks or eggs in this category")
}

func parseKinds(args []string) ([]models.Kind, error) {
	kinds := make([]models.Kind, 0, len(args))
	for _, a := range args {
		k, err := models.ParseKind(a)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func write(stdout io.Writer, responses []*models.ListResponse) error {
	switch cfg.Output.Format {
	case output.FormatTable:
		output.WriteTables(stdout, responses)
		return nil
	case output.FormatJSON, "":
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
	if cfg.Output.Dir == "" {
		return output.WriteJSON(stdout, responses)
	}
	paths, err := output.WriteDir(cfg.Output.Dir, responses)
	for _, p := range paths {
		slog.Info("listing written", "path", p)
	}
	return err
}

func notify(cmd *cobra.Command, responses []*models.ListResponse) {
	url := cfg.Output.WebhookURL
	if url == "" {
		return
	}
	secret := cfg.Output.WebhookSecret
	for _, r := range webhook.Drifted(responses...) {
		ev := webhook.NewEvent(webhook.EventLayoutDrifted, webhook.Summarize(r)[0])
		_ = webhook.DeliverRetry(cmd.Context(), url, secret, ev, webhook.DefaultDelays)
	}
	ev := webhook.NewEvent(webhook.EventRunCompleted, webhook.Summarize(responses...))
	_ = webhook.DeliverRetry(cmd.Context(), url, secret, ev, webhook.DefaultDelays)
}

func failed(responses []*models.ListResponse) int {
	n := 0
	for _, r := range responses {
		if r == nil || !r.Success {
			n++
		}
	}
	return n
}
