package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/use-agent/leekduck/app"
	"github.com/use-agent/leekduck/models"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline [kind...]",
	Short: "Prints the current layout fingerprints as a LEEKDUCK_DRIFT_BASELINES value.",
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(args)
		if err != nil {
			return err
		}
		a, err := app.Build(cfg)
		if err != nil {
			return err
		}

		var pairs []string
		for _, r := range a.Scraper.Run(cmd.Context(), kinds, models.ListQuery{}, true) {
			if !r.Success || r.Drift == nil {
				return fmt.Errorf("%s: no fingerprint", r.Kind)
			}
			pairs = append(pairs, fmt.Sprintf("%s=%s", r.Kind, r.Drift.Fingerprint))
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(pairs, ","))
		return nil
	},
}

func init() {
	baselineCmd.Flags().StringVar(&cfg.Source.OfflineDir, "from", cfg.Source.OfflineDir, "read saved pages from this directory")
	rootCmd.AddCommand(baselineCmd)
}
