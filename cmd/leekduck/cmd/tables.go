package cmd

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/use-agent/leekduck/app"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspects the lookup tables.",
}

var tablesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Loads and compiles every table, including overrides from --data-dir, and prints their sizes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Offline with an empty dir so no fetch engine is built.
		cfg.Source.OfflineDir = os.TempDir()
		a, err := app.Build(cfg)
		if err != nil {
			return err
		}
		stats := a.Extractor.Stats()

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Table", "Entries"})
		t.AppendRows([]table.Row{
			{"species", stats.Species},
			{"research rules", stats.ResearchRules},
			{"event rules", stats.EventRules},
			{"categories", stats.Categories},
		})
		t.Render()
		return nil
	},
}

func init() {
	tablesCmd.AddCommand(tablesCheckCmd)
	rootCmd.AddCommand(tablesCmd)
}
