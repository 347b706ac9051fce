package cli

import (
	"fmt"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [csv]",
	Short: "Snapshot a launch CSV into the database",
	Long: `Load a launch CSV and replace the launches stored in the snapshot database.
The dashboard can then run from the database with --source sqlite.

Examples:
  launchdash import spacex_launch_dash.csv --db ./launchdash.db
  launchdash serve --source sqlite --db ./launchdash.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := cfg.Data.CSVPath
	if len(args) == 1 {
		path = args[0]
	}

	ds, err := launch.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	return withStore(func(s *store.SQLiteStore) error {
		if err := s.ReplaceLaunches(cmd.Context(), path, ds.Records()); err != nil {
			return fmt.Errorf("failed to import launches: %w", err)
		}
		logger.Info("launches imported", "source", path, "db", cfg.Data.DBPath, "records", ds.Len())
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d launches from %s into %s\n", ds.Len(), path, cfg.Data.DBPath)
		return nil
	})
}
