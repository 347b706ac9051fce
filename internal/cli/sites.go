package cli

import (
	"errors"
	"fmt"

	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/store"
	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List launch sites",
	Long:  `List the launch sites in the dataset with their success rates.`,
	Args:  cobra.NoArgs,
	RunE:  runSites,
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d launches, payload %s to %s kg\n\n",
		ds.Len(), formatMass(ds.MinPayload()), formatMass(ds.MaxPayload()))
	printSiteRates(out, ds)

	if cfg.Data.Source != config.SourceSQLite {
		return nil
	}

	return withStore(func(s *store.SQLiteStore) error {
		imp, err := s.LastImport(cmd.Context())
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read import history: %w", err)
		}
		fmt.Fprintf(out, "\nSnapshot of %s taken %s\n", imp.Source, imp.ImportedAt.Format("2006-01-02 15:04"))
		return nil
	})
}
