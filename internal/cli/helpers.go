package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/store"
	"github.com/spf13/cobra"
)

// withStore opens the database, executes the function, and handles cleanup.
func withStore(fn func(*store.SQLiteStore) error) error {
	s, err := store.Open(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	return fn(s)
}

// loadDataset reads the launch records from the configured source.
func loadDataset(ctx context.Context) (*launch.Dataset, error) {
	switch cfg.Data.Source {
	case config.SourceSQLite:
		var ds *launch.Dataset
		err := withStore(func(s *store.SQLiteStore) error {
			var err error
			ds, err = s.LoadDataset(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset from %s: %w", cfg.Data.DBPath, err)
		}
		logger.Debug("dataset loaded", "source", cfg.Data.Source, "path", cfg.Data.DBPath, "records", ds.Len())
		return ds, nil
	default:
		ds, err := launch.Load(cfg.Data.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		logger.Debug("dataset loaded", "source", cfg.Data.Source, "path", cfg.Data.CSVPath, "records", ds.Len())
		return ds, nil
	}
}

// selectionFlags are the dashboard inputs exposed on the command line.
type selectionFlags struct {
	site string
	low  float64
	high float64
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.site, "site", "s", string(launch.SiteAll), "launch site code or label, or ALL")
	cmd.Flags().Float64Var(&f.low, "min", 0, "payload lower bound in kg, exclusive (default dataset minimum)")
	cmd.Flags().Float64Var(&f.high, "max", 0, "payload upper bound in kg, exclusive (default dataset maximum)")
}

// resolve builds the selection, taking unset bounds from the dataset.
func (f *selectionFlags) resolve(cmd *cobra.Command, ds *launch.Dataset) (launch.Selection, error) {
	sel := ds.DefaultSelection()

	site, err := launch.ParseSite(f.site)
	if err != nil {
		return sel, err
	}
	sel.Site = site

	if cmd.Flags().Changed("min") {
		sel.Payload.Low = f.low
	}
	if cmd.Flags().Changed("max") {
		sel.Payload.High = f.high
	}
	return sel, sel.Validate()
}

// createOutput opens path for writing, or returns stdout for "" and "-".
func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, f.Close, nil
}

func formatPercent(rate float64) string {
	if rate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}

func formatMass(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
