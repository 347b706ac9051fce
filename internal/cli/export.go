package cli

import (
	"fmt"

	"github.com/launchdash/launchdash/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	exportSel    selectionFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the launches of a selection",
	Long: `Export the launches and site summary of a selection in CSV, JSON or XLSX format.

CSV output uses the input column names, so it can be loaded again.

Examples:
  launchdash export --site LC39A --format csv > lc39a.csv
  launchdash export --min 2000 --max 8000 --format xlsx --out launches.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format (csv, json or xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportSel.register(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	sel, err := exportSel.resolve(cmd, ds)
	if err != nil {
		return err
	}

	view, err := export.Build(ds, sel)
	if err != nil {
		return err
	}

	w, closeFn, err := createOutput(cmd, exportOut)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, view); err != nil {
		closeFn()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := closeFn(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	logger.Debug("export written", "format", format, "site", sel.Site, "records", len(view.Records))
	return nil
}
