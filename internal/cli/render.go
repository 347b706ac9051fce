package cli

import (
	"errors"
	"fmt"

	"github.com/launchdash/launchdash/internal/binding"
	"github.com/launchdash/launchdash/internal/figure"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOut    string
	renderWidth  int
	renderHeight int
	renderSel    selectionFlags
)

var renderCmd = &cobra.Command{
	Use:   "render <pie|scatter>",
	Short: "Render a dashboard chart to SVG or PNG",
	Long: `Render one of the dashboard charts for a selection.

Examples:
  launchdash render pie --site ALL --out pie.svg
  launchdash render scatter --min 0 --max 10000 --format png --out scatter.png`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pie", "scatter"},
	RunE:      runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "svg", "image format (svg or png)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "image width in pixels (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "image height in pixels (default from config)")
	renderSel.register(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

func chartOutput(name string) (string, error) {
	switch name {
	case "pie":
		return binding.OutputPie, nil
	case "scatter":
		return binding.OutputScatter, nil
	default:
		return "", fmt.Errorf("unknown chart %q: must be 'pie' or 'scatter'", name)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	output, err := chartOutput(args[0])
	if err != nil {
		return err
	}
	format, err := figure.ParseFormat(renderFormat)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	sel, err := renderSel.resolve(cmd, ds)
	if err != nil {
		return err
	}

	fig, err := binding.New(ds).Output(output, sel)
	if err != nil {
		return err
	}
	if fig.Empty() {
		return fmt.Errorf("%s: no launches match this selection", fig.Title)
	}

	size := figure.Size{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	if renderWidth > 0 {
		size.Width = renderWidth
	}
	if renderHeight > 0 {
		size.Height = renderHeight
	}

	w, closeFn, err := createOutput(cmd, renderOut)
	if err != nil {
		return err
	}
	if err := figure.Render(fig, format, size, w); err != nil {
		closeFn()
		if errors.Is(err, figure.ErrEmptyFigure) {
			return fmt.Errorf("%s: no launches match this selection", fig.Title)
		}
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return closeFn()
}
