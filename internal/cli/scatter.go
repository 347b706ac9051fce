package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
	"github.com/spf13/cobra"
)

var scatterSel selectionFlags

var scatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "List launches behind the payload scatter",
	Long: `List the launches whose payload lies strictly between --min and --max.

Examples:
  launchdash scatter
  launchdash scatter --site LC40 --min 2000 --max 6000`,
	Args: cobra.NoArgs,
	RunE: runScatter,
}

func init() {
	scatterSel.register(scatterCmd)
	rootCmd.AddCommand(scatterCmd)
}

func runScatter(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	sel, err := scatterSel.resolve(cmd, ds)
	if err != nil {
		return err
	}

	records, err := stats.Scatter(ds, sel.Site, sel.Payload)
	if err != nil {
		return err
	}

	printScatter(cmd.OutOrStdout(), sel, records)
	return nil
}

func printScatter(out io.Writer, sel launch.Selection, records []launch.Record) {
	fmt.Fprintf(out, "SITE: %s\n", sel.Site.Label())
	fmt.Fprintf(out, "PAYLOAD: %s < kg < %s\n", formatMass(sel.Payload.Low), formatMass(sel.Payload.High))
	fmt.Fprintln(out)

	if len(records) == 0 {
		fmt.Fprintln(out, "No launches match this selection.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FLIGHT\tSITE\tPAYLOAD (KG)\tCLASS\tBOOSTER")
	for _, r := range records {
		flight := "-"
		if r.FlightNumber > 0 {
			flight = fmt.Sprintf("%d", r.FlightNumber)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			flight,
			r.Site.Label(),
			formatMass(r.PayloadMassKg),
			r.Class(),
			r.BoosterVersionCategory,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d launches\n", len(records))
}
