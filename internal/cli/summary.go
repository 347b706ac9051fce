package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [site]",
	Short: "Show the site summary behind the pie chart",
	Long: `Show the success summary for a launch site, or for all sites.

For ALL, the counts are successful launches per site. For a single site,
they are the failure and success counts. Without an argument you are asked
to pick a site.

Examples:
  launchdash summary ALL
  launchdash summary "KSC LC-39A"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	var site launch.Site
	if len(args) == 1 {
		if site, err = launch.ParseSite(args[0]); err != nil {
			return err
		}
	} else if site, err = promptSite(); err != nil {
		return err
	}

	summary, err := stats.Summarize(ds, site)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	if site == launch.SiteAll {
		fmt.Fprintln(cmd.OutOrStdout())
		printSiteRates(cmd.OutOrStdout(), ds)
	}
	return nil
}

func promptSite() (launch.Site, error) {
	choices := append([]launch.Site{launch.SiteAll}, launch.Sites...)
	labels := make([]string, len(choices))
	for i, s := range choices {
		labels[i] = s.Label()
	}

	prompt := promptui.Select{
		Label: "Select a Launch Site here",
		Items: labels,
		Size:  len(labels),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return "", err
	}
	return choices[idx], nil
}

func printSummary(out io.Writer, summary *stats.SiteSummary) {
	fmt.Fprintf(out, "SITE: %s\n", summary.Site.Label())
	fmt.Fprintf(out, "LAUNCHES: %d\n", summary.Total)
	fmt.Fprintf(out, "SUCCESSES: %d\n", summary.Successes)
	fmt.Fprintln(out)

	if len(summary.Slices) == 0 {
		fmt.Fprintln(out, "No launches recorded for this site.")
		return
	}

	denom := summary.Total
	if summary.Site == launch.SiteAll {
		denom = summary.Successes
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLICE\tCOUNT\tSHARE")
	for _, sl := range summary.Slices {
		share := "N/A"
		if denom > 0 {
			share = formatPercent(float64(sl.Count) / float64(denom))
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", sl.Label, sl.Count, share)
	}
	w.Flush()
}

// printSiteRates lists every site in the dataset with its Wilson interval.
func printSiteRates(out io.Writer, ds *launch.Dataset) {
	rates := stats.SiteRates(ds)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tLAUNCHES\tSUCCESSES\tRATE\t95% CI")
	for _, site := range ds.Sites() {
		r := rates[site]
		ci := "N/A"
		if r.Trials > 0 {
			ci = fmt.Sprintf("[%.1f%%, %.1f%%]", r.Lower*100, r.Upper*100)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", site.Label(), r.Trials, r.Successes, formatPercent(r.Value), ci)
	}
	w.Flush()
}
