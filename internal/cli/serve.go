package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/server"
	"github.com/spf13/cobra"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the launchdash HTTP server.

The server provides:
  - Dashboard page with the site dropdown, payload slider and both charts
  - JSON API for layout, updates, summaries and scatter points
  - Chart images and CSV/JSON/XLSX exports
  - Health check endpoint

Example:
  launchdash serve --port 8050
  launchdash serve --source sqlite --db ./launchdash.db`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (default from config, 8050)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if f := cmd.Flags().Lookup("port"); f != nil && f.Changed {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dataset problems are fatal before the server starts.
	ds, err := loadDataset(ctx)
	if err != nil {
		return err
	}

	srv := server.New(ds, cfg, logger)
	printStartup(cmd, ds)
	return srv.Run(ctx)
}

func printStartup(cmd *cobra.Command, ds *launch.Dataset) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Dashboard running at http://localhost:%d\n", cfg.Server.Port)
	fmt.Fprintf(out, "Loaded %d launches from %d sites (payload %s to %s kg)\n",
		ds.Len(), len(ds.Sites()), formatMass(ds.MinPayload()), formatMass(ds.MaxPayload()))
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  summary [site]   Show the site summary")
	fmt.Fprintln(out, "  scatter          List launches in a payload range")
	fmt.Fprintln(out, "  export           Export a selection as CSV, JSON or XLSX")
	fmt.Fprintln(out, "  render           Render a chart to SVG or PNG")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Press Ctrl+C to stop")
}
