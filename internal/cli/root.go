package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/launchdash/launchdash/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dataPath   string
	dbPath     string
	source     string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "launchdash",
	Short: "SpaceX launch records dashboard",
	Long: `launchdash serves an interactive dashboard over SpaceX launch records:
a success pie per launch site and a payload vs. outcome scatter.

Running without a subcommand starts the server (same as 'launchdash serve').`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runServe, // Default action is to start server
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", getEnvOrDefault("LAUNCHDASH_CONFIG", ""), "config file (default launchdash.yaml if present)")
	flags.StringVar(&dataPath, "data", "", "launch CSV path")
	flags.StringVar(&dbPath, "db", "", "snapshot database path")
	flags.StringVar(&source, "source", "", "dataset source (csv or sqlite)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setup loads configuration, lets explicit flags override it, then
// validates the result once.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Read(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.Data.CSVPath = dataPath
	}
	if flags.Changed("db") {
		c.Data.DBPath = dbPath
	}
	if flags.Changed("source") {
		c.Data.Source = strings.ToLower(source)
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l, err := newLogger(c, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg, logger = c, l
	return nil
}

func newLogger(c *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
