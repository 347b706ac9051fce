package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const sampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,1,500,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,1500,F9 v1.0  B0004,v1.1
3,CCAFS SLC-40,1,3000,F9 v1.1,v1.0
`

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "launches.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("failed to write sample: %v", err)
	}
	return path
}

// resetFlags clears values left behind by a previous Execute.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func assertContains(t *testing.T, output string, expectations ...string) {
	t.Helper()
	for _, expected := range expectations {
		if !strings.Contains(output, expected) {
			t.Errorf("output missing expected content: %s\n\nGot:\n%s", expected, output)
		}
	}
}

func TestSummary_AllSites(t *testing.T) {
	data := writeSample(t)

	output, err := executeCommand(t, "summary", "ALL", "--data", data)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	assertContains(t, output,
		"SITE: All Sites",
		"LAUNCHES: 3",
		"SUCCESSES: 2",
		"CCAFS LC-40",
		"CCAFS SLC-40",
		"95% CI",
	)
}

func TestSummary_SingleSite(t *testing.T) {
	data := writeSample(t)

	output, err := executeCommand(t, "summary", "lc40", "--data", data)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	assertContains(t, output, "SITE: CCAFS LC-40", "Failure", "Success", "50.0%")
	if strings.Contains(output, "95% CI") {
		t.Error("single-site summary should not list every site")
	}
}

func TestSummary_UnknownSite(t *testing.T) {
	data := writeSample(t)

	_, err := executeCommand(t, "summary", "LC41", "--data", data)
	if !errors.Is(err, launch.ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestSummary_MissingData(t *testing.T) {
	_, err := executeCommand(t, "summary", "ALL", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestScatter_BoundsExclusive(t *testing.T) {
	data := writeSample(t)

	output, err := executeCommand(t, "scatter", "--data", data, "--min", "500", "--max", "1500")
	if err != nil {
		t.Fatalf("scatter failed: %v", err)
	}
	assertContains(t, output, "No launches match this selection.")
}

func TestScatter_Site(t *testing.T) {
	data := writeSample(t)

	output, err := executeCommand(t, "scatter", "--data", data, "--site", "LC40", "--min", "0", "--max", "10000")
	if err != nil {
		t.Fatalf("scatter failed: %v", err)
	}
	assertContains(t, output, "PAYLOAD: 0 < kg < 10000", "FLIGHT", "v1.1", "2 launches")
}

func TestScatter_InvertedRange(t *testing.T) {
	data := writeSample(t)

	_, err := executeCommand(t, "scatter", "--data", data, "--min", "9000", "--max", "100")
	if !errors.Is(err, launch.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestExport_CSVRoundTrip(t *testing.T) {
	data := writeSample(t)
	out := filepath.Join(t.TempDir(), "lc40.csv")

	if _, err := executeCommand(t, "export", "--data", data, "--site", "LC40", "--min", "0", "--max", "10000", "--out", out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	ds, err := launch.Load(out)
	if err != nil {
		t.Fatalf("exported CSV does not load: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("expected 2 exported launches, got %d", ds.Len())
	}
}

func TestExport_JSONToStdout(t *testing.T) {
	data := writeSample(t)

	output, err := executeCommand(t, "export", "--data", data, "--format", "json")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !json.Valid([]byte(output)) {
		t.Errorf("expected JSON output, got:\n%s", output)
	}
}

func TestExport_InvalidFormat(t *testing.T) {
	data := writeSample(t)

	if _, err := executeCommand(t, "export", "--data", data, "--format", "pdf"); err == nil {
		t.Error("expected error for pdf format")
	}
}

func TestRender_PieSVG(t *testing.T) {
	data := writeSample(t)
	out := filepath.Join(t.TempDir(), "pie.svg")

	if _, err := executeCommand(t, "render", "pie", "--data", data, "--out", out); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Error("expected SVG document")
	}
}

func TestRender_EmptySelection(t *testing.T) {
	data := writeSample(t)

	_, err := executeCommand(t, "render", "scatter", "--data", data, "--site", "SLC4E", "--out", filepath.Join(t.TempDir(), "x.svg"))
	if err == nil || !strings.Contains(err.Error(), "no launches match") {
		t.Errorf("expected empty selection error, got %v", err)
	}
}

func TestRender_UnknownChart(t *testing.T) {
	data := writeSample(t)

	if _, err := executeCommand(t, "render", "bar", "--data", data); err == nil {
		t.Error("expected error for unknown chart")
	}
}

func TestImport_ThenServeFromSnapshot(t *testing.T) {
	data := writeSample(t)
	db := filepath.Join(t.TempDir(), "launchdash.db")

	output, err := executeCommand(t, "import", data, "--db", db)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	assertContains(t, output, "Imported 3 launches")

	output, err = executeCommand(t, "sites", "--source", "sqlite", "--db", db)
	if err != nil {
		t.Fatalf("sites failed: %v", err)
	}
	assertContains(t, output, "3 launches, payload 500 to 3000 kg", "CCAFS SLC-40", "Snapshot of "+data)
}

func TestSites_EmptySnapshot(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")

	if _, err := executeCommand(t, "sites", "--source", "sqlite", "--db", db); err == nil {
		t.Error("expected error for empty snapshot")
	}
}

func TestSetup_InvalidSource(t *testing.T) {
	if _, err := executeCommand(t, "sites", "--source", "postgres"); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestSetup_FlagCorrectsInvalidEnvSource(t *testing.T) {
	t.Setenv("LAUNCHDASH_SOURCE", "postgres")
	data := writeSample(t)

	output, err := executeCommand(t, "sites", "--source", "csv", "--data", data)
	if err != nil {
		t.Fatalf("expected --source to override the environment, got %v", err)
	}
	assertContains(t, output, "3 launches")
}

func TestSetup_InvalidEnvSourceWithoutFlag(t *testing.T) {
	t.Setenv("LAUNCHDASH_SOURCE", "postgres")
	data := writeSample(t)

	if _, err := executeCommand(t, "sites", "--data", data); err == nil {
		t.Error("expected error for invalid source from environment")
	}
}

func TestNewLogger(t *testing.T) {
	c := config.Default()
	c.Log.Format = "json"
	c.Log.Level = "debug"

	var buf bytes.Buffer
	l, err := newLogger(c, &buf)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	l.Debug("hello", "site", "LC40")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q", buf.String())
	}
	if entry["msg"] != "hello" || entry["site"] != "LC40" {
		t.Errorf("unexpected log entry: %v", entry)
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{0, "0%"},
		{0.5, "50.0%"},
		{1, "100.0%"},
		{0.0833, "8.3%"},
	}

	for _, tc := range tests {
		if got := formatPercent(tc.rate); got != tc.expected {
			t.Errorf("formatPercent(%v) = %s, want %s", tc.rate, got, tc.expected)
		}
	}
}
