// Package export writes the current dashboard view to CSV, JSON or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be 'csv', 'json' or 'xlsx'", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// View is one selection together with what the dashboard shows for it.
type View struct {
	Selection launch.Selection
	Summary   *stats.SiteSummary
	Records   []launch.Record
}

// Build computes the view for sel.
func Build(ds *launch.Dataset, sel launch.Selection) (*View, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	summary, err := stats.Summarize(ds, sel.Site)
	if err != nil {
		return nil, err
	}
	records, err := stats.Scatter(ds, sel.Site, sel.Payload)
	if err != nil {
		return nil, err
	}
	return &View{Selection: sel, Summary: summary, Records: records}, nil
}

// row mirrors the input CSV columns so an export can be loaded again.
type row struct {
	FlightNumber           int     `csv:"Flight Number" json:"flight_number"`
	Site                   string  `csv:"Launch Site" json:"launch_site"`
	Class                  int     `csv:"class" json:"class"`
	PayloadMassKg          float64 `csv:"Payload Mass (kg)" json:"payload_mass_kg"`
	BoosterVersion         string  `csv:"Booster Version" json:"booster_version"`
	BoosterVersionCategory string  `csv:"Booster Version Category" json:"booster_version_category"`
}

func rows(records []launch.Record) []row {
	out := make([]row, len(records))
	for i, r := range records {
		out[i] = row{
			FlightNumber:           r.FlightNumber,
			Site:                   r.Site.Label(),
			Class:                  r.Class(),
			PayloadMassKg:          r.PayloadMassKg,
			BoosterVersion:         r.BoosterVersion,
			BoosterVersionCategory: r.BoosterVersionCategory,
		}
	}
	return out
}

// Write encodes v in the given format.
func Write(w io.Writer, format Format, v *View) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, v)
	case FormatJSON:
		return writeJSON(w, v)
	case FormatXLSX:
		return writeXLSX(w, v)
	}
	return fmt.Errorf("invalid format %q", format)
}

func writeCSV(w io.Writer, v *View) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(v.Records) == 0 {
		// header only
		if err := enc.EncodeHeader(row{}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for _, r := range rows(v.Records) {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonExport struct {
	Site    launch.Site         `json:"site"`
	Payload launch.PayloadRange `json:"payload"`
	Summary *stats.SiteSummary  `json:"summary"`
	Records []row               `json:"records"`
}

func writeJSON(w io.Writer, v *View) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonExport{
		Site:    v.Selection.Site,
		Payload: v.Selection.Payload,
		Summary: v.Summary,
		Records: rows(v.Records),
	})
}

const (
	launchesSheet = "Launches"
	summarySheet  = "Summary"
)

func writeXLSX(w io.Writer, v *View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", launchesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := []interface{}{"Flight Number", "Launch Site", "class", "Payload Mass (kg)", "Booster Version", "Booster Version Category"}
	if err := f.SetSheetRow(launchesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range rows(v.Records) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{r.FlightNumber, r.Site, r.Class, r.PayloadMassKg, r.BoosterVersion, r.BoosterVersionCategory}
		if err := f.SetSheetRow(launchesSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	f.SetRowStyle(launchesSheet, 1, 1, headerStyle)
	f.SetColWidth(launchesSheet, "A", "F", 20)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Site", string(v.Selection.Site)},
		{"Payload low (kg)", v.Selection.Payload.Low},
		{"Payload high (kg)", v.Selection.Payload.High},
		{"Launches", v.Summary.Total},
		{"Successes", v.Summary.Successes},
		{"Success rate", v.Summary.Rate.Value},
		{},
		{"Label", "Count"},
	}
	for _, s := range v.Summary.Slices {
		summary = append(summary, []interface{}{s.Label, s.Count})
	}
	for i, line := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &line); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	f.SetColWidth(summarySheet, "A", "A", 22)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
