package launch

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jszwec/csvutil"
)

// Column names of the launch CSV.
const (
	ColumnSite            = "Launch Site"
	ColumnPayload         = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

var requiredColumns = []string{ColumnSite, ColumnPayload, ColumnClass, ColumnBoosterCategory}

var ErrMissingColumn = errors.New("missing required column")

type csvRow struct {
	FlightNumber           int     `csv:"Flight Number,omitempty"`
	Site                   string  `csv:"Launch Site"`
	Class                  int     `csv:"class"`
	PayloadMassKg          float64 `csv:"Payload Mass (kg)"`
	BoosterVersion         string  `csv:"Booster Version,omitempty"`
	BoosterVersionCategory string  `csv:"Booster Version Category"`
}

// Load reads the launch CSV at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes launch records from CSV. The first line must be a header
// containing at least the required columns; extra columns are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.TrimLeadingSpace = true

	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: %w", ErrNoRecords)
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if err := checkHeader(decoder.Header()); err != nil {
		return nil, err
	}

	var rows []csvRow
	// Decode reports io.EOF when the header is the only line.
	if err := decoder.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode launch records: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		rec, err := row.record()
		if err != nil {
			// +2: one for the header, one for 1-based line numbers
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	return NewDataset(records)
}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet
// exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

func (row csvRow) record() (Record, error) {
	site, err := ParseSite(row.Site)
	if err != nil {
		return Record{}, err
	}
	if site == SiteAll {
		return Record{}, fmt.Errorf("%w: %q is not a launch pad", ErrUnknownSite, row.Site)
	}
	if row.Class != 0 && row.Class != 1 {
		return Record{}, fmt.Errorf("class must be 0 or 1, got %d", row.Class)
	}
	if math.IsNaN(row.PayloadMassKg) || math.IsInf(row.PayloadMassKg, 0) {
		return Record{}, fmt.Errorf("payload mass must be a finite number")
	}
	if row.PayloadMassKg < 0 {
		return Record{}, fmt.Errorf("payload mass must not be negative, got %g", row.PayloadMassKg)
	}

	return Record{
		FlightNumber:           row.FlightNumber,
		Site:                   site,
		PayloadMassKg:          row.PayloadMassKg,
		Success:                row.Class == 1,
		BoosterVersion:         row.BoosterVersion,
		BoosterVersionCategory: row.BoosterVersionCategory,
	}, nil
}
