package launch

import "errors"

var ErrNoRecords = errors.New("dataset has no records")

// Dataset is the immutable set of launch records the dashboard serves.
// It is built once at startup and only read afterwards.
type Dataset struct {
	records    []Record
	sites      []Site
	minPayload float64
	maxPayload float64
}

// NewDataset copies records and computes the payload bounds.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	ds := &Dataset{
		records:    make([]Record, len(records)),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}
	copy(ds.records, records)

	seen := make(map[Site]bool, len(Sites))
	for _, r := range ds.records {
		if r.PayloadMassKg < ds.minPayload {
			ds.minPayload = r.PayloadMassKg
		}
		if r.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = r.PayloadMassKg
		}
		if !seen[r.Site] {
			seen[r.Site] = true
			ds.sites = append(ds.sites, r.Site)
		}
	}

	return ds, nil
}

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) MinPayload() float64 { return d.minPayload }

func (d *Dataset) MaxPayload() float64 { return d.maxPayload }

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the slice.
func (d *Dataset) Each(fn func(Record)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Sites returns the distinct sites present, in order of first appearance.
func (d *Dataset) Sites() []Site {
	out := make([]Site, len(d.sites))
	copy(out, d.sites)
	return out
}

// DefaultSelection is the initial dashboard state: every site over the
// full observed payload span.
func (d *Dataset) DefaultSelection() Selection {
	return Selection{
		Site:    SiteAll,
		Payload: PayloadRange{Low: d.minPayload, High: d.maxPayload},
	}
}
