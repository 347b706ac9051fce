package launch_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/launchdash/launchdash/internal/launch"
)

func TestParseSite(t *testing.T) {
	tests := []struct {
		in   string
		want launch.Site
	}{
		{"ALL", launch.SiteAll},
		{"all", launch.SiteAll},
		{"LC40", launch.SiteLC40},
		{"slc40", launch.SiteSLC40},
		{"KSC LC-39A", launch.SiteLC39A},
		{" VAFB SLC-4E ", launch.SiteSLC4E},
	}

	for _, tt := range tests {
		got, err := launch.ParseSite(tt.in)
		if err != nil {
			t.Errorf("ParseSite(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSite(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := launch.ParseSite("LC41"); !errors.Is(err, launch.ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestSiteLabel(t *testing.T) {
	if got := launch.SiteLC39A.Label(); got != "KSC LC-39A" {
		t.Errorf("expected KSC LC-39A, got %s", got)
	}
	if got := launch.SiteAll.Label(); got != "All Sites" {
		t.Errorf("expected All Sites, got %s", got)
	}
}

func TestPayloadRange_ContainsIsExclusive(t *testing.T) {
	r := launch.PayloadRange{Low: 500, High: 1500}

	if r.Contains(500) {
		t.Error("low bound should be excluded")
	}
	if r.Contains(1500) {
		t.Error("high bound should be excluded")
	}
	if !r.Contains(1000) {
		t.Error("interior value should be included")
	}
}

func TestSelection_Validate(t *testing.T) {
	valid := launch.Selection{Site: launch.SiteAll, Payload: launch.PayloadRange{Low: 0, High: 0}}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid selection, got %v", err)
	}

	badSite := launch.Selection{Site: "LC41", Payload: launch.PayloadRange{Low: 0, High: 10}}
	if err := badSite.Validate(); !errors.Is(err, launch.ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}

	badRange := launch.Selection{Site: launch.SiteLC40, Payload: launch.PayloadRange{Low: 10, High: 0}}
	if err := badRange.Validate(); !errors.Is(err, launch.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestNewDataset_DefaultSelection(t *testing.T) {
	ds, err := launch.NewDataset([]launch.Record{
		{Site: launch.SiteLC40, PayloadMassKg: 500, Success: true},
		{Site: launch.SiteLC40, PayloadMassKg: 1500},
		{Site: launch.SiteSLC40, PayloadMassKg: 3000, Success: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sel := ds.DefaultSelection()
	if sel.Site != launch.SiteAll || sel.Payload.Low != 500 || sel.Payload.High != 3000 {
		t.Errorf("unexpected default selection: %+v", sel)
	}
	if diff := cmp.Diff([]launch.Site{launch.SiteLC40, launch.SiteSLC40}, ds.Sites()); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}

	// Records returns a copy.
	recs := ds.Records()
	recs[0].PayloadMassKg = 99999
	if ds.Records()[0].PayloadMassKg != 500 {
		t.Error("dataset was mutated through Records()")
	}
}

func TestNewDataset_Empty(t *testing.T) {
	if _, err := launch.NewDataset(nil); !errors.Is(err, launch.ErrNoRecords) {
		t.Errorf("expected ErrNoRecords, got %v", err)
	}
}
