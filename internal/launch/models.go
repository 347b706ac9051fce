package launch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownSite  = errors.New("unknown site")
	ErrInvalidRange = errors.New("invalid payload range")
)

// Site is a launch pad code as used by the site dropdown.
type Site string

const (
	SiteAll   Site = "ALL"
	SiteLC40  Site = "LC40"
	SiteSLC40 Site = "SLC40"
	SiteLC39A Site = "LC39A"
	SiteSLC4E Site = "SLC4E"
)

// Sites lists the known launch pads in dropdown order.
var Sites = []Site{SiteLC40, SiteSLC40, SiteLC39A, SiteSLC4E}

// siteLabels maps each code to the value found in the dataset's
// "Launch Site" column.
var siteLabels = map[Site]string{
	SiteLC40:  "CCAFS LC-40",
	SiteSLC40: "CCAFS SLC-40",
	SiteLC39A: "KSC LC-39A",
	SiteSLC4E: "VAFB SLC-4E",
}

func (s Site) String() string { return string(s) }

// Label returns the display label for the site.
func (s Site) Label() string {
	if s == SiteAll {
		return "All Sites"
	}
	if l, ok := siteLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is one of the four launch pads.
func (s Site) Valid() bool {
	_, ok := siteLabels[s]
	return ok
}

// ParseSite accepts either a site code ("LC40", "all") or a dataset
// label ("CCAFS LC-40").
func ParseSite(v string) (Site, error) {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, string(SiteAll)) {
		return SiteAll, nil
	}
	for code, label := range siteLabels {
		if strings.EqualFold(v, string(code)) || strings.EqualFold(v, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSite, v)
}

// Record is a single launch attempt.
type Record struct {
	FlightNumber           int
	Site                   Site
	PayloadMassKg          float64
	Success                bool
	BoosterVersion         string
	BoosterVersionCategory string
}

// Class returns the outcome as the dataset encodes it (1 success, 0 failure).
func (r Record) Class() int {
	if r.Success {
		return 1
	}
	return 0
}

// PayloadRange is an open interval of payload masses in kg.
type PayloadRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether m lies strictly between Low and High.
func (r PayloadRange) Contains(m float64) bool {
	return r.Low < m && m < r.High
}

func (r PayloadRange) Validate() error {
	if r.Low > r.High {
		return fmt.Errorf("%w: low %g is greater than high %g", ErrInvalidRange, r.Low, r.High)
	}
	return nil
}

// Selection is the current state of the dashboard inputs.
type Selection struct {
	Site    Site
	Payload PayloadRange
}

func (s Selection) Validate() error {
	if s.Site != SiteAll && !s.Site.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSite, string(s.Site))
	}
	return s.Payload.Validate()
}
