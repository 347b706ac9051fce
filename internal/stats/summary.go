package stats

import (
	"fmt"

	"github.com/launchdash/launchdash/internal/launch"
)

// Outcome slice labels for a single-site summary.
const (
	LabelFailure = "Failure"
	LabelSuccess = "Success"
)

// Slice is one wedge of the site summary pie.
type Slice struct {
	Label string      `json:"label"`
	Site  launch.Site `json:"site,omitempty"`
	Count int         `json:"count"`
}

// SiteSummary is the aggregate behind the pie chart.
//
// For launch.SiteAll, Slices holds the number of successful launches per
// site (failures are not shown). For a single site, Slices holds the
// failure and success counts, in that order, omitting an outcome that
// never occurred.
type SiteSummary struct {
	Site      launch.Site `json:"site"`
	Slices    []Slice     `json:"slices"`
	Total     int         `json:"total"`
	Successes int         `json:"successes"`
	Rate      Rate        `json:"rate"`
}

// Summarize computes the site summary for the given dropdown value.
func Summarize(ds *launch.Dataset, site launch.Site) (*SiteSummary, error) {
	switch {
	case site == launch.SiteAll:
		return summarizeAll(ds), nil
	case site.Valid():
		return summarizeSite(ds, site), nil
	default:
		return nil, fmt.Errorf("%w: %q", launch.ErrUnknownSite, string(site))
	}
}

func summarizeAll(ds *launch.Dataset) *SiteSummary {
	sites := ds.Sites()
	index := make(map[launch.Site]int, len(sites))
	slices := make([]Slice, len(sites))
	for i, s := range sites {
		index[s] = i
		slices[i] = Slice{Label: s.Label(), Site: s}
	}

	summary := &SiteSummary{Site: launch.SiteAll}
	ds.Each(func(r launch.Record) {
		summary.Total++
		if r.Success {
			summary.Successes++
			slices[index[r.Site]].Count++
		}
	})
	summary.Slices = slices
	summary.Rate = SuccessRate(summary.Successes, summary.Total)

	return summary
}

func summarizeSite(ds *launch.Dataset, site launch.Site) *SiteSummary {
	var failures, successes int
	ds.Each(func(r launch.Record) {
		if r.Site != site {
			return
		}
		if r.Success {
			successes++
		} else {
			failures++
		}
	})

	slices := []Slice{}
	if failures > 0 {
		slices = append(slices, Slice{Label: LabelFailure, Site: site, Count: failures})
	}
	if successes > 0 {
		slices = append(slices, Slice{Label: LabelSuccess, Site: site, Count: successes})
	}

	return &SiteSummary{
		Site:      site,
		Slices:    slices,
		Total:     failures + successes,
		Successes: successes,
		Rate:      SuccessRate(successes, failures+successes),
	}
}

// SiteRates returns the success rate of every site present in the dataset.
func SiteRates(ds *launch.Dataset) map[launch.Site]Rate {
	trials := make(map[launch.Site]int)
	successes := make(map[launch.Site]int)
	ds.Each(func(r launch.Record) {
		trials[r.Site]++
		if r.Success {
			successes[r.Site]++
		}
	})

	rates := make(map[launch.Site]Rate, len(trials))
	for site, n := range trials {
		rates[site] = SuccessRate(successes[site], n)
	}
	return rates
}
