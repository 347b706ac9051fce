package stats

import (
	"fmt"

	"github.com/launchdash/launchdash/internal/launch"
)

// Scatter returns the records behind the payload scatter plot: those from
// site (every site for launch.SiteAll) whose payload lies strictly inside
// rng. A record sitting exactly on either bound is excluded.
func Scatter(ds *launch.Dataset, site launch.Site, rng launch.PayloadRange) ([]launch.Record, error) {
	if site != launch.SiteAll && !site.Valid() {
		return nil, fmt.Errorf("%w: %q", launch.ErrUnknownSite, string(site))
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	out := []launch.Record{}
	ds.Each(func(r launch.Record) {
		if site != launch.SiteAll && r.Site != site {
			return
		}
		if !rng.Contains(r.PayloadMassKg) {
			return
		}
		out = append(out, r)
	})

	return out, nil
}
