// Package figure turns aggregates into chart descriptions and renders them.
package figure

import (
	"fmt"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
)

type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Axis and legend titles of the scatter plot.
const (
	PayloadAxisTitle = "Payload Mass in kg"
	OutcomeAxisTitle = "Success Rate"
	ColorTitle       = "Booster Version"
)

// Figure is a renderer-independent chart description. Exactly one of Pie
// and Scatter is set, matching Kind.
type Figure struct {
	Kind    Kind     `json:"type"`
	Title   string   `json:"title"`
	Pie     *Pie     `json:"pie,omitempty"`
	Scatter *Scatter `json:"scatter,omitempty"`
}

type Pie struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type Scatter struct {
	XAxis      Axis     `json:"x_axis"`
	YAxis      Axis     `json:"y_axis"`
	ColorTitle string   `json:"color_title"`
	XMin       float64  `json:"x_min"`
	XMax       float64  `json:"x_max"`
	Series     []Series `json:"series"`
}

type Axis struct {
	Title    string    `json:"title"`
	TickVals []float64 `json:"tick_vals,omitempty"`
	TickText []string  `json:"tick_text,omitempty"`
}

// Series is one colour group of the scatter plot.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

type Point struct {
	X              float64     `json:"x"`
	Y              float64     `json:"y"`
	Site           launch.Site `json:"site"`
	FlightNumber   int         `json:"flight_number,omitempty"`
	BoosterVersion string      `json:"booster_version,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f *Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		if f.Pie == nil {
			return true
		}
		for _, v := range f.Pie.Values {
			if v > 0 {
				return false
			}
		}
		return true
	case KindScatter:
		if f.Scatter == nil {
			return true
		}
		for _, s := range f.Scatter.Series {
			if len(s.Points) > 0 {
				return false
			}
		}
		return true
	}
	return true
}

func PieTitle(site launch.Site) string {
	if site == launch.SiteAll {
		return "Total Success Launches by Site"
	}
	return fmt.Sprintf("Total Success Launches at %s Launch Site", site.Label())
}

func ScatterTitle(site launch.Site) string {
	if site == launch.SiteAll {
		return "Total Success Rate by Site"
	}
	return fmt.Sprintf("Total Success Rate at %s Launch Site", site.Label())
}

// NewPie describes the site summary as a pie chart.
func NewPie(summary *stats.SiteSummary) *Figure {
	pie := &Pie{
		Labels: make([]string, len(summary.Slices)),
		Values: make([]float64, len(summary.Slices)),
	}
	for i, s := range summary.Slices {
		pie.Labels[i] = s.Label
		pie.Values[i] = float64(s.Count)
	}

	return &Figure{
		Kind:  KindPie,
		Title: PieTitle(summary.Site),
		Pie:   pie,
	}
}

// NewScatter describes records as payload vs outcome, one series per
// booster version category in order of first appearance.
func NewScatter(site launch.Site, rng launch.PayloadRange, records []launch.Record) *Figure {
	sc := &Scatter{
		XAxis: Axis{Title: PayloadAxisTitle},
		YAxis: Axis{
			Title:    OutcomeAxisTitle,
			TickVals: []float64{0, 1},
			TickText: []string{stats.LabelFailure, stats.LabelSuccess},
		},
		ColorTitle: ColorTitle,
		XMin:       rng.Low,
		XMax:       rng.High,
		Series:     []Series{},
	}

	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.BoosterVersionCategory]
		if !ok {
			i = len(sc.Series)
			index[r.BoosterVersionCategory] = i
			sc.Series = append(sc.Series, Series{Name: r.BoosterVersionCategory})
		}
		sc.Series[i].Points = append(sc.Series[i].Points, Point{
			X:              r.PayloadMassKg,
			Y:              float64(r.Class()),
			Site:           r.Site,
			FlightNumber:   r.FlightNumber,
			BoosterVersion: r.BoosterVersion,
		})
	}

	return &Figure{
		Kind:    KindScatter,
		Title:   ScatterTitle(site),
		Scatter: sc,
	}
}
