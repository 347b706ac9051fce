// Package binding maps dashboard input changes to the chart outputs that
// depend on them.
package binding

import (
	"errors"
	"fmt"

	"github.com/launchdash/launchdash/internal/figure"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
)

// Input and output component ids as used by the dashboard page.
const (
	InputSite    = "site-dropdown"
	InputPayload = "payload-slider"

	OutputPie     = "success-pie-chart"
	OutputScatter = "success-payload-scatter-chart"
)

var ErrUnknownInput = errors.New("unknown input")

// Handler produces the figure for one output from the current selection.
type Handler func(ds *launch.Dataset, sel launch.Selection) (*figure.Figure, error)

// Binding ties an output to the inputs it is recomputed on.
type Binding struct {
	Output  string
	Inputs  []string
	Handler Handler
}

func (b Binding) dependsOn(input string) bool {
	for _, in := range b.Inputs {
		if in == input {
			return true
		}
	}
	return false
}

// Dispatcher invokes bindings when inputs change. It holds no state
// between calls other than the dataset and the registered bindings.
type Dispatcher struct {
	ds       *launch.Dataset
	bindings []Binding
}

// New returns a dispatcher with the pie and scatter bindings registered.
func New(ds *launch.Dataset) *Dispatcher {
	d := &Dispatcher{ds: ds}
	d.Register(Binding{
		Output:  OutputPie,
		Inputs:  []string{InputSite},
		Handler: PieChart,
	})
	d.Register(Binding{
		Output:  OutputScatter,
		Inputs:  []string{InputSite, InputPayload},
		Handler: ScatterChart,
	})
	return d
}

// Register adds b. Registering an output twice replaces the earlier binding.
func (d *Dispatcher) Register(b Binding) {
	for i := range d.bindings {
		if d.bindings[i].Output == b.Output {
			d.bindings[i] = b
			return
		}
	}
	d.bindings = append(d.bindings, b)
}

// Inputs returns every input id some binding listens to.
func (d *Dispatcher) Inputs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range d.bindings {
		for _, in := range b.Inputs {
			if !seen[in] {
				seen[in] = true
				out = append(out, in)
			}
		}
	}
	return out
}

// Dispatch recomputes the outputs that depend on the changed input.
// The selection is validated before any handler runs.
func (d *Dispatcher) Dispatch(changed string, sel launch.Selection) (map[string]*figure.Figure, error) {
	known := false
	for _, in := range d.Inputs() {
		if in == changed {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, changed)
	}

	return d.run(sel, func(b Binding) bool { return b.dependsOn(changed) })
}

// Initial computes every output, as on first page load.
func (d *Dispatcher) Initial(sel launch.Selection) (map[string]*figure.Figure, error) {
	return d.run(sel, func(Binding) bool { return true })
}

// Output computes a single output by id.
func (d *Dispatcher) Output(output string, sel launch.Selection) (*figure.Figure, error) {
	figs, err := d.run(sel, func(b Binding) bool { return b.Output == output })
	if err != nil {
		return nil, err
	}
	fig, ok := figs[output]
	if !ok {
		return nil, fmt.Errorf("unknown output %q", output)
	}
	return fig, nil
}

func (d *Dispatcher) run(sel launch.Selection, want func(Binding) bool) (map[string]*figure.Figure, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	out := make(map[string]*figure.Figure)
	for _, b := range d.bindings {
		if !want(b) {
			continue
		}
		fig, err := b.Handler(d.ds, sel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Output, err)
		}
		out[b.Output] = fig
	}
	return out, nil
}

// PieChart is the site-dropdown -> success-pie-chart handler.
func PieChart(ds *launch.Dataset, sel launch.Selection) (*figure.Figure, error) {
	summary, err := stats.Summarize(ds, sel.Site)
	if err != nil {
		return nil, err
	}
	return figure.NewPie(summary), nil
}

// ScatterChart is the (site-dropdown, payload-slider) ->
// success-payload-scatter-chart handler.
func ScatterChart(ds *launch.Dataset, sel launch.Selection) (*figure.Figure, error) {
	records, err := stats.Scatter(ds, sel.Site, sel.Payload)
	if err != nil {
		return nil, err
	}
	return figure.NewScatter(sel.Site, sel.Payload, records), nil
}
