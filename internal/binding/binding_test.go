package binding_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/launchdash/launchdash/internal/binding"
	"github.com/launchdash/launchdash/internal/figure"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/testutil"
)

func fullRange() launch.Selection {
	return launch.Selection{Site: launch.SiteAll, Payload: launch.PayloadRange{Low: 0, High: 10000}}
}

func TestDispatch_SiteChangeUpdatesBothCharts(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	figs, err := d.Dispatch(binding.InputSite, fullRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := figs[binding.OutputPie]; !ok {
		t.Error("expected pie output")
	}
	if _, ok := figs[binding.OutputScatter]; !ok {
		t.Error("expected scatter output")
	}
}

func TestDispatch_SliderChangeUpdatesScatterOnly(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	figs, err := d.Dispatch(binding.InputPayload, fullRange())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(figs) != 1 {
		t.Fatalf("expected 1 output, got %d", len(figs))
	}
	if _, ok := figs[binding.OutputScatter]; !ok {
		t.Error("expected scatter output")
	}
}

func TestDispatch_UnknownInput(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	if _, err := d.Dispatch("launch-year", fullRange()); !errors.Is(err, binding.ErrUnknownInput) {
		t.Errorf("expected ErrUnknownInput, got %v", err)
	}
}

func TestDispatch_InvalidSelection(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	sel := launch.Selection{Site: "LC41", Payload: launch.PayloadRange{High: 100}}
	if _, err := d.Dispatch(binding.InputSite, sel); !errors.Is(err, launch.ErrUnknownSite) {
		t.Errorf("expected ErrUnknownSite, got %v", err)
	}
}

func TestInitial_IsPure(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))
	sel := launch.Selection{Site: launch.SiteLC40, Payload: launch.PayloadRange{Low: 0, High: 10000}}

	first, err := d.Initial(sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := d.Initial(sel)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated call differs:\n%s", diff)
	}

	scatter := first[binding.OutputScatter]
	if scatter.Title != "Total Success Rate at CCAFS LC-40 Launch Site" {
		t.Errorf("unexpected title %q", scatter.Title)
	}
	points := 0
	for _, s := range scatter.Scatter.Series {
		points += len(s.Points)
	}
	if points != 2 {
		t.Errorf("expected 2 points for LC40, got %d", points)
	}
}

func TestRegister_ReplacesOutput(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	called := false
	d.Register(binding.Binding{
		Output: binding.OutputPie,
		Inputs: []string{binding.InputSite},
		Handler: func(ds *launch.Dataset, sel launch.Selection) (*figure.Figure, error) {
			called = true
			return &figure.Figure{Kind: figure.KindPie}, nil
		},
	})

	if _, err := d.Output(binding.OutputPie, fullRange()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected replacement handler to run")
	}
}

func TestOutput_Unknown(t *testing.T) {
	d := binding.New(testutil.ScenarioDataset(t))

	if _, err := d.Output("nope", fullRange()); err == nil {
		t.Error("expected error for unknown output")
	}
}
