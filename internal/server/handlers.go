package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/launchdash/launchdash/internal/binding"
	"github.com/launchdash/launchdash/internal/export"
	"github.com/launchdash/launchdash/internal/figure"
	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/stats"
)

type HealthResponse struct {
	Status        string        `json:"status"`
	Records       int           `json:"records"`
	Sites         []launch.Site `json:"sites"`
	MinPayload    float64       `json:"min_payload"`
	MaxPayload    float64       `json:"max_payload"`
	UptimeSeconds int64         `json:"uptime_seconds"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Records:       s.ds.Len(),
		Sites:         s.ds.Sites(),
		MinPayload:    s.ds.MinPayload(),
		MaxPayload:    s.ds.MaxPayload(),
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
	})
}

type siteOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"-"`
}

type sliderLayout struct {
	Min   float64           `json:"min"`
	Max   float64           `json:"max"`
	Step  float64           `json:"step"`
	Marks map[string]string `json:"marks"`
}

type selectionJSON struct {
	Site    launch.Site `json:"site"`
	Payload [2]float64  `json:"payload"`
}

// LayoutResponse describes the dashboard inputs and their initial values.
type LayoutResponse struct {
	Title       string        `json:"title"`
	Placeholder string        `json:"placeholder"`
	Options     []siteOption  `json:"options"`
	Slider      sliderLayout  `json:"slider"`
	Selection   selectionJSON `json:"selection"`
	Inputs      []string      `json:"inputs"`
}

const pageTitle = "SpaceX Launch Records Dashboard"

func (s *Server) siteOptions(selected launch.Site) []siteOption {
	opts := []siteOption{{Label: launch.SiteAll.Label(), Value: string(launch.SiteAll), Selected: selected == launch.SiteAll}}
	for _, site := range launch.Sites {
		opts = append(opts, siteOption{Label: site.Label(), Value: string(site), Selected: selected == site})
	}
	return opts
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel := s.ds.DefaultSelection()
	sl := s.cfg.Slider
	writeJSON(w, http.StatusOK, LayoutResponse{
		Title:       pageTitle,
		Placeholder: "Select a Launch Site here",
		Options:     s.siteOptions(sel.Site),
		Slider: sliderLayout{
			Min:  sl.Min,
			Max:  sl.Max,
			Step: sl.Step,
			Marks: map[string]string{
				formatMass(sl.Min): formatMass(sl.Min),
				formatMass(sl.Max): formatMass(sl.Max),
			},
		},
		Selection: selectionJSON{Site: sel.Site, Payload: [2]float64{sel.Payload.Low, sel.Payload.High}},
		Inputs:    s.dispatcher.Inputs(),
	})
}

// UpdateRequest is sent by the page whenever an input changes. It carries
// the full current selection plus the id of the input that changed.
type UpdateRequest struct {
	Changed string     `json:"changed"`
	Site    string     `json:"site"`
	Payload [2]float64 `json:"payload"`
}

type OutputResponse struct {
	Figure *figure.Figure `json:"figure"`
	SVG    string         `json:"svg,omitempty"`
	Empty  bool           `json:"empty"`
}

type UpdateResponse struct {
	Outputs map[string]OutputResponse `json:"outputs"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	site, err := launch.ParseSite(req.Site)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}
	sel := launch.Selection{
		Site:    site,
		Payload: launch.PayloadRange{Low: req.Payload[0], High: req.Payload[1]},
	}

	var figs map[string]*figure.Figure
	if req.Changed == "" {
		figs, err = s.dispatcher.Initial(sel)
	} else {
		figs, err = s.dispatcher.Dispatch(req.Changed, sel)
	}
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	resp := UpdateResponse{Outputs: make(map[string]OutputResponse, len(figs))}
	for id, fig := range figs {
		svg, err := s.renderSVG(fig)
		if err != nil {
			s.logger.Error("render failed", "output", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to render chart")
			return
		}
		resp.Outputs[id] = OutputResponse{Figure: fig, SVG: svg, Empty: fig.Empty()}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSiteSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel, err := s.parseSelection(r)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	summary, err := stats.Summarize(s.ds, sel.Site)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

type scatterRecord struct {
	FlightNumber           int         `json:"flight_number,omitempty"`
	Site                   launch.Site `json:"site"`
	PayloadMassKg          float64     `json:"payload_mass_kg"`
	Class                  int         `json:"class"`
	BoosterVersion         string      `json:"booster_version,omitempty"`
	BoosterVersionCategory string      `json:"booster_version_category"`
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel, err := s.parseSelection(r)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	records, err := stats.Scatter(s.ds, sel.Site, sel.Payload)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	out := make([]scatterRecord, len(records))
	for i, rec := range records {
		out[i] = scatterRecord{
			FlightNumber:           rec.FlightNumber,
			Site:                   rec.Site,
			PayloadMassKg:          rec.PayloadMassKg,
			Class:                  rec.Class(),
			BoosterVersion:         rec.BoosterVersion,
			BoosterVersionCategory: rec.BoosterVersionCategory,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"site":    sel.Site,
		"payload": [2]float64{sel.Payload.Low, sel.Payload.High},
		"records": out,
	})
}

// handleChart serves one output as an image. Empty figures yield 204.
func (s *Server) handleChart(output string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		format, err := figure.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sel, err := s.parseSelection(r)
		if err != nil {
			s.writeSelectionError(w, err)
			return
		}

		fig, err := s.dispatcher.Output(output, sel)
		if err != nil {
			s.writeSelectionError(w, err)
			return
		}

		var buf bytes.Buffer
		if err := figure.Render(fig, format, s.chartSize(), &buf); err != nil {
			if errors.Is(err, figure.ErrEmptyFigure) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			s.logger.Error("render failed", "output", output, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to render chart")
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(buf.Bytes())
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sel, err := s.parseSelection(r)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	view, err := export.Build(s.ds, sel)
	if err != nil {
		s.writeSelectionError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, view); err != nil {
		s.logger.Error("export failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="launches-%s.%s"`, sel.Site, format))
	w.Write(buf.Bytes())
}

// parseSelection reads site, low and high from the query string. Missing
// values fall back to the dashboard's initial selection.
func (s *Server) parseSelection(r *http.Request) (launch.Selection, error) {
	sel := s.ds.DefaultSelection()
	q := r.URL.Query()

	if v := q.Get("site"); v != "" {
		site, err := launch.ParseSite(v)
		if err != nil {
			return sel, err
		}
		sel.Site = site
	}
	if v := q.Get("low"); v != "" {
		low, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, fmt.Errorf("%w: low %q is not a number", launch.ErrInvalidRange, v)
		}
		sel.Payload.Low = low
	}
	if v := q.Get("high"); v != "" {
		high, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sel, fmt.Errorf("%w: high %q is not a number", launch.ErrInvalidRange, v)
		}
		sel.Payload.High = high
	}

	return sel, sel.Validate()
}

func (s *Server) chartSize() figure.Size {
	return figure.Size{Width: s.cfg.Chart.Width, Height: s.cfg.Chart.Height}
}

// renderSVG returns "" for figures with nothing to draw.
func (s *Server) renderSVG(fig *figure.Figure) (string, error) {
	var buf bytes.Buffer
	if err := figure.Render(fig, figure.FormatSVG, s.chartSize(), &buf); err != nil {
		if errors.Is(err, figure.ErrEmptyFigure) {
			return "", nil
		}
		return "", err
	}
	return buf.String(), nil
}

// writeSelectionError reports an invalid selection as 400 and anything
// else as 500.
func (s *Server) writeSelectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, launch.ErrUnknownSite),
		errors.Is(err, launch.ErrInvalidRange),
		errors.Is(err, binding.ErrUnknownInput):
		writeError(w, http.StatusBadRequest, "invalid selection: "+err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func formatMass(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
