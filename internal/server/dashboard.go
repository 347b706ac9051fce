package server

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/launchdash/launchdash/internal/binding"
	"github.com/launchdash/launchdash/internal/config"
	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/figure"
	"github.com/launchdash/launchdash/internal/launch"
)

// Dashboard template data structures
type layoutData struct {
	Title   string
	CSS     template.CSS
	Content template.HTML
}

type indexData struct {
	Options    []siteOption
	Slider     config.SliderConfig
	Selection  launch.Selection
	PieSVG     template.HTML
	ScatterSVG template.HTML
}

const emptyChart = `<div class="empty">No launches match this selection</div>`

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sel := s.ds.DefaultSelection()
	figs, err := s.dispatcher.Initial(sel)
	if err != nil {
		s.logger.Error("initial figures failed", "error", err)
		http.Error(w, "Failed to build charts", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Options:   s.siteOptions(sel.Site),
		Slider:    s.cfg.Slider,
		Selection: sel,
	}
	if data.PieSVG, err = s.chartHTML(figs[binding.OutputPie]); err != nil {
		s.logger.Error("render failed", "output", binding.OutputPie, "error", err)
		http.Error(w, "Failed to render charts", http.StatusInternalServerError)
		return
	}
	if data.ScatterSVG, err = s.chartHTML(figs[binding.OutputScatter]); err != nil {
		s.logger.Error("render failed", "output", binding.OutputScatter, "error", err)
		http.Error(w, "Failed to render charts", http.StatusInternalServerError)
		return
	}

	s.renderDashboard(w, pageTitle, "index.html", data)
}

func (s *Server) chartHTML(fig *figure.Figure) (template.HTML, error) {
	if fig == nil {
		return emptyChart, nil
	}
	svg, err := s.renderSVG(fig)
	if err != nil {
		return "", err
	}
	if svg == "" {
		return emptyChart, nil
	}
	// go-chart output, not user input
	return template.HTML(svg), nil
}

func (s *Server) renderDashboard(w http.ResponseWriter, title, contentTemplate string, data interface{}) {
	cssBytes, err := dashboard.Assets.ReadFile("assets/style.css")
	if err != nil {
		http.Error(w, "Failed to load styles", http.StatusInternalServerError)
		return
	}

	contentTmpl, err := template.ParseFS(dashboard.Templates, "templates/"+contentTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	var contentBuf bytes.Buffer
	if err := contentTmpl.Execute(&contentBuf, data); err != nil {
		http.Error(w, fmt.Sprintf("Failed to render template: %v", err), http.StatusInternalServerError)
		return
	}

	layoutTmpl, err := template.ParseFS(dashboard.Templates, "templates/layout.html")
	if err != nil {
		http.Error(w, "Failed to parse layout", http.StatusInternalServerError)
		return
	}

	var page bytes.Buffer
	if err := layoutTmpl.Execute(&page, layoutData{
		Title:   title,
		CSS:     template.CSS(cssBytes),
		Content: template.HTML(contentBuf.String()),
	}); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page.Bytes())
}
