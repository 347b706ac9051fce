package figure

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrEmptyFigure = errors.New("figure has no data to draw")

// Format is an output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (want svg or png)", s)
}

// ContentType is the HTTP media type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Size is the pixel size of a rendered chart.
type Size struct {
	Width  int
	Height int
}

var DefaultSize = Size{Width: 960, Height: 480}

// Render draws fig to w. Figures with nothing to plot return ErrEmptyFigure
// before anything is written.
func Render(fig *Figure, format Format, size Size, w io.Writer) error {
	if fig.Empty() {
		return ErrEmptyFigure
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	switch fig.Kind {
	case KindPie:
		return renderPie(fig, format, size, w)
	case KindScatter:
		return renderScatter(fig, format, size, w)
	}
	return fmt.Errorf("unknown figure type %q", fig.Kind)
}

func renderPie(fig *Figure, format Format, size Size, w io.Writer) error {
	values := make([]chart.Value, 0, len(fig.Pie.Values))
	for i, v := range fig.Pie.Values {
		// zero wedges confuse the label layout
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", fig.Pie.Labels[i], int(v)),
			Value: v,
			Style: chart.Style{FillColor: chart.GetDefaultColor(i)},
		})
	}

	pie := chart.PieChart{
		Title:  fig.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}

	if err := pie.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func renderScatter(fig *Figure, format Format, size Size, w io.Writer) error {
	sc := fig.Scatter

	series := make([]chart.Series, 0, len(sc.Series))
	for i, s := range sc.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = p.X
			ys[j] = p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			Style:   pointStyle(chart.GetDefaultColor(i)),
			XValues: xs,
			YValues: ys,
		})
	}

	xMin, xMax := sc.XMin, sc.XMax
	if xMax <= xMin {
		xMax = xMin + 1
	}

	yTicks := make([]chart.Tick, len(sc.YAxis.TickVals))
	for i, v := range sc.YAxis.TickVals {
		yTicks[i] = chart.Tick{Value: v, Label: sc.YAxis.TickText[i]}
	}

	ch := chart.Chart{
		Title:      fig.Title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  sc.XAxis.Title,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  sc.YAxis.Title,
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: yTicks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}
