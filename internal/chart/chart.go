// Package chart renders the three-panel usage figure for a run.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// DefaultPath is where the figure is written when nothing else is configured
const DefaultPath = "energy_chart.png"

var (
	green = color.RGBA{G: 128, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// Renderer writes the figure as a PNG
type Renderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a renderer sized like a 15x5 inch figure
func NewRenderer(path string) *Renderer {
	if path == "" {
		path = DefaultPath
	}
	return &Renderer{Path: path, Width: 15 * vg.Inch, Height: 5 * vg.Inch}
}

// WriteChart implements report.ChartSink
func (r *Renderer) WriteChart(run *models.Run) error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", r.Path, err)
	}
	defer f.Close()

	if err := r.Render(f, run); err != nil {
		return err
	}
	return f.Close()
}

// Render draws the three panels side by side and encodes them as PNG to w
func (r *Renderer) Render(w io.Writer, run *models.Run) error {
	usage, err := usagePlot(run)
	if err != nil {
		return fmt.Errorf("building usage panel: %w", err)
	}
	conditions, err := conditionsPlot(run)
	if err != nil {
		return fmt.Errorf("building conditions panel: %w", err)
	}
	savings, err := savingsPlot(run)
	if err != nil {
		return fmt.Errorf("building savings panel: %w", err)
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      3,
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	plots := [][]*plot.Plot{{usage, conditions, savings}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func newPanel(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// addSeries plots a line with markers and registers it in the legend
func addSeries(p *plot.Plot, label string, pts plotter.XYs, c color.Color, glyph draw.GlyphDrawer) error {
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("plotting %s: %w", label, err)
	}
	line.Color = c
	points.Color = c
	points.Shape = glyph
	p.Add(line, points)
	p.Legend.Add(label, line, points)
	return nil
}

func usagePlot(run *models.Run) (*plot.Plot, error) {
	p := newPanel("Energy Usage (kWh)", "Hour", "kWh")
	p.Add(plotter.NewGrid())

	hours := run.Hours()
	if err := addSeries(p, "Historical Usage", xys(hours, run.HistoricalSeries()), seriesColor(0), draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if err := addSeries(p, "Optimized Usage", xys(hours, run.OptimizedSeries()), seriesColor(1), draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	return p, nil
}

func conditionsPlot(run *models.Run) (*plot.Plot, error) {
	p := newPanel("Occupancy & Temperature", "Hour", "Value")
	p.Add(plotter.NewGrid())

	hours := run.Hours()
	if err := addSeries(p, "Occupancy Level", xys(hours, run.OccupancySeries()), green, draw.BoxGlyph{}); err != nil {
		return nil, err
	}
	if err := addSeries(p, "Temperature (°C)", xys(hours, run.TemperatureSeries()), red, draw.TriangleGlyph{}); err != nil {
		return nil, err
	}
	return p, nil
}

func savingsPlot(run *models.Run) (*plot.Plot, error) {
	p := newPanel("Hourly Energy Savings", "Hour", "kWh Saved")

	// Horizontal grid lines only
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	bars, err := plotter.NewBarChart(plotter.Values(run.SavingsSeries()), vg.Points(12))
	if err != nil {
		return nil, fmt.Errorf("plotting savings: %w", err)
	}
	bars.Color = blue
	bars.LineStyle.Width = 0
	p.Add(bars)

	labels := make([]string, len(run.Records))
	for i, rec := range run.Records {
		labels[i] = fmt.Sprintf("%d", rec.Hour)
	}
	p.NominalX(labels...)

	return p, nil
}

// seriesColor picks from the default line palette
func seriesColor(i int) color.Color {
	palette := []color.Color{
		color.RGBA{R: 31, G: 119, B: 180, A: 255},
		color.RGBA{R: 255, G: 127, B: 14, A: 255},
	}
	return palette[i%len(palette)]
}
