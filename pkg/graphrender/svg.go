// Package graphrender draws a generated value.Graph as an SVG document.
package graphrender

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/mathcrusader/vargen/pkg/value"
)

// Options configures SVG rendering.
type Options struct {
	Width      int
	Height     int
	Margin     int
	NodeRadius int
	ShowLabels bool
	Title      string
}

// DefaultOptions returns sensible rendering defaults.
func DefaultOptions() Options {
	return Options{
		Width:      900,
		Height:     900,
		Margin:     60,
		NodeRadius: 16,
		ShowLabels: true,
		Title:      "",
	}
}

// Render draws g to an SVG document under opts. Nodes are placed on a
// circle in index order (no spatial layout is carried by a generated
// graph to lay out from, unlike the room coordinates a dungeon carver
// produces) and edges are drawn as straight lines beneath them.
func Render(g *value.Graph, opts Options) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("graph cannot be nil")
	}
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 900
	}
	if opts.Margin <= 0 {
		opts.Margin = 60
	}
	if opts.NodeRadius <= 0 {
		opts.NodeRadius = 16
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#1a1a2e")

	headerY := 0
	if opts.Title != "" {
		headerY = 30
		canvas.Text(opts.Width/2, 24, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	positions := circularLayout(g.NumNodes, opts, headerY)
	drawEdges(canvas, g, positions)
	drawNodes(canvas, g, positions, opts)

	canvas.Text(opts.Width/2, opts.Height-12,
		fmt.Sprintf("%d nodes, %d edges", g.NumNodes, len(g.Edges)),
		"text-anchor:middle;font-size:11px;fill:#718096;font-family:monospace")

	canvas.End()
	return buf.Bytes(), nil
}

// SaveFile renders g and writes the result to path.
func SaveFile(g *value.Graph, path string, opts Options) error {
	data, err := Render(g, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type position struct {
	X, Y float64
}

func circularLayout(n int, opts Options, headerY int) []position {
	positions := make([]position, n)
	if n == 0 {
		return positions
	}
	centerX := float64(opts.Width) / 2
	centerY := float64(opts.Height-headerY)/2 + float64(headerY)
	drawWidth := float64(opts.Width - 2*opts.Margin - 2*opts.NodeRadius)
	drawHeight := float64(opts.Height - 2*opts.Margin - 2*opts.NodeRadius - headerY)
	radius := math.Min(drawWidth, drawHeight) / 2.2
	if n == 1 {
		positions[0] = position{X: centerX, Y: centerY}
		return positions
	}
	angleStep := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * angleStep
		positions[i] = position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}
	return positions
}

func drawEdges(canvas *svg.SVG, g *value.Graph, positions []position) {
	for _, e := range g.Edges {
		if e.U < 0 || e.U >= len(positions) || e.V < 0 || e.V >= len(positions) {
			continue
		}
		from, to := positions[e.U], positions[e.V]
		style := "stroke:#4299e1;stroke-width:2;opacity:0.8"
		if e.U == e.V {
			continue
		}
		canvas.Line(int(from.X), int(from.Y), int(to.X), int(to.Y), style)
		if label, ok := labelText(e.Label); ok {
			midX, midY := (from.X+to.X)/2, (from.Y+to.Y)/2
			canvas.Text(int(midX), int(midY), label,
				"text-anchor:middle;font-size:10px;fill:#cbd5e0;font-family:monospace")
		}
	}
}

func drawNodes(canvas *svg.SVG, g *value.Graph, positions []position, opts Options) {
	for i, pos := range positions {
		canvas.Circle(int(pos.X), int(pos.Y), opts.NodeRadius,
			"fill:#48bb78;stroke:#fff;stroke-width:2;opacity:0.9")
		caption := fmt.Sprintf("%d", i)
		if opts.ShowLabels && g.NodeLabels != nil && i < len(g.NodeLabels) {
			if label, ok := labelText(g.NodeLabels[i]); ok {
				caption = label
			}
		}
		canvas.Text(int(pos.X), int(pos.Y)+4, caption,
			"text-anchor:middle;font-size:11px;font-weight:bold;fill:#0b0b12;font-family:monospace")
	}
}

// labelText renders a node/edge label value as short display text. Only
// Integer, String, and None payloads are expected for graph labels;
// anything else falls back to its kind name rather than failing the
// render.
func labelText(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.KindNone:
		return "", false
	case value.KindInteger:
		n, _ := v.Int()
		return fmt.Sprintf("%d", n), true
	case value.KindString:
		s, _ := v.Str()
		return s, true
	default:
		return v.Kind().String(), true
	}
}
