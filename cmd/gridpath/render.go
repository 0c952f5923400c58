package main

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal/config"
)

// palette styles map cells. A palette without color renders plain runes.
type palette struct {
	color    bool
	wall     lipgloss.Style
	cost     lipgloss.Style
	path     lipgloss.Style
	endpoint lipgloss.Style
	explored lipgloss.Style
	header   lipgloss.Style
}

// colorEnabled resolves a color mode against the output writer.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newPalette(out io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(out)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		color:    color,
		wall:     r.NewStyle().Foreground(lipgloss.Color("241")),
		cost:     r.NewStyle().Foreground(lipgloss.Color("226")),
		path:     r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		endpoint: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		explored: r.NewStyle().Foreground(lipgloss.Color("63")),
		header:   r.NewStyle().Bold(true).Underline(true),
	}
}

func (p palette) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// overlay is what gets drawn over the cost map.
type overlay struct {
	start       geom.Coord
	destination geom.Coord
	path        []geom.Coord
	// explored is optional.
	explored func(geom.Coord) bool
}

// renderMap draws costs row by row with the overlay on top. Path cells are
// '*', start 'S', destination 'D' and expanded cells ':'.
func renderMap(p palette, costs []byte, width int, ov overlay) string {
	onPath := make(map[geom.Coord]bool, len(ov.path))
	for _, c := range ov.path {
		onPath[c] = true
	}

	var b strings.Builder
	height := len(costs) / width
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := geom.Coord{X: x, Y: y}
			cost := costs[c.Index(width)]
			switch {
			case c == ov.start:
				b.WriteString(p.paint(p.endpoint, "S"))
			case c == ov.destination:
				b.WriteString(p.paint(p.endpoint, "D"))
			case onPath[c]:
				b.WriteString(p.paint(p.path, "*"))
			case cost == gridastar.Impassable:
				b.WriteString(p.paint(p.wall, "#"))
			case ov.explored != nil && ov.explored(c):
				b.WriteString(p.paint(p.explored, ":"))
			case cost > 0:
				b.WriteString(p.paint(p.cost, string(rune('0'+min(max(cost/25, 1), 9)))))
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
