package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Adaptive colors that work on both light and dark terminals.
var (
	colorPrimary = lipgloss.AdaptiveColor{Dark: "#AF87FF", Light: "#7B5FBF"}
	colorGreen   = lipgloss.AdaptiveColor{Dark: "#5FD75F", Light: "#2E8B2E"}
	colorRed     = lipgloss.AdaptiveColor{Dark: "#FF5F5F", Light: "#CC3333"}
	colorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD75F", Light: "#B8860B"}
	colorDim     = lipgloss.AdaptiveColor{Dark: "#585858", Light: "#999999"}
)

// printer writes plain or styled text depending on whether the destination
// is a terminal.
type printer struct {
	w     io.Writer
	color bool

	header  lipgloss.Style
	dim     lipgloss.Style
	special lipgloss.Style
	normal  lipgloss.Style
	bad     lipgloss.Style
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{w: w, color: !noColor && isTerminal(w)}
	r := lipgloss.NewRenderer(w)
	p.header = r.NewStyle().Bold(true).Foreground(colorPrimary)
	p.dim = r.NewStyle().Foreground(colorDim)
	p.special = r.NewStyle().Bold(true).Foreground(colorGreen)
	p.normal = r.NewStyle().Foreground(colorRed)
	p.bad = r.NewStyle().Foreground(colorYellow)
	return p
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// table renders aligned columns with a styled header row.
type table struct {
	Headers []string
	Rows    [][]string
}

func (p *printer) renderTable(t table) string {
	if len(t.Headers) == 0 {
		return ""
	}

	colCount := len(t.Headers)
	widths := make([]int, colCount)

	// Calculate column widths from headers and row data.
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var b strings.Builder

	for i, h := range t.Headers {
		b.WriteString(p.style(p.header, pad(h, widths[i], i == colCount-1)))
	}
	b.WriteByte('\n')

	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(p.style(p.dim, strings.Repeat("-", w)))
	}
	b.WriteByte('\n')

	for _, row := range t.Rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, widths[i], i == colCount-1))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// pad right-pads s to width plus a two-space gutter. The last column is
// not padded so lines carry no trailing spaces.
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	return s + strings.Repeat(" ", width-len(s)+2)
}
