package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/render"
)

var (
	colorInk  = lipgloss.Color("#1E1E1E")
	colorDim  = lipgloss.Color("240")
	colorRule = lipgloss.Color("245")

	// kindColors follows the element palette of the layout editor.
	kindColors = map[layout.Kind]lipgloss.Color{
		layout.KindText:           lipgloss.Color("#E3F2FD"),
		layout.KindSection:        lipgloss.Color("#FFF3E0"),
		layout.KindList:           lipgloss.Color("#E8F5E9"),
		layout.KindTable:          lipgloss.Color("#F3E5F5"),
		layout.KindTwoColumn:      lipgloss.Color("#FFEBEE"),
		layout.KindWorkExperience: lipgloss.Color("#E0F7FA"),
	}
	unknownKindColor = lipgloss.Color("#EEEEEE")

	styleID     = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleGutter = lipgloss.NewStyle().Foreground(colorRule)
)

func kindBadge(k layout.Kind) string {
	bg, ok := kindColors[k]
	if !ok {
		bg = unknownKindColor
	}
	return lipgloss.NewStyle().Background(bg).Foreground(colorInk).Padding(0, 1).Render(string(k))
}

// outline renders entries as a readable tree: one badge line per element
// followed by its text lines.
func outline(entries []compose.Entry) string {
	var b strings.Builder
	gutter := styleGutter.Render("  │ ")
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(kindBadge(e.Kind))
		b.WriteString(" ")
		b.WriteString(styleID.Render(e.ElementID))
		if flags := entryFlags(e); flags != "" {
			b.WriteString(" ")
			b.WriteString(styleDim.Render(flags))
		}
		b.WriteString("\n")
		if e.Empty() {
			b.WriteString(gutter + styleDim.Render("(empty)") + "\n")
			continue
		}
		for _, line := range render.Lines(e.Node) {
			b.WriteString(gutter + line + "\n")
		}
	}
	return b.String()
}

func entryFlags(e compose.Entry) string {
	var parts []string
	if e.Wrap {
		parts = append(parts, "wrap")
	}
	if e.MarginTop > 0 || e.MarginBottom > 0 {
		parts = append(parts, fmt.Sprintf("margin %g/%g", e.MarginTop, e.MarginBottom))
	}
	return strings.Join(parts, " · ")
}
