package document

import (
	"math"
	"strings"

	"github.com/ByLCY/folio/render"
)

const (
	defaultFontSize   = 12.0 // pt
	defaultLineFactor = 1.4
)

// composeTextBox 将文本节点排成相对坐标（Y=0）的文本块。
func (a *assembler) composeTextBox(t *render.Text, x, width float64) (TextBox, error) {
	size := t.Size
	if size <= 0 {
		size = a.fontSize
	}
	fontSize := pt(size) // mm
	lineHeight := fontSize * defaultLineFactor
	font := a.fonts.forWeight(t.Weight)

	lines, err := layoutLines(t.Content, width, font, fontSize, lineHeight, a.ts, "")
	if err != nil {
		return TextBox{}, err
	}

	totalHeight := 0.0
	defaultLeading := math.Max(lineHeight-fontSize, 0)
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = fontSize
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else if lines[i].GapBefore <= 0 {
			lines[i].GapBefore = defaultLeading
		}
		totalHeight += lines[i].GapBefore + lines[i].Height
	}

	return TextBox{
		Content:    t.Content,
		X:          x,
		Width:      width,
		LineHeight: lineHeight,
		Font:       font.Name,
		FontSize:   fontSize,
		Color:      resolveColor(t.Color),
		Lines:      lines,
		Height:     totalHeight,
	}, nil
}

func layoutLines(content string, width float64, font FontResource, fontSize, lineHeight float64, ts Typesetter, wrap string) ([]TextLine, error) {
	if ts == nil {
		lines := strings.Split(content, "\n")
		out := make([]TextLine, 0, len(lines))
		leading := math.Max(lineHeight-fontSize, 0)
		for _, l := range lines {
			out = append(out, TextLine{
				Content:   l,
				Width:     width,
				Height:    fontSize,
				GapBefore: leading,
			})
		}
		out[0].GapBefore = 0
		return out, nil
	}
	lines, err := ts.LayoutLines(content, width, font, fontSize, lineHeight, wrap)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: width, Height: fontSize}}
	}
	lines[0].GapBefore = 0
	return lines, nil
}
