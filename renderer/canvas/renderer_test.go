package canvasrenderer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/fonts"
)

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	r := NewRenderer(".")
	font := document.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}

	// 这里的宽度/字号/行高均为 mm
	fontSizeMM := 12 * document.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	lines, err := r.LayoutLines("hello world again", 10, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestGreedyWrapHonorsNewlines(t *testing.T) {
	r := NewRenderer(".")
	font := document.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}

	fontSizeMM := 12 * document.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	lines, err := r.LayoutLines("foo\n\nbar", 100, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// TestLineHeightsInvariant 验证：
// 1) 首行 GapBefore == 0；
// 2) 其余行 GapBefore ≈ max(lineHeight - textHeight, 0)；
// 3) 各行的 Height 与 textHeight 一致（渲染器会用字体度量回填）。
func TestLineHeightsInvariant(t *testing.T) {
	r := NewRenderer(".")
	font := document.FontResource{
		Name: "Body",
		Src:  "embed:go-regular",
	}
	fontSizeMM := 12 * document.PtToMm
	lineHeightMM := fontSizeMM * 1.3

	content := "longlonglong longlonglong longlonglong longlonglong longlonglong"
	lines, err := r.LayoutLines(content, 40, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines for invariant test, got %d", len(lines))
	}

	// textHeight 以第一行 Height 为准
	textHeight := lines[0].Height
	if textHeight <= 0 {
		t.Fatalf("invalid text height: %g", textHeight)
	}
	wantLeading := math.Max(lineHeightMM-textHeight, 0)

	if lines[0].GapBefore != 0 {
		t.Fatalf("first line GapBefore must be 0, got %g", lines[0].GapBefore)
	}
	const eps = 1e-6
	for i := 1; i < len(lines); i++ {
		if diff := math.Abs(lines[i].GapBefore - wantLeading); diff > eps {
			t.Fatalf("line %d GapBefore mismatch: got=%g want=%g diff=%g", i, lines[i].GapBefore, wantLeading, diff)
		}
		if diff := math.Abs(lines[i].Height - textHeight); diff > eps {
			t.Fatalf("line %d Height mismatch: got=%g want=%g diff=%g", i, lines[i].Height, textHeight, diff)
		}
	}
}

// TestGreedyWrapWidthLimit 验证每行宽度不超过限制（mm）。
func TestGreedyWrapWidthLimit(t *testing.T) {
	r := NewRenderer(".")
	font := document.FontResource{Src: "embed:go-regular"}
	fontSizeMM := 12 * document.PtToMm
	lineHeightMM := fontSizeMM * 1.2

	limit := 30.0 // mm
	content := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	lines, err := r.LayoutLines(content, limit, font, fontSizeMM, lineHeightMM, "")
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected at least one line")
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-6 { // 允许极小的数值误差
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer("")
	fill := document.Color{R: 0xF3, G: 0xF4, B: 0xF6}
	fontsize := 12 * document.PtToMm
	res := &document.Result{
		Pages: []document.Page{
			{
				Width: 210, Height: 297,
				Texts: []document.TextBox{{
					Content: "홍길동", X: 10, Y: 10, Width: 100, FontSize: fontsize, LineHeight: fontsize * 1.4, Font: "Bold",
					Lines: []document.TextLine{{Content: "홍길동", Height: fontsize}},
				}},
				Rects: []document.Rect{{X: 10, Y: 20, Width: 100, Height: 8, FillColor: &fill}},
				Lines: []document.Line{{X1: 10, Y1: 28, X2: 110, Y2: 28}},
			},
			{Width: 210, Height: 297},
		},
		Resources: document.ResourceSet{Fonts: document.DefaultFonts().Resources()},
		Meta:      document.DocumentMeta{Title: "Resume", Creator: "folio"},
	}
	out, err := r.Render(res)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRenderRejectsEmptyResult(t *testing.T) {
	r := NewRenderer("")
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil result")
	}
	if _, err := r.Render(&document.Result{}); err == nil {
		t.Fatalf("expected error for result without pages")
	}
}

func TestUnknownFontFallsBack(t *testing.T) {
	r := NewRenderer("")
	font := document.FontResource{Name: "Missing", Src: "built-in:missing"}
	lines, err := r.LayoutLines("fallback", 100, font, 12*document.PtToMm, 12*document.PtToMm*1.4, "")
	if err != nil {
		t.Fatalf("fallback font should be used: %v", err)
	}
	if len(lines) != 1 || lines[0].Content != "fallback" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestInjectedFontResource(t *testing.T) {
	data, err := fonts.Load("go-bold")
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	r := NewRendererWithOptions(Options{Fonts: map[string]Resource{"brand": {Bytes: data}}})
	if _, err := r.loadFontBytes(document.FontResource{Name: "Brand", Src: "built-in:brand"}); err != nil {
		t.Fatalf("injected font should resolve: %v", err)
	}
	if _, err := r.loadFontBytes(document.FontResource{Name: "Rel", Src: "relative.ttf"}); err == nil {
		t.Fatalf("relative path without base dir should fail")
	}
}

func TestMissingGlyphsWarnOncePerFont(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithOptions(Options{Logger: log.New(&buf)})
	font := document.FontResource{Name: "Light", Src: "embed:go-regular"}
	size := 12 * document.PtToMm

	if _, err := r.LayoutLines("Jane Doe", 50, font, size, size*1.4, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("latin text should not warn, got %q", buf.String())
	}

	for i := 0; i < 2; i++ {
		if _, err := r.LayoutLines("홍길동 현재", 50, font, size, size*1.4, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	out := buf.String()
	if !strings.Contains(out, "missing glyphs") || !strings.Contains(out, "홍") {
		t.Fatalf("expected missing glyph warning, got %q", out)
	}
	if n := strings.Count(out, "missing glyphs"); n != 1 {
		t.Fatalf("expected one warning, got %d", n)
	}
}
