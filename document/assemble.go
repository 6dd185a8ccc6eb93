// Package document 负责把组合后的条目分页排版，得到可直接渲染的页面结果。
package document

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/render"
)

// ErrNoTypesetter 表示调用方未提供排版后端。
var ErrNoTypesetter = errors.New("document: 缺少排版后端 Typesetter")

const (
	ruleWidth      = 0.2 // mm
	cellPaddingPt  = 5.0
	tableFontScale = 0.85
)

var (
	headerFill = Color{R: 0xF3, G: 0xF4, B: 0xF6}
	headerRule = Color{R: 0xCC, G: 0xCC, B: 0xCC}
	rowRule    = Color{R: 0xEE, G: 0xEE, B: 0xEE}
)

// fragment 是分页的最小单位，内部坐标的 Y 相对片段顶部。
// before 为片段前的间距，换页后位于页顶的片段会丢弃该间距。
type fragment struct {
	before float64
	height float64
	texts  []TextBox
	lines  []Line
	rects  []Rect
}

func (f *fragment) absorb(o fragment, dy float64) {
	for _, tb := range o.texts {
		tb.Y += dy
		f.texts = append(f.texts, tb)
	}
	for _, ln := range o.lines {
		ln.Y1 += dy
		ln.Y2 += dy
		f.lines = append(f.lines, ln)
	}
	for _, rc := range o.rects {
		rc.Y += dy
		f.rects = append(f.rects, rc)
	}
}

// flatten 将一组片段合并成一个不可拆分的片段，首个片段的前置间距被忽略。
func flatten(frs []fragment) fragment {
	var out fragment
	y := 0.0
	for i, f := range frs {
		if i > 0 {
			y += f.before
		}
		out.absorb(f, y)
		y += f.height
	}
	out.height = y
	return out
}

type assembler struct {
	ts       Typesetter
	fonts    FontSet
	fontSize float64
}

// Assemble 按顺序排版条目并分页。空条目被跳过；Wrap 为 false 的条目
// 尽量保持在同一页，放不下时整体移到下一页。
func Assemble(entries []compose.Entry, opts Options) (*Result, error) {
	if opts.Typesetter == nil {
		return nil, ErrNoTypesetter
	}
	width, height, err := resolvePageSize(opts.Page)
	if err != nil {
		return nil, err
	}
	margin, err := resolveMargin(opts.Page.Margin)
	if err != nil {
		return nil, err
	}
	if margin.Left+margin.Right >= width || margin.Top+margin.Bottom >= height {
		return nil, fmt.Errorf("页边距超出纸张尺寸：%+v", margin)
	}

	a := &assembler{
		ts:       opts.Typesetter,
		fonts:    opts.Fonts.withDefaults(),
		fontSize: opts.FontSize,
	}
	if a.fontSize <= 0 {
		a.fontSize = defaultFontSize
	}

	collector := newPageCollector(width, height, margin)
	ctx := newFlowContext(collector)
	for _, e := range entries {
		if e.Empty() {
			continue
		}
		frs, err := a.fragments(e.Node, ctx.x, ctx.width)
		if err != nil {
			return nil, fmt.Errorf("元素 %s 排版失败: %w", e.ElementID, err)
		}
		if len(frs) == 0 {
			continue
		}
		frs[0].before += pt(math.Max(e.MarginTop, 0))
		if !e.Wrap {
			ctx.keepTogether(frs)
		}
		for _, f := range frs {
			ctx.place(f)
		}
		ctx.advance(pt(math.Max(e.MarginBottom, 0)))
	}

	meta := opts.Meta
	if meta.Creator == "" {
		meta.Creator = "folio"
	}
	return &Result{
		Pages:     collector.pages(),
		Resources: ResourceSet{Fonts: a.fonts.Resources()},
		Meta:      meta,
	}, nil
}

// fragments 将节点展开成可分页的片段序列。
func (a *assembler) fragments(n render.Node, x, width float64) ([]fragment, error) {
	switch t := n.(type) {
	case nil:
		return nil, nil
	case *render.Text:
		tb, err := a.composeTextBox(t, x, width)
		if err != nil {
			return nil, err
		}
		return []fragment{{height: tb.Height, texts: []TextBox{tb}}}, nil
	case *render.Stack:
		return a.stack(t, x, width)
	case *render.Columns:
		f, ok, err := a.columns(t, x, width)
		if err != nil || !ok {
			return nil, err
		}
		return []fragment{f}, nil
	case *render.Table:
		return a.table(t, x, width)
	default:
		return nil, fmt.Errorf("未知的节点类型 %T", n)
	}
}

func (a *assembler) stack(s *render.Stack, x, width float64) ([]fragment, error) {
	pad := pt(math.Max(s.Padding, 0))
	gap := pt(math.Max(s.Gap, 0))
	innerW := math.Max(width-2*pad, 0)

	var out []fragment
	for _, child := range s.Children {
		frs, err := a.fragments(child, x+pad, innerW)
		if err != nil {
			return nil, err
		}
		if len(frs) == 0 {
			continue
		}
		if len(out) > 0 {
			frs[0].before += gap
		}
		out = append(out, frs...)
	}
	return padFragments(out, pad), nil
}

// padFragments 为片段序列添加上下内边距。
func padFragments(frs []fragment, pad float64) []fragment {
	if len(frs) == 0 || pad <= 0 {
		return frs
	}
	frs[0].before += pad
	return append(frs, fragment{before: pad})
}

func (a *assembler) columns(c *render.Columns, x, width float64) (fragment, bool, error) {
	n := len(c.Cells)
	if n == 0 {
		return fragment{}, false, nil
	}
	gap := pt(math.Max(c.Gap, 0))
	widths := splitWidths(c.Widths, n, math.Max(width-gap*float64(n-1), 0))

	var row fragment
	found := false
	cx := x
	for i, cell := range c.Cells {
		frs, err := a.fragments(cell, cx, widths[i])
		if err != nil {
			return fragment{}, false, err
		}
		if len(frs) > 0 {
			found = true
			f := flatten(frs)
			row.absorb(f, 0)
			row.height = math.Max(row.height, f.height)
		}
		cx += widths[i] + gap
	}
	return row, found, nil
}

func (a *assembler) table(t *render.Table, x, width float64) ([]fragment, error) {
	n := len(t.Columns)
	if n == 0 {
		return nil, nil
	}
	pad := pt(math.Max(t.Padding, 0))
	x += pad
	width = math.Max(width-2*pad, 0)

	size := t.Size
	if size <= 0 {
		size = a.fontSize * tableFontScale
	}
	specs := make([]string, n)
	headers := make([]string, n)
	for i, col := range t.Columns {
		specs[i] = col.Width
		headers[i] = col.Header
	}
	widths := splitWidths(specs, n, width)

	header, err := a.tableRow(headers, widths, x, size, render.Bold, true)
	if err != nil {
		return nil, err
	}
	out := []fragment{header}
	for _, row := range t.Rows {
		f, err := a.tableRow(row, widths, x, size, render.Light, false)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return padFragments(out, pad), nil
}

func (a *assembler) tableRow(cells []string, widths []float64, x, size float64, weight render.Weight, header bool) (fragment, error) {
	cellPad := pt(cellPaddingPt)
	var row fragment
	textHeight := 0.0
	cx := x
	for i, w := range widths {
		content := ""
		if i < len(cells) {
			content = cells[i]
		}
		tb, err := a.composeTextBox(&render.Text{Content: content, Size: size, Weight: weight}, cx+cellPad, math.Max(w-2*cellPad, 0))
		if err != nil {
			return fragment{}, err
		}
		tb.Y = cellPad
		row.texts = append(row.texts, tb)
		textHeight = math.Max(textHeight, tb.Height)
		cx += w
	}
	row.height = textHeight + 2*cellPad

	total := 0.0
	for _, w := range widths {
		total += w
	}
	rule := rowRule
	if header {
		fill := headerFill
		row.rects = append(row.rects, Rect{X: x, Y: 0, Width: total, Height: row.height, FillColor: &fill})
		rule = headerRule
	}
	row.lines = append(row.lines, Line{X1: x, Y1: row.height, X2: x + total, Y2: row.height, Color: rule, Width: ruleWidth})
	return row, nil
}
