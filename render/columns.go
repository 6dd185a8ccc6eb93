package render

import (
	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/record"
)

// RenderTwoColumn 左右并排显示两个独立解析的值。
// source 形如 "left|right" 时直接给出两条路径；否则使用 leftSource 与
// rightSource 设置，此时普通的 source 只决定是否输出。
func RenderTwoColumn(source string, settings Settings, rec record.Value, style Style) Node {
	leftPath, rightPath, ok := binding.SplitPair(source)
	if !ok {
		if source != "" && binding.Resolve(source, rec).IsEmpty() {
			return nil
		}
		leftPath = settings.String("leftSource", "")
		rightPath = settings.String("rightSource", "")
	}
	size := settings.size(style.FontSize)
	left := columnCell(leftPath, rec, size, style)
	right := columnCell(rightPath, rec, size, style)
	if left == nil && right == nil {
		return nil
	}
	return &Columns{
		Cells:  []Node{left, right},
		Widths: []string{settings.String("leftWidth", ""), settings.String("rightWidth", "")},
		Gap:    style.ColumnGap,
	}
}

func columnCell(path string, rec record.Value, size float64, style Style) Node {
	if path == "" {
		return nil
	}
	v := binding.Resolve(path, rec)
	if v.IsEmpty() {
		return nil
	}
	return &Text{Content: v.Text(), Size: size, Weight: Light, Color: style.Color}
}
