package render

import (
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/record"
)

// RenderText 显示一个标量值。设置了 template 时改用 ${path} 占位符拼出文本。
func RenderText(source string, settings Settings, rec record.Value, style Style) Node {
	var content string
	if tpl := settings.String("template", ""); tpl != "" {
		content = binding.Interpolate(tpl, rec)
		if strings.TrimSpace(content) == "" {
			return nil
		}
	} else {
		v := binding.Resolve(source, rec)
		if v.IsEmpty() || !isScalar(v) {
			return nil
		}
		content = v.Text()
	}
	return &Text{
		Content: content,
		Size:    settings.size(style.FontSize),
		Weight:  settings.weight(Light),
		Color:   settings.String("color", style.Color),
	}
}

// RenderSection 显示可选标题及 source 的原始内容，只有标题也会输出。
func RenderSection(source string, settings Settings, rec record.Value, style Style) Node {
	var children []Node
	if title := binding.Interpolate(settings.String("title", ""), rec); title != "" {
		children = append(children, &Text{
			Content: title,
			Size:    settings.size(style.HeadingSize),
			Weight:  settings.weight(Regular),
			Color:   settings.String("color", style.Color),
		})
	}
	if source != "" {
		if v := binding.Resolve(source, rec); !v.IsEmpty() {
			children = append(children, &Text{
				Content: v.Text(),
				Size:    style.FontSize,
				Weight:  Light,
				Color:   style.Color,
			})
		}
	}
	if len(children) == 0 {
		return nil
	}
	return &Stack{Children: children, Gap: style.ItemGap, Padding: style.SectionPadding}
}

func isScalar(v record.Value) bool {
	switch v.Kind() {
	case record.KindString, record.KindNumber, record.KindBool:
		return true
	default:
		return false
	}
}
