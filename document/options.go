package document

import "github.com/ByLCY/folio/render"

// Options 配置分页阶段所需的依赖与页面参数。
type Options struct {
	Typesetter Typesetter
	Page       PageSpec
	Fonts      FontSet
	Meta       DocumentMeta
	// FontSize 为未指定字号的文本提供默认值（pt），<=0 时取 12pt。
	FontSize float64
}

// PageSpec 描述纸张：尺寸预设、方向与 CSS 风格的 1~4 个边距值。
// 边距中无单位的数字按 pt 解释。
type PageSpec struct {
	Size        string   `json:"size"`
	Orientation string   `json:"orientation"`
	Margin      []string `json:"margin"`
}

// FontSet 为三种字重各指定一个字体资源。
type FontSet struct {
	Light   FontResource
	Regular FontResource
	Bold    FontResource
}

// DefaultFonts 使用 fonts 包内置的 Go 字体。
func DefaultFonts() FontSet {
	return FontSet{
		Light:   FontResource{Name: "Light", Family: "Light", Src: "embed:go-regular"},
		Regular: FontResource{Name: "Regular", Family: "Regular", Src: "embed:go-medium"},
		Bold:    FontResource{Name: "Bold", Family: "Bold", Src: "embed:go-bold", Style: "bold"},
	}
}

func (fs FontSet) withDefaults() FontSet {
	def := DefaultFonts()
	if fs.Light.Src == "" {
		fs.Light = def.Light
	}
	if fs.Regular.Src == "" {
		fs.Regular = def.Regular
	}
	if fs.Bold.Src == "" {
		fs.Bold = def.Bold
	}
	return fs
}

func (fs FontSet) forWeight(w render.Weight) FontResource {
	switch w {
	case render.Bold:
		return fs.Bold
	case render.Regular:
		return fs.Regular
	default:
		return fs.Light
	}
}

// Resources 以字体名称为键返回全部字体资源。
func (fs FontSet) Resources() map[string]FontResource {
	return map[string]FontResource{
		fs.Light.Name:   fs.Light,
		fs.Regular.Name: fs.Regular,
		fs.Bold.Name:    fs.Bold,
	}
}

// Typesetter 负责根据字体与宽度约束将文本拆成可绘制的行。
// fontSize、lineHeight 与 width 均为 mm。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontResource, fontSize float64, lineHeight float64, wrap string) ([]TextLine, error)
}
