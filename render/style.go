package render

import "golang.org/x/text/language"

// DefaultCurrentMarker 在结束日期缺失时显示。
const DefaultCurrentMarker = "현재"

// Style 是各渲染器共用的展示参数，字号与间距单位为 pt。
type Style struct {
	FontSize       float64
	HeadingSize    float64
	Color          string
	MutedColor     string
	CurrentMarker  string
	Bullet         string
	ItemGap        float64
	JobGap         float64
	ColumnGap      float64
	SectionPadding float64
}

// DefaultStyle 返回默认简历样式。
func DefaultStyle() Style {
	return Style{
		FontSize:       12,
		HeadingSize:    16,
		Color:          "#1E1E1E",
		MutedColor:     "#666666",
		CurrentMarker:  DefaultCurrentMarker,
		Bullet:         "• ",
		ItemGap:        5,
		JobGap:         10,
		ColumnGap:      10,
		SectionPadding: 10,
	}
}

var (
	markerTags = []language.Tag{
		language.Korean,
		language.English,
		language.Japanese,
		language.Chinese,
		language.German,
		language.French,
	}
	markerWords   = []string{DefaultCurrentMarker, "present", "現在", "至今", "heute", "présent"}
	markerMatcher = language.NewMatcher(markerTags)
)

// CurrentMarkerFor 按 BCP 47 语言标签（如 "en-US"、"ja"）选择表示"至今"的词，
// 无法解析或不支持的标签返回默认值。
func CurrentMarkerFor(locale string) string {
	if locale == "" {
		return DefaultCurrentMarker
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultCurrentMarker
	}
	_, idx, conf := markerMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(markerWords) {
		return DefaultCurrentMarker
	}
	return markerWords[idx]
}
