package render

import (
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/record"
)

// RenderList 将序列中的每一项渲染为加粗的键行和可选的值行；
// 值为序列时用 valueDelimiter 连接。
func RenderList(source string, settings Settings, rec record.Value, style Style) Node {
	items := binding.Resolve(source, rec)
	if items.Kind() != record.KindSeq || items.Len() == 0 {
		return nil
	}
	keyField := settings.String("keyField", "name")
	valueField := settings.String("valueField", "value")
	delimiter := settings.String("valueDelimiter", ", ")
	size := settings.size(style.FontSize)

	children := make([]Node, 0, items.Len())
	for _, item := range items.Items() {
		lines := []Node{&Text{
			Content: item.Field(keyField).Text(),
			Size:    size,
			Weight:  Bold,
			Color:   style.Color,
		}}
		if value := joinValue(item.Field(valueField), delimiter); value != "" {
			lines = append(lines, &Text{Content: value, Size: size, Weight: Light, Color: style.Color})
		}
		children = append(children, &Stack{Children: lines})
	}
	return &Stack{Children: children, Gap: style.ItemGap, Padding: style.SectionPadding}
}

// Column 描述表格的一列。field 写作 "start-end" 时显示日期区间。
type Column struct {
	Header string `mapstructure:"header"`
	Field  string `mapstructure:"field"`
	Width  string `mapstructure:"width"`
}

// RenderTable 按 columns 配置把序列渲染为表格，每项一行。
func RenderTable(source string, settings Settings, rec record.Value, style Style) Node {
	items := binding.Resolve(source, rec)
	if items.Kind() != record.KindSeq || items.Len() == 0 {
		return nil
	}
	var columns []Column
	if err := settings.Decode("columns", &columns); err != nil || len(columns) == 0 {
		return nil
	}

	table := &Table{
		Columns: make([]TableColumn, len(columns)),
		Rows:    make([][]string, 0, items.Len()),
		Size:    settings.size(style.FontSize),
		Padding: style.SectionPadding,
	}
	for i, col := range columns {
		table.Columns[i] = TableColumn{Header: col.Header, Width: col.Width}
	}
	for _, item := range items.Items() {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellText(item, col.Field, style.CurrentMarker)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func cellText(item record.Value, field, marker string) string {
	if !strings.Contains(field, "-") {
		return item.Field(field).Text()
	}
	parts := strings.Split(field, "-")
	start := item.Field(parts[0]).Text()
	end := item.Field(parts[1]).Text()
	if end == "" {
		end = marker
	}
	return start + " - " + end
}

func joinValue(v record.Value, delimiter string) string {
	if v.Kind() != record.KindSeq {
		return v.Text()
	}
	parts := make([]string, 0, v.Len())
	for _, item := range v.Items() {
		parts = append(parts, item.Text())
	}
	return strings.Join(parts, delimiter)
}
