package render

import (
	"encoding/json"
	"strings"
)

// Node 是渲染器的输出，nil 表示没有内容。
type Node interface {
	node()
}

// Weight 字重。
type Weight string

const (
	Light   Weight = "light"
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

// Text 是一段带样式的文本。Size 单位为 pt，0 表示使用文档默认字号。
type Text struct {
	Content string  `json:"content"`
	Size    float64 `json:"size,omitempty"`
	Weight  Weight  `json:"weight,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// Stack 纵向排列子节点。Gap 为子节点间距，Padding 为四周内边距，单位均为 pt。
type Stack struct {
	Children []Node  `json:"children"`
	Gap      float64 `json:"gap,omitempty"`
	Padding  float64 `json:"padding,omitempty"`
}

// Columns 横向排列单元格，nil 单元格保留空位。
// Widths 与单元格一一对应（"40%"、"60mm"、"120pt"），缺省的列平分剩余宽度。
type Columns struct {
	Cells  []Node   `json:"cells"`
	Widths []string `json:"widths,omitempty"`
	Gap    float64  `json:"gap,omitempty"`
}

// TableColumn 表头的一列。
type TableColumn struct {
	Header string `json:"header"`
	Width  string `json:"width,omitempty"`
}

// Table 由一行表头和若干数据行组成。
type Table struct {
	Columns []TableColumn `json:"columns"`
	Rows    [][]string    `json:"rows"`
	Size    float64       `json:"size,omitempty"`
	Padding float64       `json:"padding,omitempty"`
}

func (*Text) node()    {}
func (*Stack) node()   {}
func (*Columns) node() {}
func (*Table) node()   {}

func (t *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Node string `json:"node"`
		*alias
	}{"text", (*alias)(t)})
}

func (s *Stack) MarshalJSON() ([]byte, error) {
	type alias Stack
	return json.Marshal(struct {
		Node string `json:"node"`
		*alias
	}{"stack", (*alias)(s)})
}

func (c *Columns) MarshalJSON() ([]byte, error) {
	type alias Columns
	return json.Marshal(struct {
		Node string `json:"node"`
		*alias
	}{"columns", (*alias)(c)})
}

func (t *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Node string `json:"node"`
		*alias
	}{"table", (*alias)(t)})
}

// Lines 按阅读顺序展开节点中的文本行，同一行的分栏与单元格用 " | " 连接。
func Lines(n Node) []string {
	var out []string
	collectLines(n, &out)
	return out
}

func collectLines(n Node, out *[]string) {
	switch t := n.(type) {
	case *Text:
		*out = append(*out, t.Content)
	case *Stack:
		for _, child := range t.Children {
			collectLines(child, out)
		}
	case *Columns:
		parts := make([]string, 0, len(t.Cells))
		for _, cell := range t.Cells {
			parts = append(parts, strings.Join(Lines(cell), " "))
		}
		*out = append(*out, strings.Join(parts, " | "))
	case *Table:
		headers := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			headers[i] = col.Header
		}
		*out = append(*out, strings.Join(headers, " | "))
		for _, row := range t.Rows {
			*out = append(*out, strings.Join(row, " | "))
		}
	}
}
