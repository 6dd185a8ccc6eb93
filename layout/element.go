// Package layout 描述简历布局：一组有序元素，每个元素指定渲染器类型、
// 数据路径以及自由格式的参数。
//
// 编辑操作不修改接收者，而是返回完整重建的 Config，调用方可整体替换。
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Kind 渲染器类型，取值会写入持久化文件。
type Kind string

const (
	KindText           Kind = "text"
	KindSection        Kind = "section"
	KindList           Kind = "list"
	KindTable          Kind = "table"
	KindTwoColumn      Kind = "two-column"
	KindWorkExperience Kind = "work-experience"
)

// Kinds 内置的渲染器类型。
var Kinds = []Kind{KindText, KindSection, KindList, KindTable, KindTwoColumn, KindWorkExperience}

func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

var (
	ErrElementNotFound = errors.New("layout: element not found")
	ErrDuplicateID     = errors.New("layout: duplicate element id")
	ErrEmptyID         = errors.New("layout: element id is empty")
	ErrNegativeMargin  = errors.New("layout: negative margin")
)

// Element 布局中的一个元素。
type Element struct {
	ID           string         `json:"id" yaml:"id" toml:"id"`
	Kind         Kind           `json:"type" yaml:"type" toml:"type"`
	Source       string         `json:"source" yaml:"source" toml:"source"`
	Order        int            `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty"`
	Wrap         bool           `json:"wrap,omitempty" yaml:"wrap,omitempty" toml:"wrap,omitempty"`
	MarginTop    float64        `json:"marginTop,omitempty" yaml:"marginTop,omitempty" toml:"marginTop,omitempty"`
	MarginBottom float64        `json:"marginBottom,omitempty" yaml:"marginBottom,omitempty" toml:"marginBottom,omitempty"`
	Settings     map[string]any `json:"settings,omitempty" yaml:"settings,omitempty" toml:"settings,omitempty"`
}

// Config 完整的布局配置。
type Config struct {
	Elements []Element `json:"elements" yaml:"elements" toml:"elements"`
}

// Sorted 按 Order 稳定排序返回元素，Order 相同的保持原有顺序。
func (c *Config) Sorted() []Element {
	if c == nil {
		return nil
	}
	out := make([]Element, len(c.Elements))
	copy(out, c.Elements)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Validate 检查 id 与边距，不校验类型。
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(c.Elements))
	for i, el := range c.Elements {
		if el.ID == "" {
			return fmt.Errorf("%w (element %d)", ErrEmptyID, i)
		}
		if _, ok := seen[el.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, el.ID)
		}
		seen[el.ID] = struct{}{}
		if el.MarginTop < 0 || el.MarginBottom < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeMargin, el.ID)
		}
	}
	return nil
}

// Clone 返回深拷贝。
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{Elements: make([]Element, len(c.Elements))}
	for i, el := range c.Elements {
		el.Settings = cloneSettings(el.Settings)
		out.Elements[i] = el
	}
	return out
}

// Find 按 id 查找元素。
func (c *Config) Find(id string) (Element, bool) {
	if c == nil {
		return Element{}, false
	}
	for _, el := range c.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// EnsureIDs 为缺少 id 的元素生成随机 id。
func (c *Config) EnsureIDs() *Config {
	out := c.Clone()
	if out == nil {
		return nil
	}
	for i := range out.Elements {
		if out.Elements[i].ID == "" {
			out.Elements[i].ID = uuid.New().String()
		}
	}
	return out
}

func cloneSettings(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneSettings(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneAny(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneSettings(item)
		}
		return out
	default:
		return v
	}
}
