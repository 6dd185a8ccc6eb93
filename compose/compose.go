// Package compose 将布局配置与简历数据组合成有序的渲染条目。
//
// 组合是输入的纯函数：相同的配置与数据总得到相同的结果，并发调用
// 之间无需协调。
package compose

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/record"
	"github.com/ByLCY/folio/render"
)

// ErrNilConfig 表示未提供布局配置。
var ErrNilConfig = errors.New("compose: layout config is nil")

// Entry 是单个布局元素的渲染结果及排版所需的间距信息。
// 元素没有内容时 Node 为 nil。
type Entry struct {
	ElementID    string      `json:"id"`
	Kind         layout.Kind `json:"type"`
	Node         render.Node `json:"node"`
	MarginTop    float64     `json:"marginTop"`
	MarginBottom float64     `json:"marginBottom"`
	Wrap         bool        `json:"wrap"`
}

// Empty 判断条目是否没有内容。
func (e Entry) Empty() bool { return e.Node == nil }

// Options 为 Compose 的可选参数，零值使用内置注册表、默认样式且不输出日志。
type Options struct {
	Registry  *render.Registry
	Style     render.Style
	Logger    *log.Logger
	SkipEmpty bool
}

var discard = log.New(io.Discard)

// Compose 按显示顺序渲染 cfg 中的每个元素。
func Compose(cfg *layout.Config, rec record.Value, opts Options) ([]Entry, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	registry := opts.Registry
	if registry == nil {
		registry = render.Default()
	}
	style := opts.Style
	if style == (render.Style{}) {
		style = render.DefaultStyle()
	}
	logger := opts.Logger
	if logger == nil {
		logger = discard
	}

	elements := cfg.Sorted()
	entries := make([]Entry, 0, len(elements))
	for _, el := range elements {
		if !registry.Has(el.Kind) {
			logger.Debug("unknown element kind", "id", el.ID, "kind", el.Kind)
		}
		node := registry.Lookup(el.Kind)(el.Source, render.Settings(el.Settings), rec, style)
		if node == nil {
			logger.Debug("element rendered nothing", "id", el.ID, "source", el.Source)
			if opts.SkipEmpty {
				continue
			}
		}
		entries = append(entries, Entry{
			ElementID:    el.ID,
			Kind:         el.Kind,
			Node:         node,
			MarginTop:    nonNegative(el.MarginTop),
			MarginBottom: nonNegative(el.MarginBottom),
			Wrap:         el.Wrap,
		})
	}
	return entries, nil
}

// NonEmpty 过滤掉没有内容的条目。
func NonEmpty(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Empty() {
			out = append(out, e)
		}
	}
	return out
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
