// Package render 根据布局元素和简历数据生成展示节点。
//
// 渲染器是普通函数，按元素类型在 Registry 中查找。内置注册表在启动时
// 填充一次，之后只读，查找无需加锁。
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/record"
)

// RenderFunc 渲染单个元素，不返回错误：数据缺失或形态不符时返回 nil。
type RenderFunc func(source string, settings Settings, rec record.Value, style Style) Node

var (
	ErrSealed        = errors.New("render: registry is sealed")
	ErrDuplicateKind = errors.New("render: kind already registered")
	ErrNilRenderer   = errors.New("render: nil renderer")
)

// Registry 维护元素类型到渲染器的映射。
type Registry struct {
	fns    map[layout.Kind]RenderFunc
	sealed bool
}

// NewRegistry 返回一个空的、可注册的注册表。
func NewRegistry() *Registry {
	return &Registry{fns: map[layout.Kind]RenderFunc{}}
}

// Register 为 kind 注册渲染器。
func (r *Registry) Register(kind layout.Kind, fn RenderFunc) error {
	if r.sealed {
		return fmt.Errorf("%w: %s", ErrSealed, kind)
	}
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNilRenderer, kind)
	}
	if _, ok := r.fns[kind]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	r.fns[kind] = fn
	return nil
}

// MustRegister 同 Register，出错时 panic。
func (r *Registry) MustRegister(kind layout.Kind, fn RenderFunc) {
	if err := r.Register(kind, fn); err != nil {
		panic(err)
	}
}

// Seal 将注册表设为只读。
func (r *Registry) Seal() *Registry {
	r.sealed = true
	return r
}

// Sealed 判断注册表是否已只读。
func (r *Registry) Sealed() bool { return r.sealed }

// Lookup 返回 kind 对应的渲染器；未知类型得到始终返回 nil 的渲染器。
func (r *Registry) Lookup(kind layout.Kind) RenderFunc {
	if r != nil {
		if fn, ok := r.fns[kind]; ok {
			return fn
		}
	}
	return nothing
}

func (r *Registry) Has(kind layout.Kind) bool {
	if r == nil {
		return false
	}
	_, ok := r.fns[kind]
	return ok
}

// Kinds 按字典序返回已注册的类型。
func (r *Registry) Kinds() []layout.Kind {
	if r == nil {
		return nil
	}
	out := make([]layout.Kind, 0, len(r.fns))
	for kind := range r.fns {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone 返回可继续注册的副本。
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	if r == nil {
		return out
	}
	for kind, fn := range r.fns {
		out.fns[kind] = fn
	}
	return out
}

func nothing(string, Settings, record.Value, Style) Node { return nil }

var builtin = newBuiltinRegistry()

// Default 返回内置渲染器的只读注册表。
func Default() *Registry { return builtin }

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(layout.KindText, RenderText)
	r.MustRegister(layout.KindSection, RenderSection)
	r.MustRegister(layout.KindList, RenderList)
	r.MustRegister(layout.KindTable, RenderTable)
	r.MustRegister(layout.KindTwoColumn, RenderTwoColumn)
	r.MustRegister(layout.KindWorkExperience, RenderWorkExperience)
	return r.Seal()
}
