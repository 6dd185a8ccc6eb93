// Package record 定义简历数据的通用值类型。
//
// 简历数据来自 JSON/YAML/TOML 等任意树状结构，渲染层只关心六种形态：
// 缺失、字符串、数字、布尔、序列与映射。Value 构造后不可变，可在多个
// goroutine 之间共享。
package record

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// Kind 标识 Value 的形态。
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindSeq
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSeq:
		return "seq"
	case KindMap:
		return "map"
	default:
		return "absent"
	}
}

// Value 是带标签的只读数据值，零值表示缺失。
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	seq  []Value
	m    map[string]Value
}

// Absent 返回缺失值。
func Absent() Value { return Value{} }

// String 构造字符串值。
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number 构造数字值。
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Bool 构造布尔值。
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Seq 构造序列值，items 会被复制。
func Seq(items ...Value) Value {
	out := make([]Value, len(items))
	copy(out, items)
	return Value{kind: KindSeq, seq: out}
}

// Map 构造映射值，fields 会被复制。
func Map(fields map[string]Value) Value {
	out := make(map[string]Value, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return Value{kind: KindMap, m: out}
}

// FromAny 将 encoding/json、yaml.v3 或 BurntSushi/toml 解码得到的树转换为 Value。
// nil 与无法识别的类型都视为缺失。
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Absent()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case time.Time:
		return String(formatTime(t))
	case *time.Time:
		if t == nil {
			return Absent()
		}
		return String(formatTime(*t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case []any:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = FromAny(item)
		}
		return Value{kind: KindSeq, seq: out}
	case []map[string]any:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = FromAny(item)
		}
		return Value{kind: KindSeq, seq: out}
	case []string:
		out := make([]Value, len(t))
		for i, item := range t {
			out[i] = String(item)
		}
		return Value{kind: KindSeq, seq: out}
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, item := range t {
			out[k] = FromAny(item)
		}
		return Value{kind: KindMap, m: out}
	case map[any]any:
		out := make(map[string]Value, len(t))
		for k, item := range t {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = FromAny(item)
		}
		return Value{kind: KindMap, m: out}
	default:
		return Absent()
	}
}

// formatTime 把 YAML/TOML 中未加引号的日期还原为文本：只有日期时输出
// 2006-01-02，只有时间时输出 15:04:05，其余按 RFC 3339。
func formatTime(t time.Time) string {
	h, m, sec := t.Clock()
	if h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	if y, mon, d := t.Date(); y == 0 && mon == time.January && d == 1 {
		return t.Format(time.TimeOnly)
	}
	return t.Format(time.RFC3339)
}

// Kind 返回值的形态。
func (v Value) Kind() Kind { return v.kind }

// IsAbsent 判断值是否缺失。
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsEmpty 判断值是否缺失或为空（空字符串、空序列、空映射）。
// 数字与布尔永远不为空。
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindString:
		return v.s == ""
	case KindSeq:
		return len(v.seq) == 0
	case KindMap:
		return len(v.m) == 0
	default:
		return false
	}
}

// Str 返回字符串内容。
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Num 返回数字内容。
func (v Value) Num() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// Boolean 返回布尔内容。
func (v Value) Boolean() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Field 返回映射中的字段，非映射或字段不存在时返回缺失。
func (v Value) Field(name string) Value {
	if v.kind != KindMap {
		return Absent()
	}
	return v.m[name]
}

// Index 返回序列中的元素，越界或非序列时返回缺失。
func (v Value) Index(i int) Value {
	if v.kind != KindSeq || i < 0 || i >= len(v.seq) {
		return Absent()
	}
	return v.seq[i]
}

// Len 返回序列或映射的长度，其他形态为 0。
func (v Value) Len() int {
	switch v.kind {
	case KindSeq:
		return len(v.seq)
	case KindMap:
		return len(v.m)
	default:
		return 0
	}
}

// Items 返回序列元素的副本。
func (v Value) Items() []Value {
	if v.kind != KindSeq {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Keys 返回映射的键，按字典序排列。
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text 返回用于展示的文本：字符串原样输出，数字使用最短表示，
// 序列与映射输出为键有序的 JSON，缺失为空串。
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindSeq, KindMap:
		data, err := json.Marshal(v.Any())
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return ""
	}
}

// Any 将 Value 还原为普通 Go 值（map[string]any / []any / string / float64 / bool / nil）。
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return v.n
	case KindBool:
		return v.b
	case KindSeq:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Any()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = item.Any()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON 实现 json.Marshaler，缺失值输出为 null。
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON 实现 json.Unmarshaler。
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
