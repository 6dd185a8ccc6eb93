package document

import (
	"fmt"
	"strconv"
	"strings"
)

var pagePresets = map[string][2]float64{
	"A4":     {210, 297},
	"A5":     {148, 210},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

// defaultMargin 为四边 30pt。
const defaultMargin = "30pt"

func resolvePageSize(spec PageSpec) (float64, float64, error) {
	size := strings.TrimSpace(spec.Size)
	if size == "" {
		size = "A4"
	}
	base, ok := pagePresets[strings.ToUpper(size)]
	if !ok {
		return 0, 0, fmt.Errorf("暂不支持的纸张尺寸：%s", spec.Size)
	}
	width, height := base[0], base[1]
	if strings.EqualFold(strings.TrimSpace(spec.Orientation), "landscape") {
		width, height = height, width
	}
	return width, height, nil
}

// resolveMargin 按 CSS 语义解析 1~4 个边距值：
//
//	1 个：四边相同
//	2 个：上下 / 左右
//	3 个：上 / 左右 / 下
//	4 个：上 / 右 / 下 / 左
//
// 无法解析的值会被跳过，超过 4 个的部分忽略。
func resolveMargin(values []string) (Margin, error) {
	vals := make([]float64, 0, 4)
	for _, v := range values {
		if len(vals) == 4 {
			break
		}
		num := trimUnit(strings.ToLower(strings.TrimSpace(v)))
		if _, err := strconv.ParseFloat(num, 64); err != nil {
			return Margin{}, fmt.Errorf("边距值 %q 无法解析", v)
		}
		vals = append(vals, parseLength(v))
	}
	switch len(vals) {
	case 0:
		m := parseLength(defaultMargin)
		return Margin{Top: m, Right: m, Bottom: m, Left: m}, nil
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}

func resolveColor(value string) Color {
	if strings.HasPrefix(value, "#") {
		if c, err := parseColor(value); err == nil {
			return c
		}
	}
	return Color{R: 30, G: 30, B: 30}
}

func parseColor(value string) (Color, error) {
	value = strings.TrimPrefix(value, "#")
	switch len(value) {
	case 3:
		r := strings.Repeat(string(value[0]), 2)
		g := strings.Repeat(string(value[1]), 2)
		b := strings.Repeat(string(value[2]), 2)
		return Color{R: mustHex(r), G: mustHex(g), B: mustHex(b)}, nil
	case 6, 8:
		return Color{
			R: mustHex(value[0:2]),
			G: mustHex(value[2:4]),
			B: mustHex(value[4:6]),
		}, nil
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
}

func mustHex(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// parseLength 返回 mm，无单位的数字按 pt 处理。
func parseLength(value string) float64 {
	l := ParseLength(value)
	if l.Unit == UnitNone {
		l.Unit = UnitPT
	}
	return l.ToMM()
}

// parseDimension 支持百分比（相对 reference）与长度值。
func parseDimension(value string, reference float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if strings.HasSuffix(value, "%") {
		num := strings.TrimSuffix(value, "%")
		if f, err := strconv.ParseFloat(num, 64); err == nil {
			return reference * f / 100
		}
		return 0
	}
	return parseLength(value)
}

func trimUnit(value string) string {
	for _, suffix := range []string{"pt", "mm", "cm", "in", "%"} {
		if strings.HasSuffix(value, suffix) {
			return strings.TrimSuffix(value, suffix)
		}
	}
	return value
}

// splitWidths 将 total 按声明宽度分配给 n 列，未声明的列平分剩余宽度。
func splitWidths(specs []string, n int, total float64) []float64 {
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}
	used := 0.0
	free := 0
	for i := 0; i < n; i++ {
		if i < len(specs) {
			widths[i] = parseDimension(specs[i], total)
		}
		if widths[i] <= 0 {
			widths[i] = 0
			free++
			continue
		}
		used += widths[i]
	}
	if free > 0 {
		rest := total - used
		if rest < 0 {
			rest = 0
		}
		for i := range widths {
			if widths[i] == 0 {
				widths[i] = rest / float64(free)
			}
		}
	}
	return widths
}

// KnownPageSize 判断纸张预设是否存在（大小写不敏感，空值视为 A4）。
func KnownPageSize(name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	_, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}
