// Package binding 负责根据路径表达式从简历数据中取值。
//
// 路径语法为以 "." 分隔的字段名，每一段可以带一个下标，例如
// "work[0].position"。任何无法解析或无法命中的路径都返回缺失值，
// 不会报错也不会 panic。
package binding

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/folio/record"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Resolve 按路径在 rec 中取值。
func Resolve(path string, rec record.Value) record.Value {
	path = strings.TrimSpace(path)
	if path == "" {
		return record.Absent()
	}
	current := rec
	for _, segment := range strings.Split(path, ".") {
		name, index, ok := parseSegment(segment)
		if !ok {
			return record.Absent()
		}
		current = current.Field(name)
		if index >= 0 {
			current = current.Index(index)
		}
		if current.IsAbsent() {
			return current
		}
	}
	return current
}

// SplitPair 拆分 "left|right" 形式的双栏数据源。
// 不含 "|" 时 ok 为 false。
func SplitPair(source string) (left, right string, ok bool) {
	i := strings.IndexByte(source, '|')
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(source[:i]), strings.TrimSpace(source[i+1:]), true
}

// Interpolate 将文本中的 ${path.to.value} 替换为 rec 中对应值的展示文本。
// 路径不存在时替换为空串。
func Interpolate(text string, rec record.Value) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		return Resolve(groups[1], rec).Text()
	})
}

// parseSegment 解析 name 或 name[index]，index 为 -1 表示无下标。
func parseSegment(segment string) (string, int, bool) {
	if segment == "" {
		return "", -1, false
	}
	open := strings.IndexByte(segment, '[')
	if open == -1 {
		if strings.IndexByte(segment, ']') != -1 {
			return "", -1, false
		}
		return segment, -1, true
	}
	name := segment[:open]
	if name == "" || !strings.HasSuffix(segment, "]") {
		return "", -1, false
	}
	digits := segment[open+1 : len(segment)-1]
	if digits == "" {
		return "", -1, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", -1, false
		}
	}
	idx, err := strconv.Atoi(digits)
	if err != nil {
		return "", -1, false
	}
	return name, idx, true
}
