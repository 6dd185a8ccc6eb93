package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Settings 是布局元素的渲染器参数。各渲染器只读取自己认识的键，
// 类型不符时使用默认值。
type Settings map[string]any

// String 返回 key 的文本值；缺失、为空或不是标量时返回 def。
func (s Settings) String(key, def string) string {
	switch v := s[key].(type) {
	case string:
		if v == "" {
			return def
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return def
	}
}

// Float 返回数值参数，接受 "14" 这样的数字字符串。
func (s Settings) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (s Settings) Bool(key string, def bool) bool {
	switch v := s[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// Decode 以弱类型方式把结构化参数解码到 out。
func (s Settings) Decode(key string, out any) error {
	raw, ok := s[key]
	if !ok || raw == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("render: setting %q: %w", key, err)
	}
	return nil
}

func (s Settings) size(def float64) float64 {
	if v, ok := s.Float("fontSize"); ok && v > 0 {
		return v
	}
	return def
}

func (s Settings) weight(def Weight) Weight {
	switch strings.ToLower(s.String("fontWeight", "")) {
	case "bold", "700", "800", "900":
		return Bold
	case "normal", "regular", "400", "500":
		return Regular
	case "light", "300":
		return Light
	default:
		return def
	}
}
