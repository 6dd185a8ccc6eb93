package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format 表示数据文件的编码格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath 根据扩展名推断格式，无法识别时返回 false。
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Parse 按指定格式解码数据。
func Parse(data []byte, format Format) (Value, error) {
	var raw any
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(data, &raw); err != nil {
			return Absent(), fmt.Errorf("record: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Absent(), fmt.Errorf("record: decode yaml: %w", err)
		}
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return Absent(), fmt.Errorf("record: decode toml: %w", err)
		}
		raw = m
	default:
		return Absent(), fmt.Errorf("record: unsupported format %q", format)
	}
	return FromAny(raw), nil
}

// LoadFile 读取并解码数据文件，格式由扩展名决定。
func LoadFile(path string) (Value, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return Absent(), fmt.Errorf("record: unknown data file extension %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Absent(), fmt.Errorf("record: read %s: %w", path, err)
	}
	return Parse(data, format)
}
