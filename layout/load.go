package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format 布局文件的编码格式。
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath 根据扩展名推断格式。
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

// Parse 解码布局。解析失败时返回错误，不会退化为空布局。
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("layout: decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("layout: decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("layout: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("layout: unsupported format %q", format)
	}
	return &cfg, nil
}

// LoadFile 读取布局文件，格式由扩展名决定。
func LoadFile(path string) (*Config, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("layout: unknown layout file extension %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Encode 按指定格式输出 cfg。
func Encode(w io.Writer, cfg *Config, format Format) error {
	if cfg == nil {
		cfg = &Config{}
	}
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	default:
		return fmt.Errorf("layout: unsupported format %q", format)
	}
}

// WriteFile 用 cfg 整体覆盖 path，格式由扩展名决定。
func WriteFile(path string, cfg *Config) error {
	format, ok := FormatFromPath(path)
	if !ok {
		return fmt.Errorf("layout: cannot write layout as %q", filepath.Ext(path))
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, format); err != nil {
		return fmt.Errorf("layout: encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
