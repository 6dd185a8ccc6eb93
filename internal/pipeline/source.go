package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/render"
)

// Source is a loaded layout together with the document settings that
// travel with it. Only .folio files carry page, meta and style sections;
// plain json/yaml/toml layouts use the defaults.
type Source struct {
	Name   string
	Path   string
	Config *layout.Config
	Style  render.Style
	Page   document.PageSpec
	Meta   document.DocumentMeta
}

// IsDSL reports whether path names a .folio layout file.
func IsDSL(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".folio")
}

// LoadSource reads a layout file, dispatching on its extension.
func LoadSource(path string) (*Source, error) {
	if IsDSL(path) {
		l, err := dsl.LoadFile(path)
		if err != nil {
			return nil, err
		}
		src := fromDSL(l)
		src.Path = path
		return src, nil
	}

	cfg, err := layout.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	src := FromConfig(cfg)
	src.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	src.Path = path
	return src, nil
}

// FromConfig wraps an in-memory layout config with default settings.
func FromConfig(cfg *layout.Config) *Source {
	return &Source{Name: "layout", Config: cfg, Style: render.DefaultStyle()}
}

// ParseDSL decodes layout source text in the .folio language.
func ParseDSL(text string) (*Source, error) {
	doc, err := dsl.ParseString(text)
	if err != nil {
		return nil, fmt.Errorf("dsl: %w", err)
	}
	l, err := dsl.Decode(doc)
	if err != nil {
		return nil, err
	}
	return fromDSL(l), nil
}

func fromDSL(l *dsl.Layout) *Source {
	return &Source{
		Name:   l.Name,
		Config: l.Config,
		Style:  l.ApplyStyle(render.DefaultStyle()),
		Page: document.PageSpec{
			Size:        l.Page.Size,
			Orientation: l.Page.Orientation,
			Margin:      l.Page.Margin,
		},
		Meta: document.DocumentMeta{
			Title:    l.Meta.Title,
			Author:   l.Meta.Author,
			Subject:  l.Meta.Subject,
			Creator:  l.Meta.Creator,
			Keywords: l.Meta.Keywords,
		},
	}
}
