// Package config loads folio settings from defaults, a folio.yaml file,
// FOLIO_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/render"
)

// Default values used when nothing else is configured.
const (
	DefaultOutput      = "output/resume.pdf"
	DefaultConcurrency = 4
	DefaultAddr        = ":8080"
)

// Config is the merged configuration for every command.
type Config struct {
	Data        string      `koanf:"data"`
	Layout      string      `koanf:"layout"`
	Output      string      `koanf:"output"`
	Debug       string      `koanf:"debug"`
	Locale      string      `koanf:"locale"`
	Concurrency int         `koanf:"concurrency"`
	Verbose     bool        `koanf:"verbose"`
	Page        PageConfig  `koanf:"page"`
	Fonts       FontsConfig `koanf:"fonts"`
	Style       StyleConfig `koanf:"style"`
	Serve       ServeConfig `koanf:"serve"`
}

// PageConfig selects paper size, orientation and margins. Margin holds
// one to four space-separated lengths ("30pt", "20mm 15mm").
type PageConfig struct {
	Size        string `koanf:"size"`
	Orientation string `koanf:"orientation"`
	Margin      string `koanf:"margin"`
}

// FontsConfig overrides the font source for each weight. Relative paths
// are resolved against Dir.
type FontsConfig struct {
	Light   string `koanf:"light"`
	Regular string `koanf:"regular"`
	Bold    string `koanf:"bold"`
	Dir     string `koanf:"dir"`
}

// StyleConfig overrides render style values. Zero values keep the style
// coming from the layout file.
type StyleConfig struct {
	FontSize      float64 `koanf:"font_size"`
	HeadingSize   float64 `koanf:"heading_size"`
	Color         string  `koanf:"color"`
	CurrentMarker string  `koanf:"current_marker"`
	Bullet        string  `koanf:"bullet"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `koanf:"addr"`
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if !document.KnownPageSize(c.Page.Size) {
		errs = append(errs, fmt.Errorf("unknown page size %q", c.Page.Size))
	}
	if o := strings.ToLower(c.Page.Orientation); o != "" && o != "portrait" && o != "landscape" {
		errs = append(errs, fmt.Errorf("unknown page orientation %q", c.Page.Orientation))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			errs = append(errs, fmt.Errorf("invalid locale %q: %w", c.Locale, err))
		}
	}
	return errors.Join(errs...)
}

// PageSpec converts the page settings for the document assembler.
func (c *Config) PageSpec() document.PageSpec {
	return document.PageSpec{
		Size:        c.Page.Size,
		Orientation: c.Page.Orientation,
		Margin:      strings.Fields(c.Page.Margin),
	}
}

// FontSet returns the configured fonts; empty entries fall back to the
// built-in faces.
func (c *Config) FontSet() document.FontSet {
	fs := document.DefaultFonts()
	if c.Fonts.Light != "" {
		fs.Light.Src = c.Fonts.Light
	}
	if c.Fonts.Regular != "" {
		fs.Regular.Src = c.Fonts.Regular
	}
	if c.Fonts.Bold != "" {
		fs.Bold.Src = c.Fonts.Bold
	}
	return fs
}

// ApplyStyle overlays the non-zero style settings on base. A locale sets
// the current marker unless one is given explicitly.
func (c *Config) ApplyStyle(base render.Style) render.Style {
	s := base
	if c.Locale != "" {
		s.CurrentMarker = render.CurrentMarkerFor(c.Locale)
	}
	if c.Style.FontSize > 0 {
		s.FontSize = c.Style.FontSize
	}
	if c.Style.HeadingSize > 0 {
		s.HeadingSize = c.Style.HeadingSize
	}
	if c.Style.Color != "" {
		s.Color = c.Style.Color
	}
	if c.Style.CurrentMarker != "" {
		s.CurrentMarker = c.Style.CurrentMarker
	}
	if c.Style.Bullet != "" {
		s.Bullet = c.Style.Bullet
	}
	return s
}
