// Package pipeline runs the compose → assemble → render chain shared by
// the CLI and the HTTP server.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/internal/config"
	"github.com/ByLCY/folio/record"
	"github.com/ByLCY/folio/render"
	canvasrenderer "github.com/ByLCY/folio/renderer/canvas"
)

// Runner holds the collaborators of a pipeline run. It keeps no per-run
// state, so one Runner may serve concurrent requests.
type Runner struct {
	Registry *render.Registry
	Settings *config.Config
	Renderer *canvasrenderer.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner with the built-in renderers. A nil settings
// value means defaults; a nil logger means log.Default().
func NewRunner(settings *config.Config, logger *log.Logger) *Runner {
	if settings == nil {
		settings = &config.Config{Concurrency: config.DefaultConcurrency}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: render.Default(),
		Settings: settings,
		Renderer: canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: settings.Fonts.Dir, Logger: logger}),
		Logger:   logger,
	}
}

// Stats records how long each stage took.
type Stats struct {
	ComposeTime  time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
	Pages        int
}

// Result is the output of a full run.
type Result struct {
	Entries  []compose.Entry
	Document *document.Result
	PDF      []byte
	Stats    Stats
}

// Style returns the effective render style for src.
func (r *Runner) Style(src *Source) render.Style {
	return r.Settings.ApplyStyle(src.Style)
}

// Compose renders the layout elements against rec.
func (r *Runner) Compose(ctx context.Context, src *Source, rec record.Value) ([]compose.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return compose.Compose(src.Config, rec, compose.Options{
		Registry: r.Registry,
		Style:    r.Style(src),
		Logger:   r.Logger,
	})
}

// Execute runs compose, assemble and render.
func (r *Runner) Execute(ctx context.Context, src *Source, rec record.Value) (*Result, error) {
	res := &Result{}

	start := time.Now()
	entries, err := r.Compose(ctx, src, rec)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	res.Entries = entries
	res.Stats.ComposeTime = time.Since(start)
	r.Logger.Debug("composed layout", "layout", src.Name, "entries", len(entries), "duration", res.Stats.ComposeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	doc, err := document.Assemble(entries, r.documentOptions(src, rec))
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}
	res.Document = doc
	res.Stats.AssembleTime = time.Since(start)
	res.Stats.Pages = len(doc.Pages)
	r.Logger.Debug("assembled document", "pages", len(doc.Pages), "duration", res.Stats.AssembleTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	pdf, err := r.Renderer.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.PDF = pdf
	res.Stats.RenderTime = time.Since(start)
	r.Logger.Debug("rendered pdf", "bytes", len(pdf), "duration", res.Stats.RenderTime)
	return res, nil
}

func (r *Runner) documentOptions(src *Source, rec record.Value) document.Options {
	page := src.Page
	if r.Settings.Page.Size != "" {
		page.Size = r.Settings.Page.Size
	}
	if r.Settings.Page.Orientation != "" {
		page.Orientation = r.Settings.Page.Orientation
	}
	if m := r.Settings.PageSpec().Margin; len(m) > 0 {
		page.Margin = m
	}

	meta := src.Meta
	if meta.Title == "" {
		meta.Title = binding.Resolve("basics.name", rec).Text()
	}
	if meta.Author == "" {
		meta.Author = binding.Resolve("basics.name", rec).Text()
	}

	return document.Options{
		Typesetter: r.Renderer,
		Page:       page,
		Fonts:      r.Settings.FontSet(),
		Meta:       meta,
		FontSize:   r.Style(src).FontSize,
	}
}
