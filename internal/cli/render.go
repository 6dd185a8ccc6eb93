package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/internal/pipeline"
	"github.com/ByLCY/folio/record"
)

// renderJob is one data file and where its outputs go.
type renderJob struct {
	data   string
	output string
	debug  string
}

func newRenderCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "render [data...]",
		Short: "Render resume data to PDF",
		Long: `Render composes the layout against each data file and writes a PDF.

With several data files the output flag names a directory and every file
gets <name>.pdf inside it. Files are rendered in parallel.`,
		Example: `  folio render -l examples/classic.folio examples/resume.json -o out/resume.pdf
  folio render -l examples/layout.yaml a.json b.yaml -o out/ -j 2
  folio render -l examples/classic.folio examples/resume.json --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			inputs := args
			if len(inputs) == 0 && cfg.Data != "" {
				inputs = []string{cfg.Data}
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no data file given")
			}
			layoutPath, err := requireLayout(cfg)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(cfg, logger)
			jobs := planJobs(inputs, cfg.Output, cfg.Debug)
			build := func() error {
				return renderAll(ctx, runner, layoutPath, jobs, cfg.Concurrency)
			}

			if !watch {
				return build()
			}
			if err := build(); err != nil {
				logger.Error("render failed", "err", err)
			}
			return watchFiles(ctx, logger, append([]string{layoutPath}, inputs...), build)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output PDF path, or directory for several inputs")
	cmd.Flags().String("debug", "", "also write the page geometry as JSON to this path")
	cmd.Flags().IntP("concurrency", "j", 0, "maximum parallel renders")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when the layout or data changes")
	return cmd
}

// planJobs derives output paths. A single input writes to output as given;
// several inputs treat output (or its directory when it ends in .pdf) as a
// directory.
func planJobs(inputs []string, output, debug string) []renderJob {
	if len(inputs) == 1 {
		return []renderJob{{data: inputs[0], output: output, debug: debug}}
	}
	outDir := output
	if strings.EqualFold(filepath.Ext(output), ".pdf") {
		outDir = filepath.Dir(output)
	}
	debugDir := debug
	if strings.EqualFold(filepath.Ext(debug), ".json") {
		debugDir = filepath.Dir(debug)
	}
	jobs := make([]renderJob, 0, len(inputs))
	for _, in := range inputs {
		stem := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		j := renderJob{data: in, output: filepath.Join(outDir, stem+".pdf")}
		if debug != "" {
			j.debug = filepath.Join(debugDir, stem+".json")
		}
		jobs = append(jobs, j)
	}
	return jobs
}

func renderAll(ctx context.Context, runner *pipeline.Runner, layoutPath string, jobs []renderJob, limit int) error {
	src, err := pipeline.LoadSource(layoutPath)
	if err != nil {
		return err
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, j := range jobs {
		g.Go(func() error {
			if err := renderOne(gctx, runner, src, j); err != nil {
				return fmt.Errorf("%s: %w", j.data, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func renderOne(ctx context.Context, runner *pipeline.Runner, src *pipeline.Source, j renderJob) error {
	prog := newProgress(runner.Logger)

	rec, err := record.LoadFile(j.data)
	if err != nil {
		return err
	}
	res, err := runner.Execute(ctx, src, rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(j.output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(j.output, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", j.output, err)
	}
	if j.debug != "" {
		if err := document.WriteDebugJSON(res.Document, j.debug); err != nil {
			return fmt.Errorf("write %s: %w", j.debug, err)
		}
	}
	prog.done("rendered "+filepath.Base(j.output), "pages", res.Stats.Pages)
	return nil
}
