// Package cli implements the folio command-line interface.
//
// Commands:
//   - render: compose a layout against resume data and write PDFs
//   - compose: print the composed entries as JSON or a coloured outline
//   - layout: inspect and edit layout files
//   - serve: expose compose and render over HTTP
//
// All commands accept --verbose (-v) for debug logging. The logger and the
// merged configuration travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/internal/config"
)

var version = "dev"

// SetVersion sets the version shown by --version.
func SetVersion(v string) { version = v }

// Execute runs the folio CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "folio",
		Short:        "folio composes resumes from layouts and data",
		Long:         `folio turns a resume record and an ordered layout of renderer elements into a paginated PDF.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			level := charmlog.InfoLevel
			if cfg.Verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./folio.yaml)")
	pf.BoolP("verbose", "v", false, "enable verbose logging")
	pf.StringP("layout", "l", "", "layout file (.folio, .json, .yaml or .toml)")
	pf.String("locale", "", "locale for the current-position marker, e.g. ko, en-US")
	pf.String("page-size", "", "paper size: A4, A5, Letter or Legal")
	pf.String("orientation", "", "portrait or landscape")
	pf.String("margin", "", `page margin, 1-4 lengths, e.g. "30pt" or "20mm 15mm"`)
	pf.String("font-dir", "", "directory for relative font paths")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newComposeCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newServeCmd())
	return root
}

// requireLayout returns the layout path from flags or config.
func requireLayout(cfg *config.Config) (string, error) {
	if cfg.Layout == "" {
		return "", fmt.Errorf("no layout given: use --layout or set layout in %s", config.FileName)
	}
	if _, err := os.Stat(cfg.Layout); err != nil {
		return "", fmt.Errorf("layout %s: %w", cfg.Layout, err)
	}
	return cfg.Layout, nil
}
