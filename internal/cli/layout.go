package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/internal/pipeline"
	"github.com/ByLCY/folio/layout"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect and edit layout files",
		Long: `Inspect and edit layout files.

Editing commands rewrite the whole file and renumber element order to
0..n-1. They work on .json, .yaml and .toml layouts; convert a .folio
layout with "layout export" first.`,
	}
	cmd.AddCommand(newLayoutShowCmd())
	cmd.AddCommand(newLayoutExportCmd())
	cmd.AddCommand(newLayoutMoveCmd())
	cmd.AddCommand(newLayoutStepCmd("up", "Move an element one position earlier", (*layout.Config).MoveUp))
	cmd.AddCommand(newLayoutStepCmd("down", "Move an element one position later", (*layout.Config).MoveDown))
	cmd.AddCommand(newLayoutSetCmd())
	return cmd
}

func newLayoutShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List layout elements in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := requireLayout(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			src, err := pipeline.LoadSource(path)
			if err != nil {
				return err
			}
			writeElementTable(cmd.OutOrStdout(), src.Config)
			return nil
		},
	}
}

func writeElementTable(w io.Writer, cfg *layout.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Type", "Source", "Wrap", "Margin", "Settings"})
	for i, el := range cfg.Sorted() {
		wrap := ""
		if el.Wrap {
			wrap = "yes"
		}
		t.AppendRow(table.Row{
			i,
			el.ID,
			el.Kind,
			el.Source,
			wrap,
			fmt.Sprintf("%g / %g", el.MarginTop, el.MarginBottom),
			settingKeys(el.Settings),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d elements", len(cfg.Elements))})
	t.Render()
}

func settingKeys(settings map[string]any) string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func newLayoutExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the layout elements as json, yaml or toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := requireLayout(configFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			src, err := pipeline.LoadSource(path)
			if err != nil {
				return err
			}
			return layout.Encode(cmd.OutOrStdout(), src.Config.EnsureIDs(), layout.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "json, yaml or toml")
	return cmd
}

func newLayoutMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move an element to a position (clamped to the layout bounds)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position %q is not an integer", args[1])
			}
			return editLayout(cmd, func(cfg *layout.Config) (*layout.Config, error) {
				return cfg.Move(args[0], to)
			})
		},
	}
}

func newLayoutStepCmd(name, short string, step func(*layout.Config, string) (*layout.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editLayout(cmd, func(cfg *layout.Config) (*layout.Config, error) {
				return step(cfg, args[0])
			})
		},
	}
}

func newLayoutSetCmd() *cobra.Command {
	var (
		wrap         bool
		toggle       bool
		marginTop    float64
		marginBottom float64
	)
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Change wrap and margins of an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			flags := cmd.Flags()
			if !flags.Changed("wrap") && !toggle && !flags.Changed("margin-top") && !flags.Changed("margin-bottom") {
				return fmt.Errorf("nothing to change: use --wrap, --toggle-wrap, --margin-top or --margin-bottom")
			}
			return editLayout(cmd, func(cfg *layout.Config) (*layout.Config, error) {
				var err error
				switch {
				case toggle:
					cfg, err = cfg.ToggleWrap(id)
				case flags.Changed("wrap"):
					cfg, err = cfg.SetWrap(id, wrap)
				}
				if err != nil {
					return nil, err
				}
				if flags.Changed("margin-top") || flags.Changed("margin-bottom") {
					el, ok := cfg.Find(id)
					if !ok {
						return nil, fmt.Errorf("%w: %s", layout.ErrElementNotFound, id)
					}
					top, bottom := el.MarginTop, el.MarginBottom
					if flags.Changed("margin-top") {
						top = marginTop
					}
					if flags.Changed("margin-bottom") {
						bottom = marginBottom
					}
					return cfg.SetMargins(id, top, bottom)
				}
				return cfg, nil
			})
		},
	}
	cmd.Flags().BoolVar(&wrap, "wrap", false, "allow the element to split across pages")
	cmd.Flags().BoolVar(&toggle, "toggle-wrap", false, "flip the wrap flag")
	cmd.Flags().Float64Var(&marginTop, "margin-top", 0, "space above the element (pt)")
	cmd.Flags().Float64Var(&marginBottom, "margin-bottom", 0, "space below the element (pt)")
	cmd.MarkFlagsMutuallyExclusive("wrap", "toggle-wrap")
	return cmd
}

// editLayout loads the layout file, applies edit and rewrites the file.
func editLayout(cmd *cobra.Command, edit func(*layout.Config) (*layout.Config, error)) error {
	path, err := requireLayout(configFromContext(cmd.Context()))
	if err != nil {
		return err
	}
	if pipeline.IsDSL(path) {
		return fmt.Errorf("%s: .folio layouts are read-only here; use \"folio layout export\" to convert", path)
	}
	cfg, err := layout.LoadFile(path)
	if err != nil {
		return err
	}
	next, err := edit(cfg)
	if err != nil {
		return err
	}
	if err := layout.WriteFile(path, next); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("layout updated", "path", path)
	writeElementTable(cmd.OutOrStdout(), next)
	return nil
}
