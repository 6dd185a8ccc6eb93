package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/internal/pipeline"
	"github.com/ByLCY/folio/record"
)

func newComposeCmd() *cobra.Command {
	var (
		format    string
		skipEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "compose [data]",
		Short: "Print the composed layout without rendering a PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			dataPath := cfg.Data
			if len(args) == 1 {
				dataPath = args[0]
			}
			if dataPath == "" {
				return fmt.Errorf("no data file given")
			}
			layoutPath, err := requireLayout(cfg)
			if err != nil {
				return err
			}

			src, err := pipeline.LoadSource(layoutPath)
			if err != nil {
				return err
			}
			rec, err := record.LoadFile(dataPath)
			if err != nil {
				return err
			}
			entries, err := pipeline.NewRunner(cfg, loggerFromContext(ctx)).Compose(ctx, src, rec)
			if err != nil {
				return err
			}
			if skipEmpty {
				entries = compose.NonEmpty(entries)
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			case "outline":
				_, err := fmt.Fprint(out, outline(entries))
				return err
			default:
				return fmt.Errorf("unknown format %q (want outline or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "outline", "output format: outline or json")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "omit elements that rendered nothing")
	return cmd
}
