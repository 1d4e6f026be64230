package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/core/scene"
	isoio "github.com/matzehuels/isotower/pkg/io"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var ops bool

	cmd := &cobra.Command{
		Use:   "inspect <config>",
		Short: "Show the composed tiers, skipped elements and bounds of a config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := isoio.Import(args[0])
			if err != nil {
				return err
			}
			s, err := scene.Compose(cfg, scene.WithLogger(c.Logger))
			if err != nil {
				return err
			}

			emit(StyleTitle.Render(filepath.Base(args[0])))
			printKeyValue("hash", cfg.Hash()[:12])
			printKeyValue("theme", string(s.Theme))
			printKeyValue("canvas", fmt.Sprintf("%g × %g", s.Width, s.Height))
			printKeyValue("floor", fmt.Sprintf("%g × %g", s.FloorWidth, s.FloorDepth))
			lo, hi := s.Bounds()
			printKeyValue("bounds", fmt.Sprintf("(%.0f, %.0f) – (%.0f, %.0f)", lo.X, lo.Y, hi.X, hi.Y))
			emit(tierTable(s, nil, -1))

			for _, sk := range s.Skipped {
				printWarning("skipped %s %d: %s", sk.Kind, sk.Index, sk.Reason)
			}
			if !s.Fits() {
				printWarning("content extends past the canvas")
			}

			if ops {
				printOps(s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&ops, "ops", false, "list the draw sequence")
	return cmd
}

// printOps lists the draw sequence one op per line.
func printOps(s *scene.Scene) {
	for i, op := range s.Ops() {
		detail := op.Part
		if op.Kind.IsLabel() {
			detail = fmt.Sprintf("%q", op.Text)
		}
		emit(fmt.Sprintf("%s %s %s",
			StyleDim.Render(fmt.Sprintf("%4d", i)),
			StyleHighlight.Render(fmt.Sprintf("t%d %-10s", op.Tier, op.Kind)),
			detail))
	}
}
