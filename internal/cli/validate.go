package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
)

func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <config>...",
		Short: "Check diagram configs for structural problems",
		Long: `Check that each config parses and is renderable.

Structural problems (missing canvas, no tiers, unknown theme, unknown keys)
fail validation. Nodes and pillars that reference missing tiers are reported
as warnings; with --strict they fail validation too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := c.validateOne(path, strict); err != nil {
					printError("%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				printSuccess("%s", path)
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeInvalidConfig, "%d of %d configs failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat skipped nodes and pillars as errors")
	return cmd
}

func (c *CLI) validateOne(path string, strict bool) error {
	cfg, err := isoio.Import(path)
	if err != nil {
		return err
	}
	s, err := scene.Compose(cfg, scene.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	for _, sk := range s.Skipped {
		printDetail("skipped %s %d: %s", sk.Kind, sk.Index, sk.Reason)
	}
	if strict && len(s.Skipped) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s skipped", plural(len(s.Skipped), "element"))
	}
	if !s.Fits() {
		printDetail("content extends past the canvas")
	}
	c.Logger.Debug("validated", "path", path, "tiers", len(s.Tiers), "nodes", s.NodeCount())
	return nil
}
