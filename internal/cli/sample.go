package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
)

const defaultSamplePath = "isotower.yaml"

func (c *CLI) sampleCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sample [path]",
		Short: "Write a sample two-tier config to start from",
		Long: `Write a sample config with a data tier, an edge tier and a pillar between
them. The format follows the extension of path (default ` + defaultSamplePath + `).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSamplePath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := isoio.Export(diagram.Sample(), path); err != nil {
				return err
			}
			printSuccess("Wrote sample config")
			printFile(path)
			printNextStep("Render it", "isotower render "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
