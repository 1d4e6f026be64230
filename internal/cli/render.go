package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
	"github.com/matzehuels/isotower/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file (single format), "-" for stdout, or base path
	formats  string // comma-separated formats
	theme    string // dark or light; empty keeps the config's theme
	noGrid   bool
	noLabels bool
	detailed bool    // size and position in dot/graph labels
	ops      bool    // include draw ops in json
	scale    float64 // png scale factor
	noCache  bool
	refresh  bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <config>",
		Short: "Render a diagram config to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a diagram config (.json, .toml, .yaml) to one or more formats.

Formats: ` + strings.Join(pipeline.AllFormats, ", ") + `

With a single format, --output names the file ("-" writes to stdout).
With several formats, --output is a base path and each format adds its
own extension. Without --output, files are written next to the config.`,
		Example: `  isotower render topology.yaml
  isotower render topology.yaml -f svg,png -o out/topology
  isotower render topology.toml -f live --theme light -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, base path, or "-" for stdout`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s), comma-separated (default svg)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the config theme: dark, light")
	cmd.Flags().BoolVar(&opts.noGrid, "no-grid", false, "omit the background grid")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit tier and node labels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show sizes and positions in dot/graph output")
	cmd.Flags().BoolVar(&opts.ops, "ops", false, "include the draw sequence in json output")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.AllFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"dark", "light"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	cfg, err := isoio.Import(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded config", "path", input, "tiers", len(cfg.Tiers), "nodes", len(cfg.Nodes))

	popts := pipeline.Options{
		Formats:  parseFormats(opts.formats),
		Theme:    opts.theme,
		NoGrid:   opts.noGrid,
		NoLabels: opts.noLabels,
		Detailed: opts.detailed,
		Ops:      opts.ops,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	targets, err := outputPaths(input, opts.output, popts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if opts.output != "-" {
		spin = newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
		spin.Start()
	}
	res, err := runner.Render(ctx, cfg, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	for _, format := range popts.Formats {
		if err := writeOutput(targets[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	if opts.output == "-" {
		return nil
	}
	printSuccess("Rendered %s", filepath.Base(input))
	printRenderStats(res.Stats, res.CacheInfo)
	for _, format := range popts.Formats {
		printFile(targets[format])
	}
	if !res.Stats.Fits {
		printWarning("content extends past the %gx%g canvas", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	prog.done("render complete", "formats", len(popts.Formats))
	return nil
}

// outputPaths maps each format to its destination. An empty string means
// stdout.
func outputPaths(input, output string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))

	if output == "-" {
		if len(formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format, got %d", len(formats))
		}
		paths[formats[0]] = ""
		return paths, nil
	}

	if output != "" && len(formats) == 1 {
		if err := errors.ValidatePath(output); err != nil {
			return nil, err
		}
		paths[formats[0]] = output
		return paths, nil
	}

	base := basePath(output, input)
	for _, f := range formats {
		p := base + pipeline.Extension(f)
		if err := errors.ValidatePath(p); err != nil {
			return nil, err
		}
		paths[f] = p
	}
	return paths, nil
}

// basePath strips a known extension from output, or derives the base from
// input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// ".live.svg" also ends in ".svg"; the longest match wins.
	var match string
	for _, f := range pipeline.AllFormats {
		if ext := pipeline.Extension(f); strings.HasSuffix(output, ext) && len(ext) > len(match) {
			match = ext
		}
	}
	return strings.TrimSuffix(output, match)
}

func writeOutput(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// openOutput opens path for writing, creating parent directories. An empty
// path is stdout.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
