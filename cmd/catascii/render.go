package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/cli"
	"catascii-hq/catascii/pkg/config"
	"catascii-hq/catascii/pkg/telemetry/logging"
)

var renderFlags struct {
	output   string
	width    int
	noColor  bool
	fragment bool
	info     bool
	format   string
}

var renderCmd = &cobra.Command{
	Use:   "render [image-file]",
	Short: "Render an image file, or a random cat, as ASCII art",
	Long: `Render an image as HTML ASCII art without starting the server.

With a file argument the file is decoded locally. Without one, a random cat
is fetched exactly as the server would.

Examples:
  # Random cat to stdout
  catascii render

  # Local file, 60 columns, no color, to a file
  catascii render photo.jpg --width 60 --no-color --output photo.html

  # Print image details as JSON on stderr
  catascii render --info --format json -o cat.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFlags.output, "output", "o", "-", "output file (- for stdout)")
	renderCmd.Flags().IntVar(&renderFlags.width, "width", 0, "override render width in columns")
	renderCmd.Flags().BoolVar(&renderFlags.noColor, "no-color", false, "disable color spans")
	renderCmd.Flags().BoolVar(&renderFlags.fragment, "fragment", false, "emit a <pre> fragment instead of a full document")
	renderCmd.Flags().BoolVar(&renderFlags.info, "info", false, "print image details to stderr")
	renderCmd.Flags().StringVar(&renderFlags.format, "format", string(cli.FormatText), "info format (text, json)")
}

// renderInfo describes a rendered image for --info.
type renderInfo struct {
	Source    string `json:"source"`
	Format    string `json:"format"`
	Bytes     int    `json:"bytes"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	HTMLBytes int    `json:"html_bytes"`
}

func (i renderInfo) String() string {
	return fmt.Sprintf("%s: %s %dx%d, %d bytes -> %d bytes of HTML",
		i.Source, i.Format, i.Width, i.Height, i.Bytes, i.HTMLBytes)
}

func runRender(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(renderFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRenderOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	client := art.NewClient(newClientConfig(cfg, nil), logger.Slog())
	pipeline := art.NewPipeline(client, art.NewDecoder(cfg.Render.MaxPixels), conv)

	var (
		result art.Result
		source string
	)
	if len(args) == 1 {
		source = args[0]
		data, err := os.ReadFile(source)
		if err != nil {
			return cli.NewCommandError("render", err)
		}
		result, err = pipeline.RenderBytes(data)
		if err != nil {
			return cli.NewCommandError("render", fmt.Errorf("%s: %w", art.Kind(err), err))
		}
	} else {
		result, err = pipeline.Render(cmd.Context())
		if err != nil {
			return cli.NewCommandError("render", fmt.Errorf("%s: %w", art.Kind(err), err))
		}
		source = result.Descriptor.URL
	}

	if err := writeOutput(cmd.OutOrStdout(), renderFlags.output, result.HTML); err != nil {
		return cli.NewCommandError("render", err)
	}

	if renderFlags.info {
		info := renderInfo{
			Source:    source,
			Format:    result.Format,
			Bytes:     result.Bytes,
			Width:     result.Width,
			Height:    result.Height,
			HTMLBytes: len(result.HTML),
		}
		if err := cli.NewFormatter(format).FormatTo(cmd.ErrOrStderr(), info); err != nil {
			return cli.NewCommandError("render", err)
		}
	}
	return nil
}

func applyRenderOverrides(cfg *config.Config) {
	if renderFlags.width > 0 {
		cfg.Render.Width = renderFlags.width
	}
	if renderFlags.noColor {
		cfg.Render.Colored = false
	}
	if renderFlags.fragment {
		cfg.Render.Document = false
	}
}

func writeOutput(stdout io.Writer, path, html string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(stdout, html)
		return err
	}
	return os.WriteFile(path, []byte(html), 0o644)
}
