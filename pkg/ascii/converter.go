// Package ascii renders images as HTML ASCII art.
//
// Each output cell covers a block of source pixels. The image is resampled
// with golang.org/x/image/draw to the target grid and every cell is mapped
// to a ramp character by github.com/qeesung/image2ascii. This package emits
// the HTML: escaped characters and, when Colored is set, runs of cells
// sharing a color wrapped in one styled span. Rows are halved relative to
// columns because monospace glyphs are roughly twice as tall as wide.
//
// Output is a pure function of the image and Options.
package ascii

import (
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"math"
	"strings"

	i2a "github.com/qeesung/image2ascii/ascii"
	xdraw "golang.org/x/image/draw"
)

// ErrEmptyImage is returned for images with zero width or height.
var ErrEmptyImage = errors.New("image has zero area")

const (
	// DefaultWidth is the default number of columns.
	DefaultWidth = 100

	// DefaultCharacters is the default ramp, light to dense.
	DefaultCharacters = " .:-=+*#%@"

	// DefaultTitle is the document title.
	DefaultTitle = "ascii art"

	// cellAspect scales rows relative to columns.
	cellAspect = 0.5

	// maxRowsPerColumn bounds rows to Width*maxRowsPerColumn so tall strips
	// cannot blow up the output.
	maxRowsPerColumn = 4

	// maxIntensity is the largest summed RGB intensity a pixel can have.
	maxIntensity = 255 * 3
)

// Options controls rendering.
type Options struct {
	// Width is the maximum number of columns. Images narrower than Width
	// are never upscaled.
	Width int

	// Characters is the ramp from lightest to densest: printable ASCII, at
	// least two characters. See CheckRamp.
	Characters string

	// Colored wraps characters in spans carrying the source color.
	Colored bool

	// Document emits a complete HTML document instead of a <pre> fragment.
	Document bool

	// Title is the document title when Document is set.
	Title string
}

// DefaultOptions returns colored full-document output at DefaultWidth.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Characters: DefaultCharacters,
		Colored:    true,
		Document:   true,
		Title:      DefaultTitle,
	}
}

// Converter renders images. It holds no mutable state and is safe for
// concurrent use.
type Converter struct {
	opts    Options
	pixels  i2a.PixelConverter
	mapping i2a.Options
	escaped [256]string
}

// CheckRamp reports whether chars can serve as a character ramp. Characters
// must be printable ASCII, and the ramp must be short enough that the
// brightest pixel still maps inside it.
func CheckRamp(chars string) error {
	n := len(chars)
	if n < 2 {
		return fmt.Errorf("characters must contain at least 2 characters, got %d", n)
	}
	for i := 0; i < n; i++ {
		if chars[i] < 0x20 || chars[i] > 0x7e {
			return fmt.Errorf("characters must be printable ASCII, got %q at position %d", chars[i], i)
		}
	}
	if n-1 > maxIntensity || rampIndex(maxIntensity, n) > n-1 {
		return fmt.Errorf("character ramp of %d characters is too long", n)
	}
	return nil
}

// rampIndex is the ramp position image2ascii picks for an intensity.
func rampIndex(intensity, n int) int {
	step := float64(maxIntensity / (n - 1))
	return int(math.Floor(float64(intensity)/step + 0.5))
}

// NewConverter validates opts and pre-escapes the ramp.
func NewConverter(opts Options) (*Converter, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("width must be positive, got %d", opts.Width)
	}
	if opts.Characters == "" {
		opts.Characters = DefaultCharacters
	}
	if err := CheckRamp(opts.Characters); err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}

	c := &Converter{
		opts:   opts,
		pixels: i2a.NewPixelConverter(),
		mapping: i2a.Options{
			Pixels:  []byte(opts.Characters),
			Colored: opts.Colored,
		},
	}
	for i := 0; i < len(opts.Characters); i++ {
		ch := opts.Characters[i]
		c.escaped[ch] = html.EscapeString(string(rune(ch)))
	}

	return c, nil
}

// Options returns the effective options.
func (c *Converter) Options() Options {
	return c.opts
}

// Grid returns the number of columns and rows img renders to.
func (c *Converter) Grid(img image.Image) (cols, rows int, err error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, 0, ErrEmptyImage
	}

	cols = min(c.opts.Width, b.Dx())
	rows = int(float64(b.Dy())*float64(cols)/float64(b.Dx())*cellAspect + 0.5)

	if maxRows := c.opts.Width * maxRowsPerColumn; rows > maxRows {
		rows = maxRows
		cols = int(float64(b.Dx())*float64(rows)/(float64(b.Dy())*cellAspect) + 0.5)
		cols = max(1, min(cols, c.opts.Width, b.Dx()))
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows, nil
}

// Convert renders img as HTML.
func (c *Converter) Convert(img image.Image) (string, error) {
	cols, rows, err := c.Grid(img)
	if err != nil {
		return "", err
	}

	grid := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	xdraw.ApproxBiLinear.Scale(grid, grid.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	var sb strings.Builder
	sb.Grow(rows * cols * c.cellSize())

	if c.opts.Document {
		c.writeHeader(&sb)
	}
	sb.WriteString("<pre>")
	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		c.writeRow(&sb, grid, y)
	}
	sb.WriteString("</pre>")
	if c.opts.Document {
		sb.WriteString("\n</body>\n</html>\n")
	}

	return sb.String(), nil
}

func (c *Converter) cellSize() int {
	if c.opts.Colored {
		return 8
	}
	return 1
}

func (c *Converter) writeRow(sb *strings.Builder, grid *image.NRGBA, y int) {
	open := false
	var current color.NRGBA

	for x := 0; x < grid.Rect.Dx(); x++ {
		px := grid.NRGBAAt(x, y)
		if c.opts.Colored {
			px.A = 0xff
			if !open || px != current {
				if open {
					sb.WriteString("</span>")
				}
				fmt.Fprintf(sb, `<span style="color:#%02x%02x%02x">`, px.R, px.G, px.B)
				current = px
				open = true
			}
		}
		cell := c.pixels.ConvertPixelToPixelASCII(grid.NRGBAAt(x, y), &c.mapping)
		sb.WriteString(c.escaped[cell.Char])
	}

	if open {
		sb.WriteString("</span>")
	}
}

func (c *Converter) writeHeader(sb *strings.Builder) {
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString("<title>")
	sb.WriteString(html.EscapeString(c.opts.Title))
	sb.WriteString("</title>\n")
	sb.WriteString("<style>body{background:#000;margin:0}pre{color:#fff;font-family:monospace;font-size:8px;line-height:1;margin:0}</style>\n")
	sb.WriteString("</head>\n<body>\n")
}
