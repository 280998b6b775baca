// Package overlay draws the transparent wallpaper overlay image.
package overlay

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/spiffcs/widgets/internal/constants"
	"github.com/spiffcs/widgets/internal/log"
)

// Options controls the overlay canvas and its content.
type Options struct {
	Width  int
	Height int
	// Scale is the device pixel scale; text sizes are designed for 3.
	Scale  float64
	Accent string
	// Alpha is the symbol opacity, 1 for opaque and 0 for transparent.
	Alpha float64
	// FontPath selects a TTF file. Empty uses the embedded Go Regular face,
	// which has no CJK glyphs.
	FontPath string

	Title    string
	Subtitle string
	Value    string
	Heading  string
}

// DefaultOptions returns the layout used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Width:    constants.DefaultOverlayWidth,
		Height:   constants.DefaultOverlayHeight,
		Scale:    constants.MaxDeviceScale,
		Accent:   constants.DefaultAccentColor,
		Alpha:    constants.DefaultAlpha,
		Title:    "Snow",
		Subtitle: "333",
		Value:    "44°",
		Heading:  "Next 8 hours",
	}
}

// text sizes at the maximum device scale
const (
	sizeSmall      = 35
	sizeMedium     = 40
	sizeLarge      = 60
	sizeExtraLarge = 100
	sizeBig        = 120
)

const (
	textColor  = "#FFFFFF"
	textColor1 = "#BDC0C3"
	xStart     = 50.0
)

// ScaledSize returns base scaled to the device, rounded like the layout
// expects.
func ScaledSize(base int, scale float64) float64 {
	return math.Round(float64(base) * scale / constants.MaxDeviceScale)
}

type faces struct {
	small, medium, large, extraLarge font.Face
}

func loadFaces(opts Options) (*faces, error) {
	ttf := goregular.TTF
	if opts.FontPath != "" {
		data, err := os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		ttf = data
	}
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := func(base int) font.Face {
		return truetype.NewFace(parsed, &truetype.Options{
			Size:    ScaledSize(base, opts.Scale),
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}
	return &faces{
		small:      face(sizeSmall),
		medium:     face(sizeMedium),
		large:      face(sizeLarge),
		extraLarge: face(sizeExtraLarge),
	}, nil
}

// Render draws the overlay for now.
func Render(opts Options, now time.Time) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", opts.Width, opts.Height)
	}
	if opts.Scale <= 0 {
		opts.Scale = constants.MaxDeviceScale
	}
	accent, err := ParseHexColor(opts.Accent, opts.Alpha)
	if err != nil {
		return nil, err
	}
	f, err := loadFaces(opts)
	if err != nil {
		return nil, err
	}

	w := float64(opts.Width)
	dc := gg.NewContext(opts.Width, opts.Height)
	yStart := float64(opts.Height)/2 - 250

	// Symbol block
	symbol := ScaledSize(sizeBig, opts.Scale)
	drawSymbol(dc, xStart, yStart, symbol, accent)

	// Title and sub-text to the right of the symbol
	dc.SetFontFace(f.large)
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(opts.Title, xStart+symbol+25, yStart+20, 0, 1)

	dc.SetFontFace(f.medium)
	dc.SetHexColor(textColor1)
	dc.DrawStringAnchored(opts.Subtitle, xStart+symbol+25, yStart+100, 0, 1)

	// Right aligned value
	dc.SetFontFace(f.extraLarge)
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(opts.Value, w-xStart, yStart+25, 1, 1)

	yStart += symbol + 50

	// Heading with the update time on the right
	dc.SetFontFace(f.large)
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(opts.Heading, xStart, yStart, 0, 1)

	dc.SetFontFace(f.small)
	dc.SetHexColor(textColor1)
	dc.DrawStringAnchored("Updated at "+now.Format("15:04"), w-xStart, yStart+25, 1, 1)

	log.Info("overlay created", "width", opts.Width, "height", opts.Height)
	return dc.Image(), nil
}

// drawSymbol draws a six-armed snowflake inside the size x size square at x, y.
func drawSymbol(dc *gg.Context, x, y, size float64, c color.Color) {
	cx, cy, r := x+size/2, y+size/2, size/2
	dc.SetColor(c)
	dc.SetLineWidth(math.Max(2, size/20))
	for i := 0; i < 3; i++ {
		a := float64(i) * math.Pi / 3
		dx, dy := r*math.Cos(a), r*math.Sin(a)
		dc.DrawLine(cx-dx, cy-dy, cx+dx, cy+dy)
	}
	dc.Stroke()
	dc.DrawCircle(cx, cy, size/12)
	dc.Fill()
}

// ParseHexColor parses "#RRGGBB" with an alpha in [0, 1].
func ParseHexColor(hex string, alpha float64) (color.NRGBA, error) {
	var r, g, b uint8
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q (use #RRGGBB)", hex)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	alpha = math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}, nil
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	dc := gg.NewContextForImage(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// EncodeBase64 returns img as a base64 encoded PNG.
func EncodeBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return "", err
	}
	s := base64.StdEncoding.EncodeToString(buf.Bytes())
	log.Info("encoded overlay to base64", "bytes", buf.Len())
	return s, nil
}
