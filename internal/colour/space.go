// Package colour implements the colour analysis core: YUV conversion,
// perceptual distance, palette extraction, colour naming and diverse
// subset selection.
package colour

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a colour string is not in #rrggbb form.
var ErrInvalidHex = errors.New("invalid hex colour")

var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// RGB represents an 8-bit sRGB colour.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the colour in #rrggbb notation, the canonical exchange
// format between components.
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// String returns the colour as "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses a #rrggbb string into an RGB value.
func ParseHex(s string) (RGB, error) {
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: r, G: g, B: b}, nil
}

// RGBToYUV converts 8-bit RGB channels to YUV using BT.601 coefficients.
// YUV is used as a clustering-friendly luma/chrominance space; it is not
// the space used for perceptual distance.
func RGBToYUV(r, g, b uint8) (y, u, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	y = 0.299*rf + 0.587*gf + 0.114*bf
	u = -0.14713*rf - 0.28886*gf + 0.436*bf
	v = 0.615*rf - 0.51499*gf - 0.10001*bf
	return y, u, v
}

// YUVToHex converts a YUV triple back to #rrggbb notation. Each channel
// is truncated to an integer and clamped into [0, 255], so the round
// trip through RGBToYUV is lossy by at most one unit per channel.
func YUVToHex(y, u, v float64) string {
	r := y + 1.13983*v
	g := y - 0.39465*u - 0.58060*v
	b := y + 2.03211*u
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}.Hex()
}

func clampChannel(f float64) uint8 {
	n := int(f)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Distance computes the CIEDE2000 delta-E between two hex colours.
// The result is symmetric and zero for equal colours. Either argument
// failing to parse yields ErrInvalidHex.
func Distance(a, b string) (float64, error) {
	ca, err := parseColorful(a)
	if err != nil {
		return 0, err
	}
	cb, err := parseColorful(b)
	if err != nil {
		return 0, err
	}
	return ca.DistanceCIEDE2000(cb), nil
}

func parseColorful(s string) (colorful.Color, error) {
	if !hexPattern.MatchString(s) {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return c, nil
}

// Brightness returns the BT.601 luma of a hex colour, normalised to
// [0, 1]. Unparseable colours report zero brightness.
func Brightness(hex string) float64 {
	rgb, err := ParseHex(hex)
	if err != nil {
		return 0
	}
	y, _, _ := RGBToYUV(rgb.R, rgb.G, rgb.B)
	return y / 255.0
}

// SortByBrightness returns the colours ordered dark-to-light, or
// light-to-dark when reverse is set. The input slice is not modified
// and the sort is stable with respect to input order.
func SortByBrightness(colors []string, reverse bool) []string {
	sorted := make([]string, len(colors))
	copy(sorted, colors)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, b := Brightness(sorted[j-1]), Brightness(sorted[j])
			if (!reverse && a > b) || (reverse && a < b) {
				sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			} else {
				break
			}
		}
	}
	return sorted
}
