// Package palette holds the color helpers used by the renderers: two-stop
// ramps, RGB/HSL conversion and saturation boosts. Everything here is a
// pure function of its inputs.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Ramp interpolates linearly in RGB between two color stops.
type Ramp struct {
	from, to colorful.Color
}

// NewRamp parses two "#rrggbb" stops.
func NewRamp(from, to string) (Ramp, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return Ramp{}, errors.Wrapf(err, "parse ramp stop %q", from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return Ramp{}, errors.Wrapf(err, "parse ramp stop %q", to)
	}
	return Ramp{from: a, to: b}, nil
}

// MustRamp is NewRamp for compile-time stops.
func MustRamp(from, to string) Ramp {
	r, err := NewRamp(from, to)
	if err != nil {
		panic(err)
	}
	return r
}

// At samples the ramp at t, clamped to [0, 1].
func (r Ramp) At(t float64) color.RGBA {
	return toRGBA(r.from.BlendRgb(r.to, clamp01(t)))
}

// TriangleProgress maps bin i of n onto a symmetric ramp that is 0 at both
// edges. Odd n peaks at 1 on the single centre bin; even n peaks on the
// centre two at (n-2)/(n-1). Bins i and n-1-i always get the same value.
func TriangleProgress(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	span := float64(n - 1)
	return 1 - math.Abs(float64(2*i)-span)/span
}

// Hex parses "#rrggbb" into an opaque RGBA.
func Hex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "parse color %q", s)
	}
	return toRGBA(c), nil
}

// MustHex is Hex for compile-time constants.
func MustHex(s string) color.RGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHex formats c as "#rrggbb", dropping alpha.
func ToHex(c color.RGBA) string {
	return fromRGBA(c).Hex()
}

// RGBToHSL returns hue in degrees [0, 360) and saturation, lightness in [0, 1].
// Achromatic colors report hue 0 and saturation 0.
func RGBToHSL(c color.RGBA) (h, s, l float64) {
	return fromRGBA(c).Hsl()
}

// HSLToRGB is the inverse of RGBToHSL.
func HSLToRGB(h, s, l float64) color.RGBA {
	return toRGBA(colorful.Hsl(h, clamp01(s), clamp01(l)))
}

// Saturate raises the HSL saturation of c by amount (a fraction, capped at 1)
// and keeps its hue, lightness and alpha.
func Saturate(c color.RGBA, amount float64) color.RGBA {
	h, s, l := RGBToHSL(c)
	out := HSLToRGB(h, math.Min(1, s+amount), l)
	out.A = c.A
	return out
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
