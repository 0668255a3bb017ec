package colors

import (
	"fmt"
	"image/color"
)

// Color is an opaque 8-bit RGB triple. Every output format is derived from
// the three channels. It encodes to JSON as "#RRGGBB".
type Color struct {
	R, G, B uint8
}

func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the canonical form "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Bare returns the six hex digits without the leading '#'.
func (c Color) Bare() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// RGBString returns the CSS functional form, e.g. "rgb(135, 206, 235)".
func (c Color) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// MarshalText encodes the color as its canonical hex string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts anything ParseHex accepts.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FormatHex renders c as "#RRGGBB", two uppercase digits per channel.
func FormatHex(c Color) string {
	return c.Hex()
}
