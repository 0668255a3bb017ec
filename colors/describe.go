package colors

import (
	"fmt"
	"image/color"
	"math"
)

// Description holds the display strings shown next to a swatch.
type Description struct {
	Hex      string `json:"hex"`
	RGB      string `json:"rgb"`
	HSL      string `json:"hsl"`
	HSV      string `json:"hsv"`
	CMYK     string `json:"cmyk"`
	Contrast string `json:"contrast"`
}

func Describe(c Color) Description {
	cf := toColorful(c)

	h, s, l := cf.Hsl()
	hv, sv, v := cf.Hsv()
	cy, m, y, k := color.RGBToCMYK(c.R, c.G, c.B)

	return Description{
		Hex:      c.Hex(),
		RGB:      c.RGBString(),
		HSL:      fmt.Sprintf("hsl(%d, %d%%, %d%%)", degrees(h), percent(s), percent(l)),
		HSV:      fmt.Sprintf("hsv(%d, %d%%, %d%%)", degrees(hv), percent(sv), percent(v)),
		CMYK:     fmt.Sprintf("cmyk(%d, %d, %d, %d)", cmykPercent(cy), cmykPercent(m), cmykPercent(y), cmykPercent(k)),
		Contrast: Contrast(c).Hex(),
	}
}

// Contrast picks black or white, whichever reads better on top of c.
func Contrast(c Color) Color {
	l, _, _ := toColorful(c).Lab()
	if l > 0.6 {
		return Color{}
	}
	return Color{R: 0xff, G: 0xff, B: 0xff}
}

func degrees(h float64) int {
	if math.IsNaN(h) {
		return 0
	}
	return int(math.Round(h)) % 360
}

func percent(f float64) int {
	return int(math.Round(f * 100))
}

func cmykPercent(v uint8) int {
	return int(math.Round(float64(v) * 100 / 255))
}
