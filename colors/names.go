package colors

import (
	"math"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// NameTable maps a color name to its RGB value.
type NameTable interface {
	Lookup(name string) (Color, bool)
}

// NameTableFunc adapts a plain function to NameTable.
type NameTableFunc func(name string) (Color, bool)

func (f NameTableFunc) Lookup(name string) (Color, bool) {
	return f(name)
}

// CSSNames is the table of the 147 SVG 1.1 / CSS named colors.
// Lookups ignore case and whitespace, so "Sky Blue" finds skyblue.
var CSSNames NameTable = cssTable{}

type cssTable struct{}

func (cssTable) Lookup(name string) (Color, bool) {
	c, ok := colornames.Map[NormalizeName(name)]
	if !ok {
		return Color{}, false
	}
	return FromColor(c), true
}

// NormalizeName lowercases name and strips all whitespace.
func NormalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
}

// CSSName returns the CSS name whose value is exactly c. Aliases such as
// aqua/cyan resolve to the alphabetically first one.
func CSSName(c Color) (string, bool) {
	for _, name := range colornames.Names {
		if FromColor(colornames.Map[name]) == c {
			return name, true
		}
	}
	return "", false
}

// NearestCSSName returns the CSS named color perceptually closest to c,
// measured with CIEDE2000.
func NearestCSSName(c Color) (string, Color) {
	target := toColorful(c)

	best := ""
	bestDistance := math.Inf(1)
	for _, name := range colornames.Names {
		d := target.DistanceCIEDE2000(toColorful(FromColor(colornames.Map[name])))
		if d < bestDistance {
			best, bestDistance = name, d
		}
	}

	return best, FromColor(colornames.Map[best])
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}
