package colors

import "fmt"

const (
	MinMixColors = 2
	MaxMixColors = 3
)

// Mix averages 2 or 3 colors channel by channel.
//
// Each channel is sum/n rounded half up, computed in integers as
// (2*sum + n) / (2*n), so mixing #FF0000 with #00FF00 gives #808000.
// The result does not depend on the order of cs.
func Mix(cs []Color) (Color, error) {
	n := len(cs)
	if n < MinMixColors || n > MaxMixColors {
		return Color{}, fmt.Errorf("%w: got %d", ErrInvalidMixArity, n)
	}

	var r, g, b int
	for _, c := range cs {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}

	return Color{R: average(r, n), G: average(g, n), B: average(b, n)}, nil
}

func average(sum, n int) uint8 {
	v := (2*sum + n) / (2 * n)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
