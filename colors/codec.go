package colors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseHex parses "#RGB", "#RRGGBB" or either form without the '#'.
// Digits are case-insensitive; in the short form each digit is doubled.
func ParseHex(input string) (Color, error) {
	h := strings.TrimPrefix(input, "#")

	switch len(h) {
	case 3:
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[2*i] = h[i]
			expanded[2*i+1] = h[i]
		}
		h = string(expanded[:])
	case 6:
	default:
		return Color{}, fmt.Errorf("%w: %q must be 3 or 6 hex digits", ErrInvalidFormat, input)
	}

	var channels [3]uint8
	for i := range channels {
		hi, ok1 := hexNibble(h[2*i])
		lo, ok2 := hexNibble(h[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("%w: %q contains a non-hex digit", ErrInvalidFormat, input)
		}
		channels[i] = hi<<4 | lo
	}

	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

var functionalPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[0-9.]+%?\s*)?\)$`)

// ParseCSSColor resolves free-form user input: hex first, then the
// functional rgb()/rgba() notation, then the supplied name table.
// Alpha in rgba() is accepted and ignored.
func ParseCSSColor(input string, names NameTable) (Color, error) {
	str := strings.TrimSpace(input)
	if str == "" {
		return Color{}, fmt.Errorf("%w: empty input", ErrUnresolvedColor)
	}

	if c, err := ParseHex(str); err == nil {
		return c, nil
	}

	if m := functionalPattern.FindStringSubmatch(str); m != nil {
		return Color{R: channelValue(m[1]), G: channelValue(m[2]), B: channelValue(m[3])}, nil
	}

	if names != nil {
		if c, ok := names.Lookup(str); ok {
			return c, nil
		}
	}

	return Color{}, fmt.Errorf("%w: %q is neither a hex code nor a known color name", ErrUnresolvedColor, input)
}

// channelValue clamps like a browser does for rgb(300, 0, 0).
func channelValue(digits string) uint8 {
	v, err := strconv.Atoi(digits)
	if err != nil || v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
