package pkpass

import (
	"fmt"
	"regexp"
	"strconv"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// DefaultColor is the copper accent used when no usable colour is given.
var DefaultColor = RGB{R: 184, G: 115, B: 51}

// RGB is an 8-bit colour triplet.
type RGB struct {
	R, G, B uint8
}

// String renders the colour the way pass.json expects it: "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// DecodeColor parses a 6-digit hex colour with an optional leading '#'.
// Anything else, including the empty string, yields DefaultColor.
func DecodeColor(s string) RGB {
	m := hexColor.FindStringSubmatch(s)
	if m == nil {
		return DefaultColor
	}
	var out [3]uint8
	for i := range out {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return DefaultColor
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}
}
