package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// HexColor normalizes a color to 6 upper-case hex digits without '#'.
// Malformed colors yield fallback.
func HexColor(c, fallback string) string {
	c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(c) != 6 {
		return fallback
	}
	if _, err := strconv.ParseUint(c, 16, 32); err != nil {
		return fallback
	}
	return c
}

// RGB splits a normalized hex color into its channels
func RGB(hex string) (r, g, b uint8) {
	v, err := strconv.ParseUint(HexColor(hex, "000000"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// CSSColor renders a hex color with a transparency percentage as a CSS color
func CSSColor(hex string, transparency int) string {
	if transparency <= 0 {
		return "#" + HexColor(hex, "000000")
	}
	if transparency > 100 {
		transparency = 100
	}
	r, g, b := RGB(hex)
	alpha := float64(100-transparency) / 100
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}
