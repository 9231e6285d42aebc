// Package colorcodec converts between the HSL strings stored in the settings
// record ("204 66% 21%") and the #rrggbb strings that colour widgets expect.
//
// Both directions are lossy: components are rounded to whole degrees and
// percents, and channels to whole bytes. Neither direction ever fails;
// unparseable input yields black.
package colorcodec

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// FallbackHex is returned by HSLToHex for unparseable input.
	FallbackHex = "#000000"
	// FallbackHSL is returned by HexToHSL for unparseable input.
	FallbackHSL = "0 0% 0%"
)

// HSL is a colour as hue in degrees and saturation/lightness in percent.
type HSL struct {
	H, S, L float64
}

// String formats c in the canonical "H S% L%" form with integer components.
func (c HSL) String() string {
	return fmt.Sprintf("%d %d%% %d%%", roundScaled(c.H, 1), roundScaled(c.S, 1), roundScaled(c.L, 1))
}

// ParseHSL extracts the first three numeric tokens of s as hue, saturation
// and lightness. Separators are ignored, so "204 66% 21%", "204,66,21" and
// "hsl(204, 66%, 21%)" all parse the same. ok is false for fewer than three
// tokens.
func ParseHSL(s string) (c HSL, ok bool) {
	tokens := numericTokens(s, 3)
	if len(tokens) < 3 {
		return HSL{}, false
	}
	return HSL{H: tokens[0], S: tokens[1], L: tokens[2]}, true
}

// HSLToHex converts an HSL string to lowercase "#rrggbb".
// Returns FallbackHex when fewer than three numbers can be found.
func HSLToHex(hsl string) string {
	c, ok := ParseHSL(hsl)
	if !ok {
		return FallbackHex
	}
	r, g, b := c.rgb()
	return formatHex(r, g, b)
}

// HexToHSL converts "#rrggbb" (leading '#' optional, any case) to the
// canonical HSL string. Any other shape returns FallbackHSL.
func HexToHSL(s string) string {
	r8, g8, b8, ok := parseHex(s)
	if !ok {
		return FallbackHSL
	}

	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	var h, sat float64
	if hi != lo {
		d := hi - lo
		if l > 0.5 {
			sat = d / (2 - hi - lo)
		} else {
			sat = d / (hi + lo)
		}
		switch hi {
		case r:
			wrap := 0.0
			if g < b {
				wrap = 6
			}
			h = ((g-b)/d + wrap) / 6
		case g:
			h = ((b-r)/d + 2) / 6
		default:
			h = ((r-g)/d + 4) / 6
		}
	}

	return fmt.Sprintf("%d %d%% %d%%", roundScaled(h, 360), roundScaled(sat, 100), roundScaled(l, 100))
}

// Normalize passes an HSL string through hex and back, yielding the HSL a
// colour picker would report for it.
func Normalize(hsl string) string {
	return HexToHSL(HSLToHex(hsl))
}

// ValidHex reports whether s is exactly "#" followed by six hex digits.
func ValidHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	_, _, _, ok := parseHex(s)
	return ok
}

func (c HSL) rgb() (r, g, b float64) {
	h := c.H / 360
	s := c.S / 100
	l := c.L / 100

	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - float64(l*s)
	}
	p := 2*l - q

	return hueToChannel(p, q, h+1.0/3), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3)
}

// hueToChannel evaluates one RGB channel at hue offset t (in turns).
// Products are converted explicitly so they are not fused into the adds.
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + float64((q-p)*6*t)
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + float64((q-p)*(2.0/3-t)*6)
	default:
		return p
	}
}

func formatHex(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", roundScaled(clamp01(r), 255), roundScaled(clamp01(g), 255), roundScaled(clamp01(b), 255))
}

// roundScaled returns x*k rounded half up, the way a browser's Math.round does.
func roundScaled(x, k float64) int {
	return int(math.Floor(float64(x*k) + 0.5))
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return 0, 0, 0, false
	}
	return raw[0], raw[1], raw[2], true
}

// numericTokens scans s for up to limit numbers of the form digits[.digits].
// Everything else, including signs, is a separator.
func numericTokens(s string, limit int) []float64 {
	tokens := make([]float64, 0, limit)
	for i := 0; i < len(s) && len(tokens) < limit; {
		if !isDigit(s[i]) {
			i++
			continue
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(s[start:i], "."), 64)
		if err != nil {
			// Only overflow gets here; ParseFloat still returns ±Inf.
			v = math.Inf(1)
		}
		tokens = append(tokens, v)
	}
	return tokens
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
