package colorcodec

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHSLToHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mid gray", "0 0% 50%", "#808080"},
		{"black with hue", "120 0% 0%", "#000000"},
		{"white", "0 0% 100%", "#ffffff"},
		{"red", "0 100% 50%", "#ff0000"},
		{"green", "120 100% 50%", "#00ff00"},
		{"blue", "240 100% 50%", "#0000ff"},
		{"yellow", "60 100% 50%", "#ffff00"},
		{"cyan", "180 100% 50%", "#00ffff"},
		{"magenta", "300 100% 50%", "#ff00ff"},
		{"orange", "30 100% 50%", "#ff8000"},
		{"brand primary", "204 66% 21%", "#123d59"},
		{"dark green", "120 50% 25%", "#206020"},
		{"full turn wraps to red", "360 100% 50%", "#ff0000"},
		{"decimals accepted", "204.5 66.4% 21.7%", "#133e5c"},
		{"css function syntax", "hsl(204, 66%, 21%)", "#123d59"},
		{"minus sign is a separator", "-10 50% 50%", "#bf5540"},
		{"extra tokens ignored", "0 100% 50% 7", "#ff0000"},
		{"trailing dots", "1. 2. 3.", "#080807"},
		{"leading dots are separators", ".5 .5 .5", "#0d0c0c"},
		{"lightness above range clamps", "0 0% 150%", "#ffffff"},
		{"garbage", "garbage", FallbackHex},
		{"two tokens", "1 2", FallbackHex},
		{"empty", "", FallbackHex},
		{"hex digits read as numbers", "#7f7f7f", "#131111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HSLToHex(tt.in))
		})
	}
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mid gray", "#808080", "0 0% 50%"},
		{"just below mid gray", "#7f7f7f", "0 0% 50%"},
		{"black", "#000000", "0 0% 0%"},
		{"white", "#ffffff", "0 0% 100%"},
		{"red", "#ff0000", "0 100% 50%"},
		{"green", "#00ff00", "120 100% 50%"},
		{"blue", "#0000ff", "240 100% 50%"},
		{"uppercase", "#ABCDEF", "210 68% 80%"},
		{"no hash", "abcdef", "210 68% 80%"},
		{"hue rounds up to 360", "#ff0001", "360 100% 50%"},
		{"brand primary", "#123d59", "204 66% 21%"},
		{"not a colour", "notacolor", FallbackHSL},
		{"non hex digits", "#zzzzzz", FallbackHSL},
		{"short form", "#abc", FallbackHSL},
		{"last digit invalid", "#abcdeg", FallbackHSL},
		{"double hash", "##abcdef", FallbackHSL},
		{"leading space", " #abcdef", FallbackHSL},
		{"trailing space", "#ABCDEF ", FallbackHSL},
		{"empty", "", FallbackHSL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HexToHSL(tt.in))
		})
	}
}

func TestHexRoundTrip_Sample(t *testing.T) {
	sample := []string{
		"#000000", "#ffffff", "#808080",
		"#ff0000", "#00ff00", "#0000ff",
		"#ffff00", "#00ffff", "#ff00ff",
		"#0d0d0d", "#1a1a1a", "#333333", "#666666", "#999999", "#cccccc", "#e6e6e6", "#f2f2f2",
		"#123d59", "#bf5540",
		"#FF0000",
	}
	for _, h := range sample {
		require.Equal(t, strings.ToLower(h), HSLToHex(HexToHSL(h)), "round trip of %s", h)
	}
}

func TestHexRoundTrip_NearBlackAndWhiteCollapse(t *testing.T) {
	// One step off black/white rounds to 0%/100% lightness and snaps back.
	require.Equal(t, "#000000", HSLToHex(HexToHSL("#010101")))
	require.Equal(t, "#ffffff", HSLToHex(HexToHSL("#fefefe")))
}

func TestHSLRoundTrip_Grays(t *testing.T) {
	for l := 0; l <= 100; l++ {
		in := fmt.Sprintf("0 0%% %d%%", l)
		require.Equal(t, in, HexToHSL(HSLToHex(in)))
	}
}

func TestHSLRoundTrip_PureHues(t *testing.T) {
	for h := 0; h < 360; h++ {
		in := fmt.Sprintf("%d 100%% 50%%", h)
		require.Equal(t, in, HexToHSL(HSLToHex(in)))
	}
}

func TestHSLCollision_LowSaturation(t *testing.T) {
	// Distinct HSL inputs that share a hex value cannot round-trip.
	require.Equal(t, HSLToHex("0 0% 0%"), HSLToHex("0 1% 0%"))
	require.Equal(t, "0 0% 0%", HexToHSL(HSLToHex("0 1% 0%")))
	require.Equal(t, "0 0% 1%", HexToHSL(HSLToHex("0 1% 1%")))
}

func TestParseHSL(t *testing.T) {
	c, ok := ParseHSL("hsl(204.5, 66%, 21%)")
	require.True(t, ok)
	require.Equal(t, HSL{H: 204.5, S: 66, L: 21}, c)
	require.Equal(t, "205 66% 21%", c.String())

	_, ok = ParseHSL("12 34")
	require.False(t, ok)
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "204 66% 21%", Normalize("204 66% 21%"))
	require.Equal(t, "0 0% 0%", Normalize("0 1% 0%"))
	require.Equal(t, "0 0% 0%", Normalize("nonsense"))
}

func TestValidHex(t *testing.T) {
	require.True(t, ValidHex("#abcdef"))
	require.True(t, ValidHex("#ABCDEF"))
	require.False(t, ValidHex("abcdef"))
	require.False(t, ValidHex("#abc"))
	require.False(t, ValidHex("#abcdeg"))
	require.False(t, ValidHex(""))
}

func hexGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		r := rapid.IntRange(0, 255).Draw(t, "r")
		g := rapid.IntRange(0, 255).Draw(t, "g")
		b := rapid.IntRange(0, 255).Draw(t, "b")
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	})
}

func channels(t *rapid.T, h string) [3]int {
	var out [3]int
	for i := range out {
		v, err := strconv.ParseUint(h[1+2*i:3+2*i], 16, 8)
		if err != nil {
			t.Fatalf("bad hex %q: %v", h, err)
		}
		out[i] = int(v)
	}
	return out
}

func TestProperty_HexRoundTripDrift(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := hexGen().Draw(t, "hex")
		out := HSLToHex(HexToHSL(in))
		a, b := channels(t, in), channels(t, out)
		for i := range a {
			d := a[i] - b[i]
			if d < 0 {
				d = -d
			}
			if d > 5 {
				t.Fatalf("%s -> %s drifted %d on channel %d", in, out, d, i)
			}
		}
	})
}

func TestProperty_HexToHSLBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := hexGen().Draw(t, "hex")
		c, ok := ParseHSL(HexToHSL(in))
		if !ok {
			t.Fatalf("output of %s does not parse", in)
		}
		if c.H < 0 || c.H > 360 || c.S < 0 || c.S > 100 || c.L < 0 || c.L > 100 {
			t.Fatalf("%s -> %+v out of range", in, c)
		}
	})
}

func TestProperty_HSLToHexShape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := fmt.Sprintf("%d %d%% %d%%",
			rapid.IntRange(0, 359).Draw(t, "h"),
			rapid.IntRange(0, 100).Draw(t, "s"),
			rapid.IntRange(0, 100).Draw(t, "l"))
		out := HSLToHex(in)
		if !ValidHex(out) || out != strings.ToLower(out) {
			t.Fatalf("%q -> %q is not lowercase #rrggbb", in, out)
		}
	})
}

func TestProperty_HexFormIsStable(t *testing.T) {
	// Once a value has been through hex twice it no longer moves.
	rapid.Check(t, func(t *rapid.T) {
		in := fmt.Sprintf("%d 0%% %d%%",
			rapid.IntRange(0, 359).Draw(t, "h"),
			rapid.IntRange(0, 100).Draw(t, "l"))
		once := HSLToHex(in)
		require.Equal(t, once, HSLToHex(HexToHSL(once)))
	})
}
