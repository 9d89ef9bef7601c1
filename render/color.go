package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/motion/vmath"
)

// Palette, Tokyo Night
var (
	ColorBackground = mustHex("#1a1b26")
	ColorForeground = mustHex("#c0caf5")
	ColorMuted      = mustHex("#565f89")
	ColorBlue       = mustHex("#7aa2f7")
	ColorCyan       = mustHex("#7dcfff")
	ColorGreen      = mustHex("#9ece6a")
	ColorMagenta    = mustHex("#bb9af7")
	ColorOrange     = mustHex("#ff9e64")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Fade blends c over bg by opacity in Lab space, opacity is clamped to [0,1]
func Fade(c, bg colorful.Color, opacity float64) colorful.Color {
	return bg.BlendLab(c, vmath.Clamp01(opacity)).Clamped()
}

// TcellColor converts to a truecolor tcell value
func TcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
