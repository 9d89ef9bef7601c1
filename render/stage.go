package render

import (
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/vmath"
)

// Pixel to cell conversion for transform offsets, a typical 8x16 terminal font
const (
	PxPerCol = 8.0
	PxPerRow = 16.0
)

// Kind selects how a sprite is drawn
type Kind uint8

const (
	// KindBox is a filled rectangle with an optional centered label
	KindBox Kind = iota
	// KindBar is a horizontal progress bar driven by width in percent
	KindBar
	// KindLayer is a full-width decorative band moved by parallax
	KindLayer
	// KindGlyph is one character clipped to its own row, like a letter inside an overflow-hidden word
	KindGlyph
)

// Sprite is one drawable element, its Style is what the tween engine animates
type Sprite struct {
	Name  string
	Kind  Kind
	Style *property.Style
	Color colorful.Color
	Label string

	// Layout rectangle in page cells, before transforms
	X, Y, W, H int
}

// NewSprite creates a sprite with a fresh style
func NewSprite(name string, kind Kind, x, y, w, h int, color colorful.Color) *Sprite {
	return &Sprite{Name: name, Kind: kind, Style: property.NewStyle(), Color: color, X: x, Y: y, W: w, H: h}
}

// Rect is a cell rectangle on screen
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Stage draws sprites onto a tcell screen, scrolled vertically by a page offset
// The bottom row is reserved for the status line
type Stage struct {
	mu         sync.Mutex
	screen     tcell.Screen
	sprites    []*Sprite
	scrollY    int
	status     string
	background colorful.Color
}

// NewStage creates a stage on screen
func NewStage(screen tcell.Screen) *Stage {
	return &Stage{screen: screen, background: ColorBackground}
}

// Add appends sprites, later sprites draw on top
func (st *Stage) Add(sprites ...*Sprite) {
	st.mu.Lock()
	st.sprites = append(st.sprites, sprites...)
	st.mu.Unlock()
}

// Sprites returns the sprites in draw order
func (st *Stage) Sprites() []*Sprite {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]*Sprite(nil), st.sprites...)
}

// Viewport returns the drawable page height in rows
func (st *Stage) Viewport() (w, h int) {
	w, h = st.screen.Size()
	return w, max(h-1, 0)
}

// SetScroll sets the page row at the top of the viewport
func (st *Stage) SetScroll(rows int) {
	st.mu.Lock()
	st.scrollY = max(rows, 0)
	st.mu.Unlock()
}

// Scroll returns the page row at the top of the viewport
func (st *Stage) Scroll() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.scrollY
}

// SetStatus replaces the status line text
func (st *Stage) SetStatus(text string) {
	st.mu.Lock()
	st.status = text
	st.mu.Unlock()
}

// VisibleRatio returns the fraction of s's layout rows inside the viewport
func (st *Stage) VisibleRatio(s *Sprite) float64 {
	_, vh := st.Viewport()
	st.mu.Lock()
	top := s.Y - st.scrollY
	st.mu.Unlock()
	if s.H <= 0 {
		return 0
	}
	visible := min(top+s.H, vh) - max(top, 0)
	if visible <= 0 {
		return 0
	}
	return float64(visible) / float64(s.H)
}

// Bounds returns where s lands on screen after its transform
// Translation moves the rectangle, scale resizes it about its center
func (st *Stage) Bounds(s *Sprite) Rect {
	st.mu.Lock()
	scroll := st.scrollY
	st.mu.Unlock()
	return bounds(s, scroll)
}

func bounds(s *Sprite, scroll int) Rect {
	tx, _ := s.Style.TransformValue(property.FnTranslateX)
	ty, _ := s.Style.TransformValue(property.FnTranslateY)
	scale := 1.0
	if v, ok := s.Style.TransformValue(property.FnScale); ok {
		scale = math.Max(v, 0)
	}

	w := vmath.Round(float64(s.W) * scale)
	h := vmath.Round(float64(s.H) * scale)
	if s.Kind != KindBox {
		// Bars and layers keep their height
		h = s.H
	}

	x := s.X + (s.W-w)/2 + vmath.Round(tx/PxPerCol)
	y := s.Y - scroll + (s.H-h)/2 + vmath.Round(ty/PxPerRow)
	return Rect{X: x, Y: y, W: w, H: h}
}

// Draw renders every sprite and the status line, then shows the screen
func (st *Stage) Draw() {
	st.mu.Lock()
	defer st.mu.Unlock()

	sw, sh := st.screen.Size()
	vh := max(sh-1, 0)
	base := tcell.StyleDefault.Background(TcellColor(st.background)).Foreground(TcellColor(ColorForeground))

	st.screen.SetStyle(base)
	st.screen.Fill(' ', base)

	for _, s := range st.sprites {
		st.drawSprite(s, sw, vh, base)
	}

	status := tcell.StyleDefault.Background(TcellColor(ColorMuted)).Foreground(TcellColor(ColorForeground))
	st.drawText(0, sh-1, sw, runewidth.FillRight(runewidth.Truncate(st.status, sw, "…"), sw), status)

	st.screen.Show()
}

func (st *Stage) drawSprite(s *Sprite, sw, vh int, base tcell.Style) {
	opacity := s.Style.Opacity()
	if opacity <= 0 {
		return
	}
	r := bounds(s, st.scrollY)
	if r.Empty() {
		return
	}
	fill := Fade(s.Color, st.background, opacity)

	switch s.Kind {
	case KindBox:
		style := base.Background(TcellColor(fill)).Foreground(TcellColor(Fade(ColorBackground, fill, opacity)))
		st.fillRect(r, sw, vh, ' ', style)
		label := s.label()
		if label != "" && r.H > 0 {
			text := runewidth.Truncate(label, r.W, "…")
			tx := r.X + (r.W-runewidth.StringWidth(text))/2
			st.drawClipped(tx, r.Y+r.H/2, text, r, sw, vh, style)
		}

	case KindBar:
		pct := 0.0
		if v, ok := s.Style.Prop("width"); ok {
			pct = vmath.Clamp(v.Num, 0, 100)
		}
		filled := vmath.Round(float64(r.W) * pct / 100)
		on := base.Foreground(TcellColor(fill))
		off := base.Foreground(TcellColor(Fade(ColorMuted, st.background, opacity)))
		for row := r.Y; row < r.Y+r.H; row++ {
			for col := r.X; col < r.X+r.W; col++ {
				if col-r.X < filled {
					st.setCell(col, row, sw, vh, '█', on)
				} else {
					st.setCell(col, row, sw, vh, '░', off)
				}
			}
		}
		if label := s.label(); label != "" {
			st.drawClipped(r.X+r.W+1, r.Y, label, Rect{X: r.X + r.W + 1, Y: r.Y, W: sw, H: 1}, sw, vh, on)
		}

	case KindGlyph:
		glyph := []rune(s.Label)
		if len(glyph) == 0 || r.Y != s.Y-st.scrollY {
			return
		}
		st.setCell(r.X, r.Y, sw, vh, glyph[0], base.Foreground(TcellColor(fill)))

	case KindLayer:
		style := base.Foreground(TcellColor(fill))
		pattern := []rune(s.Label)
		if len(pattern) == 0 {
			pattern = []rune("·")
		}
		for row := max(r.Y, 0); row < r.Y+r.H; row++ {
			for col := max(r.X, 0); col < r.X+r.W; col++ {
				if (col+row)%4 == 0 {
					st.setCell(col, row, sw, vh, pattern[(col/4)%len(pattern)], style)
				}
			}
		}
	}
}

// label joins the static label with the animated text, layers use Label as their pattern
func (s *Sprite) label() string {
	if s.Kind == KindLayer {
		return s.Style.Text
	}
	switch {
	case s.Label == "":
		return s.Style.Text
	case s.Style.Text == "":
		return s.Label
	default:
		return s.Label + " " + s.Style.Text
	}
}

func (st *Stage) fillRect(r Rect, sw, vh int, ch rune, style tcell.Style) {
	for row := r.Y; row < r.Y+r.H; row++ {
		for col := r.X; col < r.X+r.W; col++ {
			st.setCell(col, row, sw, vh, ch, style)
		}
	}
}

// drawClipped writes text from x, clipped to both the rectangle and the viewport
func (st *Stage) drawClipped(x, y int, text string, clip Rect, sw, vh int, style tcell.Style) {
	if y < clip.Y || y >= clip.Y+clip.H {
		return
	}
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x >= clip.X && x+w <= clip.X+clip.W {
			st.setCell(x, y, sw, vh, ch, style)
		}
		x += w
	}
}

func (st *Stage) drawText(x, y, maxW int, text string, style tcell.Style) {
	end := x + maxW
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x+w > end {
			return
		}
		st.screen.SetContent(x, y, ch, nil, style)
		x += w
	}
}

func (st *Stage) setCell(x, y, sw, vh int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= sw || y >= vh {
		return
	}
	st.screen.SetContent(x, y, ch, nil, style)
}

// Dump returns the viewport text, one line per row with trailing spaces trimmed
func (st *Stage) Dump() string {
	sw, sh := st.screen.Size()
	var b strings.Builder
	for y := 0; y < sh; y++ {
		var line strings.Builder
		for x := 0; x < sw; x++ {
			ch, _, _, _ := st.screen.GetContent(x, y)
			if ch == 0 {
				ch = ' '
			}
			line.WriteRune(ch)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
