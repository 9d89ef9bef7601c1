package reveal

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/status"
	"github.com/lixenwraith/motion/tween"
)

// TextTiming controls the per-letter rise of a TextReveal
type TextTiming struct {
	Duration      time.Duration
	WordStagger   time.Duration
	LetterStagger time.Duration
	Easing        string
	// Offset is the starting translateY in px, one line height
	Offset float64
}

// DefaultTextTiming rises each letter over 600ms, 100ms apart per word and 50ms per letter
func DefaultTextTiming(lineHeight float64) TextTiming {
	return TextTiming{
		Duration:      600 * time.Millisecond,
		WordStagger:   100 * time.Millisecond,
		LetterStagger: 50 * time.Millisecond,
		Easing:        "ease-out",
		Offset:        lineHeight,
	}
}

// Letter is one character of split text with its own animated style
type Letter struct {
	Rune rune
	// Column is the rune offset in the source text, spaces included
	Column int
	Word   int
	Index  int
	Delay  time.Duration
	Style  *property.Style
}

// SplitText breaks text into letters on single spaces, each lowered by timing.Offset
// Delay is Word*WordStagger + Index*LetterStagger
func SplitText(text string, timing TextTiming) []*Letter {
	var letters []*Letter
	column := 0
	for w, word := range strings.Split(text, " ") {
		i := 0
		for _, r := range word {
			s := property.NewStyle()
			s.SetTransformFunc(property.FnTranslateY, timing.Offset, "px")
			letters = append(letters, &Letter{
				Rune:   r,
				Column: column,
				Word:   w,
				Index:  i,
				Delay:  time.Duration(w)*timing.WordStagger + time.Duration(i)*timing.LetterStagger,
				Style:  s,
			})
			i++
			column++
		}
		column++ // separator
	}
	return letters
}

// TextReveal raises the letters of one line into place the first time it intersects
type TextReveal struct {
	anim   Animator
	set    settings
	timing TextTiming
	text   string

	revealedCount *atomic.Int64

	mu       sync.Mutex
	letters  []*Letter
	revealed bool
	requests []tween.RequestID
}

// NewTextReveal splits text into letters waiting below their line
func NewTextReveal(anim Animator, text string, timing TextTiming, opts ...Option) *TextReveal {
	s := newSettings(opts)
	return &TextReveal{
		anim:          anim,
		set:           s,
		timing:        timing,
		text:          text,
		revealedCount: s.counter(status.TextRevealed),
		letters:       SplitText(text, timing),
	}
}

// Text returns the source text
func (tr *TextReveal) Text() string {
	return tr.text
}

// Letters returns the letters in reading order
func (tr *TextReveal) Letters() []*Letter {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]*Letter(nil), tr.letters...)
}

// Revealed reports whether the reveal has started
func (tr *TextReveal) Revealed() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.revealed
}

// Intersect starts the reveal on the first ratio > 0, later calls are ignored
// The completion callback fires once, after the last letter lands
func (tr *TextReveal) Intersect(ratio float64) ([]tween.RequestID, error) {
	if ratio <= 0 {
		return nil, nil
	}

	tr.mu.Lock()
	if tr.revealed {
		tr.mu.Unlock()
		return nil, nil
	}
	tr.revealed = true
	letters := append([]*Letter(nil), tr.letters...)
	tr.mu.Unlock()

	last := -1
	for i, l := range letters {
		if last < 0 || l.Delay >= letters[last].Delay {
			last = i
		}
	}

	ids := make([]tween.RequestID, 0, len(letters))
	for i, l := range letters {
		opts := []tween.Option{
			tween.WithDuration(tr.timing.Duration),
			tween.WithDelay(l.Delay),
			tween.WithEasing(tr.timing.Easing),
		}
		if i == last {
			opts = append(opts, tween.OnComplete(tr.set.completer(tr)))
		}
		id, err := tr.anim.Animate(l.Style, map[string]float64{"y": 0}, opts...)
		if err != nil {
			for _, started := range ids {
				tr.anim.Stop(started)
			}
			tr.mu.Lock()
			tr.revealed = false
			tr.mu.Unlock()
			return nil, fmt.Errorf("text reveal %q: %w", tr.text, err)
		}
		ids = append(ids, id)
	}

	tr.mu.Lock()
	tr.requests = ids
	tr.mu.Unlock()

	tr.revealedCount.Add(1)
	tr.set.logger.Debug("text reveal triggered",
		zap.String("text", tr.text),
		zap.Int("letters", len(ids)))
	return ids, nil
}

// Reset stops in-flight letters, lowers them again and re-arms the reveal
func (tr *TextReveal) Reset() {
	tr.mu.Lock()
	ids := tr.requests
	tr.requests = nil
	tr.revealed = false
	letters := append([]*Letter(nil), tr.letters...)
	tr.mu.Unlock()

	for _, id := range ids {
		tr.anim.Stop(id)
	}
	for _, l := range letters {
		l.Style.SetTransformFunc(property.FnTranslateY, tr.timing.Offset, "px")
	}
}
