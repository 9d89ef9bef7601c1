package reveal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motion/config"
	"github.com/lixenwraith/motion/property"
	"github.com/lixenwraith/motion/status"
)

func TestSkillBars_Fill(t *testing.T) {
	r := newRig(t)
	var done []any
	sb := NewSkillBars(r.engine, nil, WithStatus(r.reg), WithOnComplete(func(target any) { done = append(done, target) }))
	bar := property.NewStyle()

	id, err := sb.Fill(bar, 85)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.True(t, sb.Filled(bar))

	r.frameAt(500 * time.Millisecond)
	w, ok := bar.Prop("width")
	require.True(t, ok)
	assert.Equal(t, property.Value{Num: 42.5, Unit: "%"}, w, "linear by default")
	assert.Empty(t, bar.Text)

	r.frameAt(time.Second)
	w, _ = bar.Prop("width")
	assert.Equal(t, "85%", w.String())
	assert.Equal(t, "85%", bar.Text)
	assert.Equal(t, []any{bar}, done)
	assert.Equal(t, int64(1), r.reg.Int(status.SkillsFilled))
}

func TestSkillBars_OncePerTarget(t *testing.T) {
	r := newRig(t)
	sb := NewSkillBars(r.engine, nil)
	bar := property.NewStyle()

	_, err := sb.Fill(bar, 50)
	require.NoError(t, err)
	id, err := sb.Fill(bar, 90)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, 1, r.engine.Len())

	sb.Reset()
	assert.False(t, sb.Filled(bar))
}

func TestSkillBars_Clamp(t *testing.T) {
	r := newRig(t)
	sb := NewSkillBars(r.engine, nil)
	sb.Configure(config.SkillsConfig{DurationMs: 0, Easing: "linear"})

	over, under := property.NewStyle(), property.NewStyle()
	_, err := sb.Fill(over, 150)
	require.NoError(t, err)
	_, err = sb.Fill(under, -5)
	require.NoError(t, err)

	r.frameAt(16 * time.Millisecond)
	assert.Equal(t, "100%", over.Text)
	assert.Equal(t, "0%", under.Text)
	w, _ := over.Prop("width")
	assert.Equal(t, 100.0, w.Num)
}

func TestSkillBars_KeepsExistingWidthUnit(t *testing.T) {
	r := newRig(t)
	sb := NewSkillBars(r.engine, nil)
	sb.Configure(config.SkillsConfig{DurationMs: 0, Easing: "linear"})

	bar := property.NewStyle()
	bar.SetProp("width", 10, "px")
	_, err := sb.Fill(bar, 30)
	require.NoError(t, err)

	r.frameAt(16 * time.Millisecond)
	w, _ := bar.Prop("width")
	assert.Equal(t, "30px", w.String())
}

func TestSkillBars_CustomLabel(t *testing.T) {
	r := newRig(t)
	labels := map[any]string{}
	sb := NewSkillBars(r.engine, func(target any, text string) { labels[target] = text })
	sb.Configure(config.SkillsConfig{DurationMs: 100, Easing: "ease-in"})

	bar := property.NewStyle()
	_, err := sb.Fill(bar, 72.5)
	require.NoError(t, err)

	r.frameAt(100 * time.Millisecond)
	assert.Equal(t, "72.5%", labels[bar])
	assert.Empty(t, bar.Text)
}

func TestSkillBars_FailedFillStaysArmed(t *testing.T) {
	r := newRig(t)
	sb := NewSkillBars(r.engine, nil)

	_, err := sb.Fill("not a style", 40)
	assert.ErrorIs(t, err, property.ErrUnsupportedTarget)
	assert.False(t, sb.Filled("not a style"))
}
