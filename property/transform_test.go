package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransform_FunctionList(t *testing.T) {
	funcs, err := ParseTransform("translateX(-50px) scale(0.8) rotate(0.5turn)")
	require.NoError(t, err)
	assert.Equal(t, []TransformFunc{
		{Name: FnTranslateX, Value: -50, Unit: "px"},
		{Name: FnScale, Value: 0.8},
		{Name: FnRotate, Value: 180, Unit: "deg"},
	}, funcs)
}

func TestParseTransform_TranslateShorthand(t *testing.T) {
	funcs, err := ParseTransform("translate(10px, 20%)")
	require.NoError(t, err)
	assert.Equal(t, []TransformFunc{
		{Name: FnTranslateX, Value: 10, Unit: "px"},
		{Name: FnTranslateY, Value: 20, Unit: "%"},
	}, funcs)

	funcs, err = ParseTransform("translate(7)")
	require.NoError(t, err)
	assert.Equal(t, 0.0, funcs[1].Value)
}

func TestParseTransform_Matrix(t *testing.T) {
	// Computed style for translate(12px, -8px) scale(2) rotate(90deg)
	funcs, err := ParseTransform("matrix(0, 2, -2, 0, 12, -8)")
	require.NoError(t, err)
	require.Len(t, funcs, 4)

	assert.Equal(t, TransformFunc{Name: FnTranslateX, Value: 12, Unit: "px"}, funcs[0])
	assert.Equal(t, TransformFunc{Name: FnTranslateY, Value: -8, Unit: "px"}, funcs[1])
	assert.InDelta(t, 2.0, funcs[2].Value, 1e-12)
	assert.InDelta(t, 90.0, funcs[3].Value, 1e-12)

	// Identity scale and rotation are omitted
	funcs, err = ParseTransform("matrix(1, 0, 0, 1, 0, 50)")
	require.NoError(t, err)
	assert.Len(t, funcs, 2)
}

func TestParseTransform_None(t *testing.T) {
	for _, css := range []string{"", "none", "  none "} {
		funcs, err := ParseTransform(css)
		require.NoError(t, err)
		assert.Empty(t, funcs)
	}
}

func TestParseTransform_Errors(t *testing.T) {
	for _, css := range []string{
		"skew(10deg)",
		"translateX(abc)",
		"scale(1",
		"matrix(1, 0, 0)",
		"rotate(3grad)",
		"(5px)",
	} {
		_, err := ParseTransform(css)
		assert.ErrorIs(t, err, ErrInvalidTransform, css)
	}
}

func TestStyle_CSS(t *testing.T) {
	s := NewStyle()
	assert.Equal(t, "", s.CSS())
	assert.Equal(t, "none", s.Transform())

	s.SetProp("opacity", 0.5, "")
	s.SetProp("width", 85, "%")
	s.SetTransformFunc(FnTranslateY, 50, "px")
	assert.Equal(t, "opacity: 0.5; width: 85%; transform: translateY(50px);", s.CSS())

	s.RemoveProp("opacity")
	assert.Equal(t, 1.0, s.Opacity())
}
