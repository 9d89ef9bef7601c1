package property

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Transform function names understood by Style
const (
	FnTranslateX = "translateX"
	FnTranslateY = "translateY"
	FnScale      = "scale"
	FnRotate     = "rotate"
)

// TransformFunc is one entry of a CSS transform list
type TransformFunc struct {
	Name  string
	Value float64
	Unit  string
}

func (f TransformFunc) String() string {
	return f.Name + "(" + formatNumber(f.Value) + f.Unit + ")"
}

// Value is a numeric style property with its unit
type Value struct {
	Num  float64
	Unit string
}

func (v Value) String() string {
	return formatNumber(v.Num) + v.Unit
}

// Style models an element's inline presentation state
// Not safe for concurrent use; owned by the goroutine that runs frames
type Style struct {
	transform []TransformFunc
	props     map[string]Value

	// Text is the element's label, set by consumers such as skill bars
	Text string
}

// NewStyle creates an empty style: identity transform, no inline properties
func NewStyle() *Style {
	return &Style{props: make(map[string]Value)}
}

// TransformValue returns the value of the named transform function
func (s *Style) TransformValue(fn string) (float64, bool) {
	for _, f := range s.transform {
		if f.Name == fn {
			return f.Value, true
		}
	}
	return 0, false
}

// SetTransformFunc replaces fn in place when present, otherwise appends it
func (s *Style) SetTransformFunc(fn string, value float64, unit string) {
	for i := range s.transform {
		if s.transform[i].Name == fn {
			s.transform[i].Value = value
			s.transform[i].Unit = unit
			return
		}
	}
	s.transform = append(s.transform, TransformFunc{Name: fn, Value: value, Unit: unit})
}

// Transform renders the transform list as CSS, "none" when empty
func (s *Style) Transform() string {
	if len(s.transform) == 0 {
		return "none"
	}
	parts := make([]string, len(s.transform))
	for i, f := range s.transform {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// TransformFuncs returns a copy of the transform list
func (s *Style) TransformFuncs() []TransformFunc {
	return slices.Clone(s.transform)
}

// SetTransform replaces the whole transform list from CSS text
func (s *Style) SetTransform(css string) error {
	funcs, err := ParseTransform(css)
	if err != nil {
		return err
	}
	s.transform = funcs
	return nil
}

// Prop returns an inline numeric property
func (s *Style) Prop(name string) (Value, bool) {
	v, ok := s.props[name]
	return v, ok
}

// SetProp sets an inline numeric property
func (s *Style) SetProp(name string, num float64, unit string) {
	s.props[name] = Value{Num: num, Unit: unit}
}

// RemoveProp drops an inline property, reverting it to its default
func (s *Style) RemoveProp(name string) {
	delete(s.props, name)
}

// Opacity returns the inline opacity, 1 when unset
func (s *Style) Opacity() float64 {
	if v, ok := s.props["opacity"]; ok {
		return v.Num
	}
	return 1
}

// CSS renders the inline style text with properties in sorted order and transform last
func (s *Style) CSS() string {
	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(s.props)) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(s.props[name].String())
		b.WriteString("; ")
	}
	if len(s.transform) > 0 {
		b.WriteString("transform: ")
		b.WriteString(s.Transform())
		b.WriteString(";")
	}
	return strings.TrimSpace(b.String())
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
