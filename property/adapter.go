package property

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedProperty is returned for names the adapter cannot map onto a Style
	ErrUnsupportedProperty = errors.New("unsupported property")

	// ErrUnsupportedTarget is returned when the target is not a *Style
	ErrUnsupportedTarget = errors.New("unsupported target")
)

// Default units for passthrough style properties
var defaultPassthrough = map[string]string{
	"width":         "px",
	"height":        "px",
	"top":           "px",
	"left":          "px",
	"right":         "px",
	"bottom":        "px",
	"fontSize":      "px",
	"letterSpacing": "px",
	"lineHeight":    "",
	"borderRadius":  "px",
	"marginTop":     "px",
	"marginRight":   "px",
	"marginBottom":  "px",
	"marginLeft":    "px",
	"paddingTop":    "px",
	"paddingRight":  "px",
	"paddingBottom": "px",
	"paddingLeft":   "px",
}

// StyleAdapter reads and writes logical animation properties on *Style targets
//
// Logical names:
//
//	x, translateX   translateX(px)
//	y, translateY   translateY(px)
//	scale           scale(), 1 when unset
//	rotation        rotate(deg)
//	opacity         inline opacity, 1 when unset
//
// Other names pass through to inline numeric properties when registered
type StyleAdapter struct {
	passthrough map[string]string
}

// NewStyleAdapter creates an adapter with the default passthrough set
// Extra names are registered as passthrough properties with unit "px"
func NewStyleAdapter(extra ...string) *StyleAdapter {
	a := &StyleAdapter{passthrough: make(map[string]string, len(defaultPassthrough)+len(extra))}
	for name, unit := range defaultPassthrough {
		a.passthrough[name] = unit
	}
	for _, name := range extra {
		a.passthrough[name] = "px"
	}
	return a
}

// RegisterPassthrough allows name as an inline numeric property with the given default unit
func (a *StyleAdapter) RegisterPassthrough(name, unit string) {
	a.passthrough[name] = unit
}

// Supports reports whether name is a logical or passthrough property
func (a *StyleAdapter) Supports(name string) bool {
	if _, ok := transformFor(name); ok || name == "opacity" {
		return true
	}
	_, ok := a.passthrough[name]
	return ok
}

// transformFor maps logical names onto transform functions and their units
func transformFor(name string) (TransformFunc, bool) {
	switch name {
	case "x", FnTranslateX:
		return TransformFunc{Name: FnTranslateX, Unit: "px"}, true
	case "y", FnTranslateY:
		return TransformFunc{Name: FnTranslateY, Unit: "px"}, true
	case FnScale:
		return TransformFunc{Name: FnScale, Value: 1}, true
	case "rotation":
		return TransformFunc{Name: FnRotate, Unit: "deg"}, true
	}
	return TransformFunc{}, false
}

func asStyle(target any) (*Style, error) {
	s, ok := target.(*Style)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
	return s, nil
}

// Read returns the current numeric value of name on target
func (a *StyleAdapter) Read(target any, name string) (float64, error) {
	s, err := asStyle(target)
	if err != nil {
		return 0, err
	}

	if fn, ok := transformFor(name); ok {
		if v, ok := s.TransformValue(fn.Name); ok {
			return v, nil
		}
		// Identity value for an absent function
		return fn.Value, nil
	}
	if name == "opacity" {
		return s.Opacity(), nil
	}
	if _, ok := a.passthrough[name]; ok {
		if v, ok := s.Prop(name); ok {
			return v.Num, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedProperty, name)
}

// Write applies value to name on target
// Passthrough properties keep an existing unit, so a width in % stays in %
func (a *StyleAdapter) Write(target any, name string, value float64) error {
	s, err := asStyle(target)
	if err != nil {
		return err
	}

	if fn, ok := transformFor(name); ok {
		s.SetTransformFunc(fn.Name, value, fn.Unit)
		return nil
	}
	if name == "opacity" {
		s.SetProp("opacity", value, "")
		return nil
	}
	if unit, ok := a.passthrough[name]; ok {
		if cur, ok := s.Prop(name); ok {
			unit = cur.Unit
		}
		s.SetProp(name, value, unit)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedProperty, name)
}
