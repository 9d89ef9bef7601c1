package property

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidTransform is returned for CSS transform text that cannot be parsed
var ErrInvalidTransform = errors.New("invalid transform")

// ParseTransform parses a CSS transform: "none", a computed "matrix(a, b, c, d, e, f)",
// or a list of translateX/translateY/translate/scale/rotate functions
func ParseTransform(css string) ([]TransformFunc, error) {
	css = strings.TrimSpace(css)
	if css == "" || css == "none" {
		return nil, nil
	}

	var out []TransformFunc
	rest := css
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		closing := strings.IndexByte(rest, ')')
		if open <= 0 || closing < open {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTransform, css)
		}

		name := strings.TrimSpace(rest[:open])
		args := splitArgs(rest[open+1 : closing])
		rest = strings.TrimSpace(rest[closing+1:])

		funcs, err := expandFunc(name, args)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidTransform, css, err)
		}
		out = append(out, funcs...)
	}
	return out, nil
}

func splitArgs(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	return fields
}

func expandFunc(name string, args []string) ([]TransformFunc, error) {
	switch name {
	case "matrix":
		return decomposeMatrix(args)
	case FnTranslateX, FnTranslateY:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s takes 1 argument", name)
		}
		v, unit, err := parseLength(args[0], "px")
		if err != nil {
			return nil, err
		}
		return []TransformFunc{{Name: name, Value: v, Unit: unit}}, nil
	case "translate":
		if len(args) < 1 || len(args) > 2 {
			return nil, errors.New("translate takes 1 or 2 arguments")
		}
		x, xu, err := parseLength(args[0], "px")
		if err != nil {
			return nil, err
		}
		y, yu := 0.0, "px"
		if len(args) == 2 {
			if y, yu, err = parseLength(args[1], "px"); err != nil {
				return nil, err
			}
		}
		return []TransformFunc{
			{Name: FnTranslateX, Value: x, Unit: xu},
			{Name: FnTranslateY, Value: y, Unit: yu},
		}, nil
	case FnScale:
		if len(args) != 1 {
			return nil, errors.New("scale takes 1 argument")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, err
		}
		return []TransformFunc{{Name: FnScale, Value: v}}, nil
	case FnRotate:
		if len(args) != 1 {
			return nil, errors.New("rotate takes 1 argument")
		}
		deg, err := parseAngle(args[0])
		if err != nil {
			return nil, err
		}
		return []TransformFunc{{Name: FnRotate, Value: deg, Unit: "deg"}}, nil
	default:
		return nil, fmt.Errorf("unsupported function %q", name)
	}
}

// decomposeMatrix reads translate, uniform scale and rotation from a 2D matrix
// Skew is not represented and is lost
func decomposeMatrix(args []string) ([]TransformFunc, error) {
	if len(args) != 6 {
		return nil, fmt.Errorf("matrix takes 6 arguments, got %d", len(args))
	}
	var m [6]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		m[i] = v
	}

	out := []TransformFunc{
		{Name: FnTranslateX, Value: m[4], Unit: "px"},
		{Name: FnTranslateY, Value: m[5], Unit: "px"},
	}
	if scale := math.Hypot(m[0], m[1]); scale != 1 {
		out = append(out, TransformFunc{Name: FnScale, Value: scale})
	}
	if deg := math.Atan2(m[1], m[0]) * 180 / math.Pi; deg != 0 {
		out = append(out, TransformFunc{Name: FnRotate, Value: deg, Unit: "deg"})
	}
	return out, nil
}

// parseLength splits "12.5px" into number and unit, bare numbers take defUnit
func parseLength(s, defUnit string) (float64, string, error) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		i--
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "", err
	}
	unit := s[i:]
	if unit == "" {
		unit = defUnit
	}
	return v, unit, nil
}

// parseAngle converts deg, rad and turn to degrees
func parseAngle(s string) (float64, error) {
	v, unit, err := parseLength(s, "deg")
	if err != nil {
		return 0, err
	}
	switch unit {
	case "deg":
		return v, nil
	case "rad":
		return v * 180 / math.Pi, nil
	case "turn":
		return v * 360, nil
	default:
		return 0, fmt.Errorf("unsupported angle unit %q", unit)
	}
}
