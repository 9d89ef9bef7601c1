package vmath

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownEasing is returned by ParseEasing for names outside the fixed set
var ErrUnknownEasing = errors.New("unknown easing")

// Easing identifies a progress curve
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
	EaseBounce
	EaseElastic
	easingCount
)

var easingNames = [easingCount]string{
	EaseLinear:  "linear",
	EaseIn:      "ease-in",
	EaseOut:     "ease-out",
	EaseInOut:   "ease-in-out",
	EaseBounce:  "bounce",
	EaseElastic: "elastic",
}

// Bounce curve constants (standard bounce-out)
const (
	bounceN1 = 7.5625
	bounceD1 = 2.75
)

// elasticC4 is the elastic angular step, 2π/3
const elasticC4 = (2 * math.Pi) / 3

// ParseEasing resolves a curve by its external name
func ParseEasing(name string) (Easing, error) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

// EasingNames lists every supported curve name in enumeration order
func EasingNames() []string {
	out := make([]string, len(easingNames))
	copy(out, easingNames[:])
	return out
}

// Valid reports whether e is a member of the enumeration
func (e Easing) Valid() bool {
	return e < easingCount
}

func (e Easing) String() string {
	if !e.Valid() {
		return fmt.Sprintf("easing(%d)", uint8(e))
	}
	return easingNames[e]
}

// Apply maps linear progress t to eased progress
// Endpoints are pinned: t<=0 returns 0 and t>=1 returns 1 for every curve
// Elastic and bounce may leave [0,1] between the endpoints
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return 1 - (1-t)*(1-t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		u := -2*t + 2
		return 1 - u*u/2
	case EaseBounce:
		return bounceOut(t)
	case EaseElastic:
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
	default:
		return t
	}
}

// bounceOut is the four segment piecewise quadratic bounce
func bounceOut(t float64) float64 {
	switch {
	case t < 1/bounceD1:
		return bounceN1 * t * t
	case t < 2/bounceD1:
		t -= 1.5 / bounceD1
		return bounceN1*t*t + 0.75
	case t < 2.5/bounceD1:
		t -= 2.25 / bounceD1
		return bounceN1*t*t + 0.9375
	default:
		t -= 2.625 / bounceD1
		return bounceN1*t*t + 0.984375
	}
}
