package tween

import "errors"

// ErrInvalidConfiguration is returned by Animate for requests that can never run:
// unknown easing, negative duration or delay, missing target, or no goals
var ErrInvalidConfiguration = errors.New("tween: invalid configuration")
