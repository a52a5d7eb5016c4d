package scene

import (
	"math"
	"strings"
)

// Easing maps a normalized object index in [0,1] to a normalized depth.
type Easing func(x float64) float64

// QuarterCircle pushes most objects toward the far plane.
func QuarterCircle(x float64) float64 {
	return math.Sqrt(1 - math.Pow(x-1, 2))
}

func Linear(x float64) float64 { return x }

func EaseInQuad(x float64) float64 { return x * x }

// EasingByName resolves a config name. Unknown names fall back to the quarter circle.
func EasingByName(name string) (Easing, bool) {
	switch strings.ToLower(name) {
	case "", "circ", "quartercircle", "quarter-circle":
		return QuarterCircle, true
	case "linear":
		return Linear, true
	case "quad", "easeinquad":
		return EaseInQuad, true
	}
	return QuarterCircle, false
}
