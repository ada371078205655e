package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TimeEpsilon absorbs float drift when countdown timers are drained by a
// fixed step that does not divide the timer evenly.
const TimeEpsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return cp.Lerp(a, b, t)
}

// Clamp keeps v in [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return cp.Clamp(v, lo, hi)
}

// Approach moves current toward target by at most delta.
func Approach(current, target, delta float64) float64 {
	return cp.LerpConst(current, target, delta)
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Tick counts a timer down by dt and never goes below zero.
func Tick(t, dt float64) float64 {
	if t <= 0 {
		return 0
	}
	t -= dt
	if t < TimeEpsilon {
		return 0
	}
	return t
}

// SmoothFactor converts a per-second smoothing rate into a lerp factor for dt,
// so the result is the same whatever the step size.
func SmoothFactor(rate, dt float64) float64 {
	if rate <= 0 {
		return 1
	}
	return 1 - math.Exp(-rate*dt)
}
