// Package routing solves the two geometry problems the order executor and
// the logistics planners depend on: closed-form intercept aim against a
// moving target, and shortest-ETA jump routing across discovered systems.
package routing

import (
	"math"

	"github.com/nebula4x/nebula4x/geom"
)

// InterceptSolution is the result of solving for a pursuer's aim point
// against a moving target with a desired stand-off range.
type InterceptSolution struct {
	HasSolution bool
	Clamped     bool
	TimeDays    float64
	AimPosition geom.Vec
}

// noSolution is returned for every rejected or NaN-poisoned branch, so
// callers never have to special-case a partially populated solution.
var noSolution = InterceptSolution{}

// Intercept finds the smallest t >= 0 with |target + velocity*t - pursuer|
// <= desiredRange + speed*t, the closed-form aim problem for both ship
// movement orders and missile launches. maxLeadDays caps how far into the
// future the aim is allowed to lead; beyond it the aim clamps to the
// target's position at maxLeadDays and Clamped is set.
func Intercept(pursuer, target, velocity geom.Vec, speed, desiredRange, maxLeadDays float64) InterceptSolution {
	if speed <= 0 || math.IsNaN(speed) {
		return noSolution
	}

	d := target.Sub(pursuer)
	if !geom.IsFinite(d) || !geom.IsFinite(velocity) {
		return noSolution
	}

	if d.Len() <= desiredRange {
		return InterceptSolution{HasSolution: true, TimeDays: 0, AimPosition: target}
	}

	a := velocity.Dot(velocity) - speed*speed
	b := 2 * (d.Dot(velocity) - speed*desiredRange)
	c := d.Dot(d) - desiredRange*desiredRange

	const eps = 1e-9
	var t float64
	switch {
	case math.Abs(a) < eps:
		// Linear case: pursuer and target close at matched closing speed.
		if math.Abs(b) < eps {
			return noSolution
		}
		t = -c / b
	default:
		disc := b*b - 4*a*c
		if disc < 0 {
			return noSolution
		}
		sq := math.Sqrt(disc)
		t1 := (-b + sq) / (2 * a)
		t2 := (-b - sq) / (2 * a)
		t, ok := smallestNonNegative(t1, t2)
		if !ok {
			return noSolution
		}
		return finishIntercept(target, velocity, t, maxLeadDays)
	}

	if t < 0 || math.IsNaN(t) {
		return noSolution
	}
	return finishIntercept(target, velocity, t, maxLeadDays)
}

func smallestNonNegative(t1, t2 float64) (float64, bool) {
	if math.IsNaN(t1) {
		t1 = -1
	}
	if math.IsNaN(t2) {
		t2 = -1
	}
	switch {
	case t1 >= 0 && t2 >= 0:
		return math.Min(t1, t2), true
	case t1 >= 0:
		return t1, true
	case t2 >= 0:
		return t2, true
	default:
		return 0, false
	}
}

func finishIntercept(target, velocity geom.Vec, t, maxLeadDays float64) InterceptSolution {
	if t > maxLeadDays {
		aim := target.Add(velocity.Scale(maxLeadDays))
		if !geom.IsFinite(aim) {
			return noSolution
		}
		return InterceptSolution{HasSolution: true, Clamped: true, TimeDays: maxLeadDays, AimPosition: aim}
	}
	aim := target.Add(velocity.Scale(t))
	if !geom.IsFinite(aim) {
		return noSolution
	}
	return InterceptSolution{HasSolution: true, TimeDays: t, AimPosition: aim}
}
