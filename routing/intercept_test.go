package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/geom"
)

func TestInterceptStationaryTarget(t *testing.T) {
	sol := Intercept(geom.Vec{}, geom.Vec{X: 10, Y: 0}, geom.Vec{}, 10, 2, 1000)
	assert.True(t, sol.HasSolution)
	assert.False(t, sol.Clamped)
	assert.InDelta(t, 0.8, sol.TimeDays, 1e-6)
	assert.InDelta(t, 10, sol.AimPosition.X, 1e-6)
}

func TestInterceptZeroSpeedPursuerHasNoSolution(t *testing.T) {
	sol := Intercept(geom.Vec{}, geom.Vec{X: 10, Y: 0}, geom.Vec{}, 0, 2, 1000)
	assert.False(t, sol.HasSolution)
}

func TestInterceptAlreadyWithinRange(t *testing.T) {
	sol := Intercept(geom.Vec{}, geom.Vec{X: 1, Y: 0}, geom.Vec{X: 5, Y: 5}, 10, 2, 1000)
	assert.True(t, sol.HasSolution)
	assert.Equal(t, 0.0, sol.TimeDays)
	assert.Equal(t, geom.Vec{X: 1, Y: 0}, sol.AimPosition)
}

func TestInterceptFasterFleeingTargetHasNoSolution(t *testing.T) {
	sol := Intercept(geom.Vec{}, geom.Vec{X: 10, Y: 0}, geom.Vec{X: 50, Y: 0}, 10, 0, 1000)
	assert.False(t, sol.HasSolution)
}

func TestInterceptClampsBeyondMaxLead(t *testing.T) {
	sol := Intercept(geom.Vec{}, geom.Vec{X: 1000, Y: 0}, geom.Vec{X: 0, Y: 1}, 10, 0, 5)
	assert.True(t, sol.HasSolution)
	assert.True(t, sol.Clamped)
	assert.Equal(t, 5.0, sol.TimeDays)
}
