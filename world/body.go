package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// BodyType enumerates the kinds of celestial body a Body can be.
type BodyType string

const (
	BodyStar     BodyType = "Star"
	BodyPlanet   BodyType = "Planet"
	BodyMoon     BodyType = "Moon"
	BodyAsteroid BodyType = "Asteroid"
	BodyComet    BodyType = "Comet"
	BodyGasGiant BodyType = "GasGiant"
)

// Body is a star, planet, moon, asteroid, comet or gas giant on a circular
// orbit around its system's origin.
type Body struct {
	Id       ids.Id   `json:"id"`
	SystemId ids.Id   `json:"system_id"`
	Name     string   `json:"name"`
	Type     BodyType `json:"type"`

	RadiusMkm    float64 `json:"radius_mkm"`
	PeriodDays   float64 `json:"period_days"`
	PhaseRadians float64 `json:"phase_radians"`

	// PositionMkm is a cache of CircularPosition at the last tick; refreshed
	// by the orbits step at the start of every tick.
	PositionMkm geom.Vec `json:"position_mkm"`

	SurfaceTempK   float64 `json:"surface_temp_k"`
	AtmosphereAtm  float64 `json:"atmosphere_atm"`
	TargetTempK    float64 `json:"target_temp_k"`
	TargetAtmAtm   float64 `json:"target_atm_atm"`

	// MineralDeposits maps resource id to remaining tons. An empty/nil map
	// means unlimited/unknown, for compatibility with hand-edited scenarios.
	MineralDeposits map[string]float64 `json:"mineral_deposits,omitempty"`
}

// PositionAt returns the body's position at fractional day t, independent of
// the cached PositionMkm (used when re-reading a moving MoveToBody target
// mid-tick).
func (b *Body) PositionAt(tDays float64) geom.Vec {
	return geom.CircularPosition(b.RadiusMkm, b.PeriodDays, b.PhaseRadians, tDays)
}

// VelocityAt returns the body's instantaneous velocity at fractional day t.
func (b *Body) VelocityAt(tDays float64) geom.Vec {
	return geom.CircularVelocity(b.RadiusMkm, b.PeriodDays, b.PhaseRadians, tDays)
}

// DepositUnlimited reports whether b's mineral deposits are unmetered.
func (b *Body) DepositUnlimited() bool {
	return len(b.MineralDeposits) == 0
}
