package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// Missile is a first-class tick entity tracking an in-flight shot from a
// missile rack: it has its own position and closing budget, independent of
// its launcher, so it survives across ticks until it arrives, overruns its
// range or is shot down by point defense.
type Missile struct {
	Id ids.Id `json:"id"`

	LauncherShipId ids.Id `json:"launcher_ship_id"`
	LauncherFactionId ids.Id `json:"launcher_faction_id"`
	TargetShipId   ids.Id `json:"target_ship_id"`
	SystemId       ids.Id `json:"system_id"`

	PositionMkm geom.Vec `json:"position_mkm"`
	AimPosition geom.Vec `json:"aim_position"`

	SpeedMkmPerDay  float64 `json:"speed_mkm_per_day"`
	RemainingRangeMkm float64 `json:"remaining_range_mkm"`
	DamageOnArrival float64 `json:"damage_on_arrival"`
}

// Advance moves the missile toward AimPosition by the given number of hours,
// consuming RemainingRangeMkm. It reports whether the missile has overrun
// its range budget (out of fuel, no detonation).
func (m *Missile) Advance(hours float64) (overrun bool) {
	days := hours / 24.0
	step := m.SpeedMkmPerDay * days
	dir := m.AimPosition.Sub(m.PositionMkm)
	dist := dir.Len()
	if dist <= step {
		m.PositionMkm = m.AimPosition
		m.RemainingRangeMkm -= dist
	} else {
		m.PositionMkm = m.PositionMkm.Add(dir.Normalized().Scale(step))
		m.RemainingRangeMkm -= step
	}
	return m.RemainingRangeMkm <= 0
}

// HasArrived reports whether the missile has reached its aim position.
func (m *Missile) HasArrived() bool {
	return geom.WithinEps(m.PositionMkm, m.AimPosition, 1e-6)
}
