// Package exploration generates and decays anomalies and wrecks, and
// advances investigation progress from ships parked at an anomaly's
// position.
package exploration

import (
	"sort"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/rng"
	"github.com/nebula4x/nebula4x/world"
)

// InvestigationArrivalRangeMkm is how close a ship must be to an anomaly's
// position to contribute investigation progress.
const InvestigationArrivalRangeMkm = 0.5

// WreckDecayTonsPerDay is the baseline rate unattended wrecks lose minerals
// to unseen scavengers.
const WreckDecayTonsPerDay = 1.0

// AnomalySpawnChancePerDay is the base daily probability a region-assigned
// system with no existing anomaly spawns one, before the
// region's ruins_density scales it.
const AnomalySpawnChancePerDay = 0.01

// Tick advances anomaly/wreck lifecycle by hours of simulated time.
func Tick(gs *world.GameState, seed uint64, hours float64) {
	days := hours / 24.0

	decayWrecks(gs, days)
	advanceInvestigations(gs, days)
	spawnAnomalies(gs, seed, days)
}

func decayWrecks(gs *world.GameState, days float64) {
	for _, wid := range gs.Wrecks.SortedIds() {
		w := gs.Wrecks.MustGet(wid)
		minerals := make([]string, 0, len(w.Minerals))
		for m := range w.Minerals {
			minerals = append(minerals, m)
		}
		sort.Strings(minerals)
		remaining := WreckDecayTonsPerDay * days
		for _, m := range minerals {
			if remaining <= 0 {
				break
			}
			take := w.Minerals[m]
			if take > remaining {
				take = remaining
			}
			w.Minerals[m] -= take
			remaining -= take
		}
		if w.Remaining() <= 1e-9 {
			gs.Wrecks.Delete(wid)
		}
	}
}

func advanceInvestigations(gs *world.GameState, days float64) {
	for _, aid := range gs.Anomalies.SortedIds() {
		a := gs.Anomalies.MustGet(aid)
		if a.Resolved {
			continue
		}

		rate, investigator := investigatingRate(gs, a)
		if rate <= 0 {
			continue
		}
		a.InvestigationProgress += rate * days
		if a.InvestigationProgress < a.InvestigationRequired {
			continue
		}

		a.Resolved = true
		a.ResolvedByFactionId = investigator
		gs.EmitFor(world.LevelInfo, "exploration", "anomaly investigated", investigator, 0, 0, a.SystemId)
	}
}

func investigatingRate(gs *world.GameState, a *world.Anomaly) (float64, ids.Id) {
	best := 0.0
	var bestFaction ids.Id
	for _, sid := range gs.Ships.SortedIds() {
		s := gs.Ships.MustGet(sid)
		if s.SystemId != a.SystemId {
			continue
		}
		if !geom.WithinEps(s.PositionMkm, a.PositionMkm, InvestigationArrivalRangeMkm) {
			continue
		}
		if s.Cache.SensorRangeMkm > best {
			best = s.Cache.SensorRangeMkm
			bestFaction = s.FactionId
		}
	}
	return best, bestFaction
}

func spawnAnomalies(gs *world.GameState, seed uint64, days float64) {
	existing := map[ids.Id]bool{}
	for _, aid := range gs.Anomalies.SortedIds() {
		a := gs.Anomalies.MustGet(aid)
		existing[a.SystemId] = true
	}

	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		if existing[sysId] || sys.RegionId == 0 {
			continue
		}
		region, ok := gs.Regions[sys.RegionId]
		if !ok {
			continue
		}

		tick := uint64(gs.Date.Days)*24 + uint64(gs.Date.HourOfDay)
		source := rng.New(seed ^ uint64(sysId)).Derive(tick)
		chance := AnomalySpawnChancePerDay * (0.5 + region.RuinsDensity) * days
		if source.Float64() > chance {
			continue
		}

		anomaly := &world.Anomaly{
			Id:                    gs.NewId(),
			SystemId:              sysId,
			Kind:                  world.AnomalyRuins,
			InvestigationRequired: 10,
		}
		if bodyIds := sys.BodyIds; len(bodyIds) > 0 {
			if b, ok := gs.Bodies.Get(bodyIds[0]); ok {
				anomaly.PositionMkm = b.PositionMkm
			}
		}
		gs.Anomalies.Set(anomaly.Id, anomaly)
		gs.EmitFor(world.LevelInfo, "exploration", "anomaly detected", 0, 0, 0, sysId)
	}
}

