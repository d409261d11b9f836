package planners

import (
	"math"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// PlanSustainment is a Freight run with a tighter surplus threshold: it
// keeps every colony's stockpile from running dry rather than waiting for a
// shortage to fully develop. It shares Freight's edge-scoring shape with a
// stricter floor, per the "same shape" note in §4.4.
func PlanSustainment(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	return planFreightInternal(gs, factionId, opts, SurplusThreshold/2)
}

// PlanTroopTransport picks the faction's colony with the most ground forces
// as source and the least-garrisoned other colony as sink, and sends one
// empty auto_troop ship to the source body and then to the sink body. It
// queues only those two moves; no order loads or unloads troops.
func PlanTroopTransport(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoTroop && s.Troops == 0 && s.Cache.TroopCapacity > 0
	})
	if len(ships) == 0 {
		return nil
	}

	var source, sink *world.Colony
	bestSurplus := 0.0
	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		if c.FactionId != factionId {
			continue
		}
		if c.GroundForces > bestSurplus {
			bestSurplus = c.GroundForces
			source = c
		}
	}
	bestDeficit := -1.0
	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		if c.FactionId != factionId || (source != nil && c.Id == source.Id) {
			continue
		}
		deficit := 1.0 - c.GroundForces/math.Max(1, c.PopulationMillions)
		if deficit > bestDeficit {
			bestDeficit = deficit
			sink = c
		}
	}
	if source == nil || sink == nil {
		return nil
	}

	ship := ships[0]
	srcBody, ok1 := gs.Bodies.Get(source.BodyId)
	sinkBody, ok2 := gs.Bodies.Get(sink.BodyId)
	if !ok1 || !ok2 {
		return nil
	}
	troops := int(math.Min(float64(ship.Cache.TroopCapacity), source.GroundForces))
	if troops <= 0 {
		return nil
	}

	return []Assignment{{
		ShipId: ship.Id,
		Orders: []world.Order{
			world.MoveToBodyOrder{BodyId: source.BodyId},
			world.MoveToBodyOrder{BodyId: sink.BodyId},
		},
		EtaDays: ship.PositionMkm.Dist(srcBody.PositionMkm)/speedOrOne(ship) + srcBody.PositionMkm.Dist(sinkBody.PositionMkm)/speedOrOne(ship),
		Note:    "troop transport",
	}}
}

// PlanPopulationTransfer routes auto_colonist ships toward the body with the
// lowest population among the faction's colonies. It queues only the move;
// ships are not filtered by colonist capacity and no population is carried.
func PlanPopulationTransfer(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoColonist
	})
	if len(ships) == 0 {
		return nil
	}

	var thinnest *world.Colony
	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		if c.FactionId != factionId {
			continue
		}
		if thinnest == nil || c.PopulationMillions < thinnest.PopulationMillions {
			thinnest = c
		}
	}
	if thinnest == nil {
		return nil
	}

	var out []Assignment
	for _, ship := range ships {
		out = append(out, Assignment{
			ShipId: ship.Id,
			Orders: []world.Order{world.MoveToBodyOrder{BodyId: thinnest.BodyId}},
			Note:   "colonist transfer",
		})
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}

// PlanTerraforming sends idle auto_terraform ships to orbit the colony body
// furthest from its terraforming target, mirroring the colony economy's own
// capped-delta-per-day terraforming step (§4.5) by prioritizing the biggest
// remaining gap rather than first-come-first-served.
func PlanTerraforming(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoTerraform
	})
	if len(ships) == 0 {
		return nil
	}

	var worst *world.Body
	worstGap := -1.0
	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		if c.FactionId != factionId {
			continue
		}
		body, ok := gs.Bodies.Get(c.BodyId)
		if !ok {
			continue
		}
		gap := math.Abs(body.TargetTempK-body.SurfaceTempK) + math.Abs(body.TargetAtmAtm-body.AtmosphereAtm)*100
		if gap > worstGap {
			worstGap = gap
			worst = body
		}
	}
	if worst == nil || worstGap <= 0 {
		return nil
	}

	var out []Assignment
	for _, ship := range ships {
		out = append(out, Assignment{
			ShipId: ship.Id,
			Orders: []world.Order{world.OrbitBodyOrder{BodyId: worst.Id, DurationDays: -1}},
			Note:   "terraform support",
		})
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}
