package planners

import (
	"math"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// SalvageTonsPerDayMin and SalvageTonsPerDayPerCargoTon set the salvage
// planner's per-ship throughput floor and scaling, mirroring the order
// executor's own salvage-rate formula in §4.2.
const (
	SalvageTonsPerDayMin         = 5.0
	SalvageTonsPerDayPerCargoTon = 0.1
)

// PlanSalvage assigns idle auto_salvage ships to the richest reachable wreck
// in their system, scored by expected_tons/ETA.
func PlanSalvage(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoSalvage && s.CargoTotal() == 0
	})

	used := map[ids.Id]bool{}
	var out []Assignment
	for _, ship := range ships {
		var best *world.Wreck
		bestScore := -1.0
		for _, wreckId := range gs.Wrecks.SortedIds() {
			if used[wreckId] {
				continue
			}
			wreck := gs.Wrecks.MustGet(wreckId)
			if wreck.SystemId != ship.SystemId {
				continue
			}
			remaining := wreck.Remaining()
			if remaining <= 0 {
				continue
			}
			rate := math.Max(SalvageTonsPerDayMin, SalvageTonsPerDayPerCargoTon*ship.Cache.CargoTons)
			travel := ship.PositionMkm.Dist(wreck.PositionMkm) / speedOrOne(ship)
			salvageDays := math.Min(remaining, ship.Cache.CargoTons) / rate
			score := math.Min(remaining, ship.Cache.CargoTons) / max1(travel+salvageDays)
			if score > bestScore {
				bestScore = score
				best = wreck
			}
		}
		if best == nil {
			continue
		}
		used[best.Id] = true
		out = append(out, Assignment{
			ShipId: ship.Id,
			Orders: []world.Order{
				world.MoveToPointOrder{Target: best.PositionMkm},
				world.SalvageWreckOrder{WreckId: best.Id},
			},
			Score: bestScore,
			Note:  "salvage",
		})
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}
