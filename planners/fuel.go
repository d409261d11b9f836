package planners

import (
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// LowFuelFraction is the fraction of FuelCapacity below which a ship is
// considered in need of a tanker run.
const LowFuelFraction = 0.25

// FuelResource is the manufactured resource tankers carry; fixed because the
// engine treats fuel as an ordinary, non-mineable Resource (see §3).
const FuelResource = "Fuel"

// PlanFuel assigns idle auto_tanker ships to top off the nearest same-
// faction ship whose fuel has fallen below LowFuelFraction of capacity.
func PlanFuel(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	tankers := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoTanker && s.CargoTons[FuelResource] > 0
	})
	if len(tankers) == 0 {
		return nil
	}

	var needy []*world.Ship
	for _, shipId := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(shipId)
		if ship.FactionId != factionId || !ship.Alive() {
			continue
		}
		if ship.Cache.FuelCapacity <= 0 {
			continue
		}
		if ship.Fuel < LowFuelFraction*ship.Cache.FuelCapacity {
			needy = append(needy, ship)
		}
	}
	if len(needy) == 0 {
		return nil
	}

	used := map[ids.Id]bool{}
	var out []Assignment
	for _, tanker := range tankers {
		var best *world.Ship
		bestDist := -1.0
		for _, candidate := range needy {
			if used[candidate.Id] || candidate.Id == tanker.Id {
				continue
			}
			d := tanker.PositionMkm.Dist(candidate.PositionMkm)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = candidate
			}
		}
		if best == nil {
			continue
		}
		used[best.Id] = true

		need := best.Cache.FuelCapacity - best.Fuel
		have := tanker.CargoTons[FuelResource]
		tons := need
		if tons > have {
			tons = have
		}

		out = append(out, Assignment{
			ShipId: tanker.Id,
			Orders: []world.Order{
				world.MoveToPointOrder{Target: best.PositionMkm},
				world.TransferFuelToShipOrder{TargetShipId: best.Id, Tons: tons},
			},
			EtaDays: bestDist / speedOrOne(tanker),
			Note:    "refuel",
		})
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}
