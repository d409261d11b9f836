package planners

import (
	"math"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// MineOptions extends Options with the mineral the planner should target; an
// empty mineral means the planner picks whichever deposit scores highest.
type MineOptions struct {
	Options
	Mineral string
}

// PlanMining assigns idle auto_mine ships to either a mining body or, if the
// ship's hold is already non-empty, a DeliverCargo run. Each body in the
// ship's current system is scored by expected_tons / max(0.25, travel+mine),
// with a mild asteroid/comet bias; the delivery leg is not part of the score.
func PlanMining(gs *world.GameState, factionId ids.Id, opts MineOptions) []Assignment {
	ships := eligibleShips(gs, factionId, opts.Options, func(s *world.Ship) bool { return s.Automation.AutoMine })

	var out []Assignment
	bodiesConsidered := 0
	for _, ship := range ships {
		if ship.CargoTotal() > 0 {
			if a, ok := planDeliverCargo(gs, ship); ok {
				out = append(out, a)
			}
			continue
		}

		sys, ok := gs.Systems.Get(ship.SystemId)
		if !ok {
			continue
		}

		var best *world.Body
		bestScore := -1.0
		bestMineral := opts.Mineral

		for _, bodyId := range sys.BodyIds {
			if opts.MaxBodies > 0 && bodiesConsidered >= opts.MaxBodies {
				break
			}
			body, ok := gs.Bodies.Get(bodyId)
			if !ok || len(body.MineralDeposits) == 0 && !body.DepositUnlimited() {
				continue
			}
			bodiesConsidered++

			mineral := opts.Mineral
			tons := 0.0
			for resource, remaining := range body.MineralDeposits {
				if mineral != "" && resource != mineral {
					continue
				}
				if remaining > tons {
					tons = remaining
					mineral = resource
				}
			}
			if mineral == "" {
				continue
			}

			travel := ship.PositionMkm.Dist(body.PositionMkm) / speedOrOne(ship)
			mineDays := 1.0
			if ship.Cache.MiningTonsPerDay > 0 && ship.Cache.CargoTons > 0 {
				mineDays = ship.Cache.CargoTons / ship.Cache.MiningTonsPerDay
			}
			bias := 1.0
			if body.Type == world.BodyAsteroid || body.Type == world.BodyComet {
				bias = 1.1
			}

			expectedTons := math.Min(tons, ship.Cache.CargoTons)
			score := bias * expectedTons / math.Max(0.25, travel+mineDays)
			if score > bestScore {
				bestScore = score
				best = body
				bestMineral = mineral
			}
		}

		if best == nil {
			continue
		}

		out = append(out, Assignment{
			ShipId: ship.Id,
			Orders: []world.Order{
				world.MoveToBodyOrder{BodyId: best.Id},
				world.MineBodyOrder{BodyId: best.Id, Mineral: bestMineral, StopWhenCargoFull: true},
			},
			Score: bestScore,
			Note:  "mine " + bestMineral,
		})
	}
	return out
}

// planDeliverCargo routes an already-laden mining ship to its home colony,
// or failing that the nearest colony of its faction. Which colony is short
// of the cargo's mineral is not considered.
func planDeliverCargo(gs *world.GameState, ship *world.Ship) (Assignment, bool) {
	target := pickDeliveryColony(gs, ship)
	if target == nil {
		return Assignment{}, false
	}
	return Assignment{
		ShipId: ship.Id,
		Orders: []world.Order{
			world.MoveToBodyOrder{BodyId: target.BodyId},
			world.UnloadMineralOrder{ColonyId: target.Id},
		},
		Note: "deliver cargo",
	}, true
}

func pickDeliveryColony(gs *world.GameState, ship *world.Ship) *world.Colony {
	if ship.Automation.HomeColonyId != 0 {
		if c, ok := gs.Colonies.Get(ship.Automation.HomeColonyId); ok {
			return c
		}
	}

	var best *world.Colony
	bestDist := math.Inf(1)
	for _, colonyId := range gs.Colonies.SortedIds() {
		colony := gs.Colonies.MustGet(colonyId)
		if colony.FactionId != ship.FactionId {
			continue
		}
		body, ok := gs.Bodies.Get(colony.BodyId)
		if !ok {
			continue
		}
		d := ship.PositionMkm.Dist(body.PositionMkm)
		if d < bestDist {
			bestDist = d
			best = colony
		}
	}
	return best
}

func speedOrOne(ship *world.Ship) float64 {
	speed := ship.Cache.SpeedKmS * world.SpeedKmSToMkmPerDay
	if speed <= 0 {
		return 1
	}
	return speed
}
