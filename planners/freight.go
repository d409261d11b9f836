package planners

import (
	"sort"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// SurplusThreshold is the per-resource stockpile level above which a colony
// is considered a freight source rather than a sink.
const SurplusThreshold = 50.0

// PlanFreight assigns idle auto_freight ships to haul a surplus mineral from
// a colony that has one to a colony that has none, scoring each
// (ship, source, sink) edge by throughput/ETA and greedily assigning the
// best edges first, one ship per edge.
func PlanFreight(gs *world.GameState, factionId ids.Id, opts Options) []Assignment {
	return planFreightInternal(gs, factionId, opts, SurplusThreshold)
}

func planFreightInternal(gs *world.GameState, factionId ids.Id, opts Options, threshold float64) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool {
		return s.Automation.AutoFreight && s.CargoTotal() == 0
	})
	if len(ships) == 0 {
		return nil
	}

	type edge struct {
		ship     *world.Ship
		source   *world.Colony
		sink     *world.Colony
		mineral  string
		tons     float64
		score    float64
		etaDays  float64
	}

	var edges []edge
	colonyIds := gs.Colonies.SortedIds()
	for _, ship := range ships {
		for _, srcId := range colonyIds {
			source := gs.Colonies.MustGet(srcId)
			if source.FactionId != factionId {
				continue
			}
			minerals := make([]string, 0, len(source.Stockpile))
			for m := range source.Stockpile {
				minerals = append(minerals, m)
			}
			sort.Strings(minerals)
			for _, mineral := range minerals {
				tons := source.Stockpile[mineral]
				if tons <= threshold {
					continue
				}
				for _, sinkId := range colonyIds {
					if sinkId == srcId {
						continue
					}
					sink := gs.Colonies.MustGet(sinkId)
					if sink.FactionId != factionId || sink.Stockpile[mineral] > 0 {
						continue
					}
					srcBody, ok1 := gs.Bodies.Get(source.BodyId)
					sinkBody, ok2 := gs.Bodies.Get(sink.BodyId)
					if !ok1 || !ok2 {
						continue
					}
					travel := ship.PositionMkm.Dist(srcBody.PositionMkm) + srcBody.PositionMkm.Dist(sinkBody.PositionMkm)
					speed := speedOrOne(ship)
					eta := travel / speed
					moveTons := tons - threshold
					if moveTons > ship.Cache.CargoTons {
						moveTons = ship.Cache.CargoTons
					}
					if moveTons < opts.MinTons {
						continue
					}
					score := moveTons / max1(eta)
					edges = append(edges, edge{ship, source, sink, mineral, moveTons, score, eta})
				}
			}
		}
	}

	sort.SliceStable(edges, func(i, j int) bool { return edges[i].score > edges[j].score })

	usedShip := map[ids.Id]bool{}
	var out []Assignment
	for _, e := range edges {
		if usedShip[e.ship.Id] {
			continue
		}
		usedShip[e.ship.Id] = true
		out = append(out, Assignment{
			ShipId: e.ship.Id,
			Orders: []world.Order{
				world.MoveToBodyOrder{BodyId: e.source.BodyId},
				world.LoadMineralOrder{ColonyId: e.source.Id, Mineral: e.mineral, Tons: e.tons},
				world.MoveToBodyOrder{BodyId: e.sink.BodyId},
				world.UnloadMineralOrder{ColonyId: e.sink.Id, Mineral: e.mineral},
			},
			Score:   e.score,
			EtaDays: e.etaDays,
			Note:    "freight " + e.mineral,
		})
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}

func max1(v float64) float64 {
	if v < 0.25 {
		return 0.25
	}
	return v
}
