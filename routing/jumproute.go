package routing

import (
	"sort"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// SystemGraph is the minimal view of GameState the planner needs, kept
// separate from the world package so routing stays free of any GameState
// mutation capability.
type SystemGraph interface {
	JumpPointIdsIn(systemId ids.Id) []ids.Id
	JumpPoint(jumpId ids.Id) (systemId ids.Id, pos geom.Vec, linkedJumpId ids.Id, ok bool)
	IsDiscovered(factionId, systemId ids.Id) bool
}

// RoutePlan is the result of a successful jump route search.
type RoutePlan struct {
	JumpIds      []ids.Id
	EtaToLastJumpDays float64
	TotalEtaDays float64
}

type frontierNode struct {
	systemId ids.Id
	pos      geom.Vec
	cost     float64
	viaJump  ids.Id
	prev     ids.Id // previous system id, invalid for origin
}

// PlanRoute finds the minimum-ETA jump route from (fromSystem, fromPos) to
// destSystem, optionally ending at destPos inside the destination system.
// When restrictToDiscovered is true, edges into systems the faction has not
// discovered are masked off.
func PlanRoute(graph SystemGraph, fromSystem ids.Id, fromPos geom.Vec, factionId ids.Id, shipSpeedMkmPerDay float64, destSystem ids.Id, restrictToDiscovered bool, destPos *geom.Vec) (*RoutePlan, bool) {
	if shipSpeedMkmPerDay <= 0 {
		return nil, false
	}

	best := map[ids.Id]frontierNode{
		fromSystem: {systemId: fromSystem, pos: fromPos, cost: 0, prev: ids.Invalid},
	}
	visited := map[ids.Id]bool{}
	cameFromJump := map[ids.Id]ids.Id{}
	cameFromSystem := map[ids.Id]ids.Id{}

	for {
		// Pick the unvisited frontier node with lowest cost.
		var current ids.Id
		found := false
		lowest := 0.0
		frontierIds := make([]ids.Id, 0, len(best))
		for id := range best {
			frontierIds = append(frontierIds, id)
		}
		sort.Slice(frontierIds, func(i, j int) bool { return frontierIds[i] < frontierIds[j] })
		for _, id := range frontierIds {
			if visited[id] {
				continue
			}
			n := best[id]
			if !found || n.cost < lowest {
				current = id
				lowest = n.cost
				found = true
			}
		}
		if !found {
			break
		}
		visited[current] = true
		if current == destSystem {
			break
		}

		node := best[current]
		for _, jumpId := range graph.JumpPointIdsIn(current) {
			_, jumpPos, linkedJumpId, ok := graph.JumpPoint(jumpId)
			if !ok || linkedJumpId == 0 {
				continue
			}
			otherSystemId, otherPos, _, ok := graph.JumpPoint(linkedJumpId)
			if !ok {
				continue
			}
			if restrictToDiscovered && !graph.IsDiscovered(factionId, otherSystemId) {
				continue
			}

			legCost := node.pos.Dist(jumpPos) / shipSpeedMkmPerDay
			totalCost := node.cost + legCost

			existing, seen := best[otherSystemId]
			if !seen || totalCost < existing.cost {
				best[otherSystemId] = frontierNode{
					systemId: otherSystemId,
					pos:      otherPos,
					cost:     totalCost,
					viaJump:  jumpId,
					prev:     current,
				}
				cameFromJump[otherSystemId] = jumpId
				cameFromSystem[otherSystemId] = current
			}
		}
	}

	dest, ok := best[destSystem]
	if !ok || !visited[destSystem] {
		return nil, false
	}

	// Walk the predecessor chain back to the origin to build the jump list.
	var jumpIds []ids.Id
	for sys := destSystem; sys != fromSystem; {
		j, ok := cameFromJump[sys]
		if !ok {
			return nil, false
		}
		jumpIds = append([]ids.Id{j}, jumpIds...)
		sys = cameFromSystem[sys]
	}

	etaToLastJump := dest.cost
	total := etaToLastJump
	if destPos != nil {
		total += dest.pos.Dist(*destPos) / shipSpeedMkmPerDay
	}

	return &RoutePlan{
		JumpIds:           jumpIds,
		EtaToLastJumpDays: etaToLastJump,
		TotalEtaDays:      total,
	}, true
}
