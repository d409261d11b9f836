package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// JumpPointIdsIn implements routing.SystemGraph.
func (gs *GameState) JumpPointIdsIn(systemId ids.Id) []ids.Id {
	sys, ok := gs.Systems.Get(systemId)
	if !ok {
		return nil
	}
	return sys.JumpPointIds
}

// JumpPoint implements routing.SystemGraph.
func (gs *GameState) JumpPoint(jumpId ids.Id) (systemId ids.Id, pos geom.Vec, linkedJumpId ids.Id, ok bool) {
	jp, found := gs.JumpPoints.Get(jumpId)
	if !found {
		return 0, geom.Vec{}, 0, false
	}
	return jp.SystemId, jp.PositionMkm, jp.LinkedJumpId, true
}

// IsDiscovered implements routing.SystemGraph.
func (gs *GameState) IsDiscovered(factionId, systemId ids.Id) bool {
	f, ok := gs.Factions.Get(factionId)
	if !ok {
		return false
	}
	return f.HasDiscovered(systemId)
}
