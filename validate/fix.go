package validate

import (
	"sort"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// Fix removes dangling references and restores the invariants Validate
// checks. It is idempotent: running it twice in a row produces the same
// state as running it once. Content-backed reference issues (unknown
// design/installation/tech ids) are left for the caller to resolve via a
// content reload, since Fix has no authority to invent or drop content.
func Fix(gs *world.GameState) {
	dropShipsWithDanglingRefs(gs)
	dropColoniesWithDanglingRefs(gs)
	resyncSystemChildLists(gs)
	dropDanglingJumpLinks(gs)
	dropMultiFleetMembership(gs)
	dropInvalidFleetLeaders(gs)
	dedupeDiscoveredSystems(gs)
	bumpCounters(gs)
}

// dropShipsWithDanglingRefs removes ships referencing a system or faction
// that no longer exists. A ship has no valid existence without a system to
// be in or a faction to belong to, so unlike a jump point's optional link
// there is no ids.Invalid value for Validate to tolerate here; the entity
// itself is dropped instead.
func dropShipsWithDanglingRefs(gs *world.GameState) {
	for _, sid := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(sid)
		if gs.Systems.Has(ship.SystemId) && gs.Factions.Has(ship.FactionId) {
			continue
		}
		gs.Ships.Delete(sid)
		delete(gs.ShipOrders, sid)
		for _, flid := range gs.Fleets.SortedIds() {
			gs.Fleets.MustGet(flid).RemoveShip(sid)
		}
	}
}

// dropColoniesWithDanglingRefs removes colonies referencing a body or
// faction that no longer exists, for the same reason ships are dropped
// rather than repointed: neither field has a meaningful "none" value.
func dropColoniesWithDanglingRefs(gs *world.GameState) {
	for _, cid := range gs.Colonies.SortedIds() {
		colony := gs.Colonies.MustGet(cid)
		if gs.Bodies.Has(colony.BodyId) && gs.Factions.Has(colony.FactionId) {
			continue
		}
		gs.Colonies.Delete(cid)
	}
}

func resyncSystemChildLists(gs *world.GameState) {
	bodiesBySystem := map[ids.Id][]ids.Id{}
	for _, bid := range gs.Bodies.SortedIds() {
		b := gs.Bodies.MustGet(bid)
		bodiesBySystem[b.SystemId] = append(bodiesBySystem[b.SystemId], bid)
	}
	shipsBySystem := map[ids.Id][]ids.Id{}
	for _, sid := range gs.Ships.SortedIds() {
		s := gs.Ships.MustGet(sid)
		shipsBySystem[s.SystemId] = append(shipsBySystem[s.SystemId], sid)
	}

	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		sys.BodyIds = bodiesBySystem[sysId]
		sys.ShipIds = shipsBySystem[sysId]
	}
}

func dropDanglingJumpLinks(gs *world.GameState) {
	for _, jid := range gs.JumpPoints.SortedIds() {
		jp := gs.JumpPoints.MustGet(jid)
		if jp.LinkedJumpId == ids.Invalid {
			continue
		}
		if jp.LinkedJumpId == jid {
			jp.LinkedJumpId = ids.Invalid
			continue
		}
		other, ok := gs.JumpPoints.Get(jp.LinkedJumpId)
		if !ok || other.LinkedJumpId != jid {
			jp.LinkedJumpId = ids.Invalid
		}
	}
}

func dropMultiFleetMembership(gs *world.GameState) {
	seen := map[ids.Id]bool{}
	for _, flid := range gs.Fleets.SortedIds() {
		fleet := gs.Fleets.MustGet(flid)
		shipIds := make([]ids.Id, 0, len(fleet.ShipIds))
		for sid := range fleet.ShipIds {
			shipIds = append(shipIds, sid)
		}
		sort.Slice(shipIds, func(i, j int) bool { return shipIds[i] < shipIds[j] })
		for _, sid := range shipIds {
			if seen[sid] {
				fleet.RemoveShip(sid)
				continue
			}
			seen[sid] = true
		}
	}
}

func dropInvalidFleetLeaders(gs *world.GameState) {
	for _, flid := range gs.Fleets.SortedIds() {
		fleet := gs.Fleets.MustGet(flid)
		if fleet.LeaderShipId != ids.Invalid && !fleet.HasShip(fleet.LeaderShipId) {
			fleet.LeaderShipId = ids.Invalid
		}
	}
}

func dedupeDiscoveredSystems(gs *world.GameState) {
	for _, fid := range gs.Factions.SortedIds() {
		f := gs.Factions.MustGet(fid)
		seen := map[ids.Id]bool{}
		out := f.DiscoveredSystems[:0]
		for _, sysId := range f.DiscoveredSystems {
			if seen[sysId] || !gs.Systems.Has(sysId) {
				continue
			}
			seen[sysId] = true
			out = append(out, sysId)
		}
		f.DiscoveredSystems = out
	}
}

func bumpCounters(gs *world.GameState) {
	maxId := ids.Id(0)
	bump := func(id ids.Id) {
		if id > maxId {
			maxId = id
		}
	}
	for _, id := range gs.Systems.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Bodies.SortedIds() {
		bump(id)
	}
	for _, id := range gs.JumpPoints.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Ships.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Colonies.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Factions.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Fleets.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Anomalies.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Wrecks.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Contracts.SortedIds() {
		bump(id)
	}
	for _, id := range gs.Missiles.SortedIds() {
		bump(id)
	}
	if gs.NextId <= maxId {
		gs.NextId = maxId + 1
	}

	maxSeq := int64(0)
	for _, e := range gs.Events {
		if e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}
	if gs.NextEventSeq <= maxSeq {
		gs.NextEventSeq = maxSeq + 1
	}
}
