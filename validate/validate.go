// Package validate checks the invariants spec'd for GameState and
// provides the single idempotent repair path that restores them.
package validate

import (
	"fmt"
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// Validate returns a sorted list of human-readable issues. It never
// mutates gs.
func Validate(gs *world.GameState, db *content.DB) []string {
	var issues []string

	maxId := ids.Id(0)
	bump := func(id ids.Id) {
		if id > maxId {
			maxId = id
		}
	}

	for _, sysId := range gs.Systems.SortedIds() {
		bump(sysId)
		sys := gs.Systems.MustGet(sysId)
		for _, bid := range sys.BodyIds {
			body, ok := gs.Bodies.Get(bid)
			if !ok {
				issues = append(issues, fmt.Sprintf("System %d references unknown body %d", sysId, bid))
			} else if body.SystemId != sysId {
				issues = append(issues, fmt.Sprintf("Body %d system_id %d does not match containing system %d", bid, body.SystemId, sysId))
			}
		}
		for _, sid := range sys.ShipIds {
			ship, ok := gs.Ships.Get(sid)
			if !ok {
				issues = append(issues, fmt.Sprintf("System %d references unknown ship %d", sysId, sid))
			} else if ship.SystemId != sysId {
				issues = append(issues, fmt.Sprintf("Ship %d system_id %d does not match containing system %d", sid, ship.SystemId, sysId))
			}
		}
	}

	for _, bid := range gs.Bodies.SortedIds() {
		bump(bid)
		body := gs.Bodies.MustGet(bid)
		if !gs.Systems.Has(body.SystemId) {
			issues = append(issues, fmt.Sprintf("Body %d references unknown system_id %d", bid, body.SystemId))
		}
	}

	for _, jid := range gs.JumpPoints.SortedIds() {
		bump(jid)
		jp := gs.JumpPoints.MustGet(jid)
		if jp.LinkedJumpId == ids.Invalid {
			continue
		}
		other, ok := gs.JumpPoints.Get(jp.LinkedJumpId)
		if !ok {
			issues = append(issues, fmt.Sprintf("JumpPoint %d linked_jump_id %d does not exist", jid, jp.LinkedJumpId))
			continue
		}
		if other.LinkedJumpId != jid {
			issues = append(issues, fmt.Sprintf("JumpPoint %d linked_jump_id %d is not mutual", jid, jp.LinkedJumpId))
		}
		if jp.LinkedJumpId == jid {
			issues = append(issues, fmt.Sprintf("JumpPoint %d links to itself", jid))
		}
	}

	for _, sid := range gs.Ships.SortedIds() {
		bump(sid)
		ship := gs.Ships.MustGet(sid)
		if !gs.Systems.Has(ship.SystemId) {
			issues = append(issues, fmt.Sprintf("Ship %d references unknown system_id %d", sid, ship.SystemId))
		}
		if !gs.Factions.Has(ship.FactionId) {
			issues = append(issues, fmt.Sprintf("Ship %d references unknown faction_id %d", sid, ship.FactionId))
		}
		if ship.DesignId != "" {
			if _, ok := db.Designs[ship.DesignId]; !ok && !gs.CustomDesigns[ship.DesignId] {
				issues = append(issues, fmt.Sprintf("Ship %d references unknown design_id %q", sid, ship.DesignId))
			}
		}
	}

	for _, cid := range gs.Colonies.SortedIds() {
		bump(cid)
		colony := gs.Colonies.MustGet(cid)
		if !gs.Bodies.Has(colony.BodyId) {
			issues = append(issues, fmt.Sprintf("Colony %d references unknown body_id %d", cid, colony.BodyId))
		}
		if !gs.Factions.Has(colony.FactionId) {
			issues = append(issues, fmt.Sprintf("Colony %d references unknown faction_id %d", cid, colony.FactionId))
		}
		instIds := make([]string, 0, len(colony.Installations))
		for id := range colony.Installations {
			instIds = append(instIds, id)
		}
		sort.Strings(instIds)
		for _, instId := range instIds {
			if _, ok := db.Installations[instId]; !ok {
				issues = append(issues, fmt.Sprintf("Colony %d references unknown installation_id %q", cid, instId))
			}
		}
	}

	for _, fid := range gs.Factions.SortedIds() {
		bump(fid)
		faction := gs.Factions.MustGet(fid)
		seen := map[ids.Id]bool{}
		for _, sysId := range faction.DiscoveredSystems {
			if seen[sysId] {
				issues = append(issues, fmt.Sprintf("Faction %d discovered_systems contains duplicate %d", fid, sysId))
			}
			seen[sysId] = true
			if !gs.Systems.Has(sysId) {
				issues = append(issues, fmt.Sprintf("Faction %d discovered_systems references unknown system %d", fid, sysId))
			}
		}
		for _, entry := range faction.ResearchQueue {
			if _, ok := db.Techs[entry.TechId]; !ok {
				issues = append(issues, fmt.Sprintf("Faction %d research_queue references unknown tech_id %q", fid, entry.TechId))
			}
		}
	}

	if cycle := findTechCycle(db); cycle != "" {
		issues = append(issues, "Tech prereq graph contains a cycle at "+cycle)
	}

	for _, flid := range gs.Fleets.SortedIds() {
		bump(flid)
		fleet := gs.Fleets.MustGet(flid)
		if fleet.LeaderShipId != ids.Invalid && !fleet.HasShip(fleet.LeaderShipId) {
			issues = append(issues, fmt.Sprintf("Fleet %d leader_ship_id %d is not a member", flid, fleet.LeaderShipId))
		}
	}
	shipFleets := map[ids.Id]int{}
	for _, flid := range gs.Fleets.SortedIds() {
		fleet := gs.Fleets.MustGet(flid)
		shipIds := make([]ids.Id, 0, len(fleet.ShipIds))
		for sid := range fleet.ShipIds {
			shipIds = append(shipIds, sid)
		}
		sort.Slice(shipIds, func(i, j int) bool { return shipIds[i] < shipIds[j] })
		for _, sid := range shipIds {
			shipFleets[sid]++
		}
	}
	for sid, count := range shipFleets {
		if count > 1 {
			issues = append(issues, fmt.Sprintf("Ship %d belongs to more than one fleet", sid))
		}
	}

	for _, aid := range gs.Anomalies.SortedIds() {
		bump(aid)
	}
	for _, wid := range gs.Wrecks.SortedIds() {
		bump(wid)
	}
	for _, ctid := range gs.Contracts.SortedIds() {
		bump(ctid)
	}
	for _, mid := range gs.Missiles.SortedIds() {
		bump(mid)
	}

	if gs.NextId <= maxId {
		issues = append(issues, fmt.Sprintf("next_id %d is not greater than max existing id %d", gs.NextId, maxId))
	}

	maxSeq := int64(0)
	for _, e := range gs.Events {
		if e.Seq > maxSeq {
			maxSeq = e.Seq
		}
	}
	if gs.NextEventSeq <= maxSeq {
		issues = append(issues, fmt.Sprintf("next_event_seq %d is not greater than max existing seq %d", gs.NextEventSeq, maxSeq))
	}

	sort.Strings(issues)
	return issues
}

func findTechCycle(db *content.DB) string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	state := map[string]int{}
	ids := make([]string, 0, len(db.Techs))
	for id := range db.Techs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var visit func(id string) bool
	visit = func(id string) bool {
		if state[id] == gray {
			return true
		}
		if state[id] == black {
			return false
		}
		state[id] = gray
		def, ok := db.Techs[id]
		if ok {
			prereqs := append([]string(nil), def.Prereqs...)
			sort.Strings(prereqs)
			for _, p := range prereqs {
				if visit(p) {
					return true
				}
			}
		}
		state[id] = black
		return false
	}

	for _, id := range ids {
		if visit(id) {
			return id
		}
	}
	return ""
}
