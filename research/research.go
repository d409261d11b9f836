// Package research runs the per-faction technology tick: RP accrual from
// colony installations and banked points, tech completion and effect application, and
// prereq-gated research queue advancement.
package research

import (
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// Tick advances every faction's active research by the given number of
// hours, summing research_points_per_day across that faction's colonies
// independently of the economy tick (see economy.runInstallations), plus
// whatever the faction holds in its ResearchPoints bank, which is drawn
// down to zero.
func Tick(gs *world.GameState, db *content.DB, hours float64) {
	days := hours / 24.0
	for _, factionId := range gs.Factions.SortedIds() {
		faction := gs.Factions.MustGet(factionId)
		if faction.ActiveResearchId == "" {
			continue
		}

		faction.ActiveResearchProgress += researchRatePerDay(gs, db, factionId)*days + faction.ResearchPoints
		faction.ResearchPoints = 0

		def, ok := db.Techs[faction.ActiveResearchId]
		if !ok || faction.ActiveResearchProgress < def.Cost {
			continue
		}

		completeTech(gs, faction, def)
		advanceQueue(gs, db, faction)
	}
}

// researchRatePerDay sums research_points_per_day · inst_count across every
// colony owned by factionId, in sorted colony-id order for determinism.
func researchRatePerDay(gs *world.GameState, db *content.DB, factionId ids.Id) float64 {
	total := 0.0
	for _, colonyId := range gs.Colonies.SortedIds() {
		colony := gs.Colonies.MustGet(colonyId)
		if colony.FactionId != factionId {
			continue
		}
		instIds := make([]string, 0, len(colony.Installations))
		for id := range colony.Installations {
			instIds = append(instIds, id)
		}
		sort.Strings(instIds)
		for _, instId := range instIds {
			def, ok := db.Installations[instId]
			if !ok || def.ResearchPointsPerDay <= 0 {
				continue
			}
			total += def.ResearchPointsPerDay * float64(colony.Installations[instId])
		}
	}
	return total
}

// completeTech applies def's unlock effects, records it in known_techs and
// resets progress/active id so advanceQueue can pick the next tech.
func completeTech(gs *world.GameState, faction *world.Faction, def *content.TechDef) {
	for _, effect := range def.Effects {
		switch effect.Type {
		case content.EffectUnlockComponent:
			faction.UnlockedComponents[effect.Value] = true
		case content.EffectUnlockInstallation:
			faction.UnlockedInstallations[effect.Value] = true
		}
	}
	faction.KnownTechs[def.Id] = true
	gs.EmitFor(world.LevelInfo, "research", faction.Name+" completed "+def.Name, faction.Id, 0, 0, 0)

	faction.ActiveResearchId = ""
	faction.ActiveResearchProgress -= def.Cost
	if faction.ActiveResearchProgress < 0 {
		faction.ActiveResearchProgress = 0
	}
}

// advanceQueue pops the next prereq-satisfied tech off the faction's
// research_queue and makes it active; prereqs are enforced here, at dequeue
// time, not at enqueue time, so a tech can be queued before its prereqs are
// known.
func advanceQueue(gs *world.GameState, db *content.DB, faction *world.Faction) {
	for len(faction.ResearchQueue) > 0 {
		next := faction.ResearchQueue[0]
		faction.ResearchQueue = faction.ResearchQueue[1:]

		def, ok := db.Techs[next.TechId]
		if !ok || faction.KnownTechs[next.TechId] {
			continue
		}
		if !prereqsSatisfied(faction, def) {
			gs.EmitFor(world.LevelWarn, "research", next.TechId+" skipped: prereqs unmet", faction.Id, 0, 0, 0)
			continue
		}

		faction.ActiveResearchId = next.TechId
		return
	}
}

func prereqsSatisfied(faction *world.Faction, def *content.TechDef) bool {
	for _, prereq := range def.Prereqs {
		if !faction.KnownTechs[prereq] {
			return false
		}
	}
	return true
}
