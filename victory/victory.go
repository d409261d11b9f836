// Package victory computes the per-tick scoreboard and checks the
// configured win conditions.
package victory

import (
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// Score weights: colonies contribute their population, techs and ships
// contribute a flat per-unit bonus. Fixed per spec §4.8 ("exact weights
// configurable but fixed").
const (
	TechScoreWeight  = 10.0
	ShipScoreWeight  = 2.0
)

// ComputeScoreboard returns each faction's score, excluding pirate
// factions when rules.ExcludePirates is set.
func ComputeScoreboard(gs *world.GameState, rules world.VictoryRules) map[ids.Id]float64 {
	scores := map[ids.Id]float64{}
	for _, fid := range gs.Factions.SortedIds() {
		f := gs.Factions.MustGet(fid)
		if rules.ExcludePirates && f.Control == world.ControlAIPirate {
			continue
		}
		scores[fid] = 0
	}

	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		if _, ok := scores[c.FactionId]; !ok {
			continue
		}
		scores[c.FactionId] += c.PopulationMillions
	}
	for _, fid := range gs.Factions.SortedIds() {
		f := gs.Factions.MustGet(fid)
		if _, ok := scores[fid]; !ok {
			continue
		}
		scores[fid] += float64(len(f.KnownTechs)) * TechScoreWeight
	}
	for _, sid := range gs.Ships.SortedIds() {
		s := gs.Ships.MustGet(sid)
		if _, ok := scores[s.FactionId]; !ok {
			continue
		}
		scores[s.FactionId] += ShipScoreWeight
	}
	return scores
}

// Check evaluates the configured win conditions against gs, mutating
// gs.VictoryState and emitting the terminal event exactly once. Returns
// true if the game is (now or already) over.
func Check(gs *world.GameState, rules world.VictoryRules) bool {
	if !rules.Enabled {
		return false
	}
	if gs.VictoryState.GameOver {
		return true
	}

	if rules.EliminationEnabled {
		if winner, ok := lastFactionStanding(gs, rules); ok {
			declare(gs, winner, world.ReasonLastFactionStanding)
			return true
		}
	}

	if rules.ScoreThreshold > 0 {
		scores := ComputeScoreboard(gs, rules)
		var leader ids.Id
		best := -1.0
		for _, fid := range gs.Factions.SortedIds() {
			score, ok := scores[fid]
			if !ok || score <= best {
				continue
			}
			best = score
			leader = fid
		}
		if leader != 0 && best >= rules.ScoreThreshold {
			declare(gs, leader, world.ReasonScoreThreshold)
			return true
		}
	}

	return false
}

func lastFactionStanding(gs *world.GameState, rules world.VictoryRules) (ids.Id, bool) {
	ownsColony := map[ids.Id]bool{}
	for _, cid := range gs.Colonies.SortedIds() {
		c := gs.Colonies.MustGet(cid)
		ownsColony[c.FactionId] = true
	}

	var standing ids.Id
	count := 0
	for _, fid := range gs.Factions.SortedIds() {
		f := gs.Factions.MustGet(fid)
		if rules.ExcludePirates && f.Control == world.ControlAIPirate {
			continue
		}
		if rules.EliminationRequiresColony && !ownsColony[fid] {
			continue
		}
		count++
		standing = fid
	}
	if count == 1 {
		return standing, true
	}
	return 0, false
}

func declare(gs *world.GameState, winner ids.Id, reason world.VictoryReason) {
	gs.VictoryState.GameOver = true
	gs.VictoryState.WinnerFactionId = winner
	gs.VictoryState.Reason = reason
	if !gs.VictoryState.TerminalEventEmitted {
		gs.EmitFor(world.LevelInfo, "victory", "game over: "+string(reason), winner, 0, 0, 0)
		gs.VictoryState.TerminalEventEmitted = true
	}
}
