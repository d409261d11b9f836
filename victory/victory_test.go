package victory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/world"
)

func TestLastFactionStandingDeclaresWinner(t *testing.T) {
	gs := world.New()
	rules := world.DefaultVictoryRules()

	winner := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(winner.Id, winner)
	loser := world.NewFaction(gs.NewId(), "Martian", world.ControlAIEmpire)
	gs.Factions.Set(loser.Id, loser)

	colony := world.NewColony(gs.NewId(), winner.Id, gs.NewId(), "Home")
	gs.Colonies.Set(colony.Id, colony)

	assert.True(t, Check(gs, rules))
	assert.True(t, gs.VictoryState.GameOver)
	assert.Equal(t, winner.Id, gs.VictoryState.WinnerFactionId)
	assert.Equal(t, world.ReasonLastFactionStanding, gs.VictoryState.Reason)
	assert.True(t, gs.VictoryState.TerminalEventEmitted)
	assert.Len(t, gs.Events, 1)

	// a second check after game_over must not emit a second terminal event.
	Check(gs, rules)
	assert.Len(t, gs.Events, 1)
}

func TestScoreboardExcludesPirates(t *testing.T) {
	gs := world.New()
	rules := world.DefaultVictoryRules()

	player := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(player.Id, player)
	pirate := world.NewFaction(gs.NewId(), "Raiders", world.ControlAIPirate)
	gs.Factions.Set(pirate.Id, pirate)

	scores := ComputeScoreboard(gs, rules)
	_, ok := scores[pirate.Id]
	assert.False(t, ok)
	_, ok = scores[player.Id]
	assert.True(t, ok)
}
