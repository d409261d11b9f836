package diplomacy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/world"
)

func TestTickDriftsTowardBaseline(t *testing.T) {
	gs := world.New()
	a := world.NewFaction(gs.NewId(), "A", world.ControlPlayer)
	b := world.NewFaction(gs.NewId(), "B", world.ControlAIEmpire)
	a.Diplomacy[b.Id] = -0.5
	gs.Factions.Set(a.Id, a)
	gs.Factions.Set(b.Id, b)

	Tick(gs, 24)
	assert.Greater(t, a.Diplomacy[b.Id], -0.5)
	assert.Less(t, a.Diplomacy[b.Id], 0.0)
}
