package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/world"
)

func TestTickAccruesAndCompletesTech(t *testing.T) {
	gs := world.New()
	db := content.New()
	db.Installations["lab"] = &content.InstallationDef{Id: "lab", ResearchPointsPerDay: 10}
	db.Techs["armor1"] = &content.TechDef{Id: "armor1", Name: "Improved Armor", Cost: 20, Effects: []content.TechEffect{
		{Type: content.EffectUnlockComponent, Value: "heavy_armor"},
	}}
	db.Techs["armor2"] = &content.TechDef{Id: "armor2", Name: "Advanced Armor", Cost: 100, Prereqs: []string{"armor1"}}

	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	faction.ActiveResearchId = "armor1"
	faction.ResearchQueue = []world.ResearchQueueEntry{{TechId: "armor2"}}
	gs.Factions.Set(faction.Id, faction)

	colony := world.NewColony(gs.NewId(), faction.Id, gs.NewId(), "Home")
	colony.Installations["lab"] = 1
	gs.Colonies.Set(colony.Id, colony)

	Tick(gs, db, 24)
	assert.Equal(t, 10.0, faction.ActiveResearchProgress)
	assert.Equal(t, "armor1", faction.ActiveResearchId)

	Tick(gs, db, 24)
	require.True(t, faction.KnownTechs["armor1"])
	assert.True(t, faction.UnlockedComponents["heavy_armor"])
	assert.Equal(t, "armor2", faction.ActiveResearchId)
	assert.Empty(t, faction.ResearchQueue)
}

func TestPrereqUnmetSkipsQueueEntry(t *testing.T) {
	gs := world.New()
	db := content.New()
	db.Techs["advanced"] = &content.TechDef{Id: "advanced", Name: "Advanced", Cost: 10, Prereqs: []string{"missing"}}

	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	faction.ResearchQueue = []world.ResearchQueueEntry{{TechId: "advanced"}}
	gs.Factions.Set(faction.Id, faction)

	advanceQueue(gs, db, faction)
	assert.Equal(t, "", faction.ActiveResearchId)
	assert.Empty(t, faction.ResearchQueue)
}
