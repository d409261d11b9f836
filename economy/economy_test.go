package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/world"
)

func TestMaterialsProcessingOneDay(t *testing.T) {
	gs := world.New()
	db := content.New()
	db.Installations["metal_smelter"] = &content.InstallationDef{
		Id:             "metal_smelter",
		ConsumesPerDay: map[string]float64{"Duranium": 100, "Tritanium": 50},
		ProducesPerDay: map[string]float64{"Metals": 100},
	}
	db.Installations["mineral_processor"] = &content.InstallationDef{
		Id:             "mineral_processor",
		ConsumesPerDay: map[string]float64{"Boronide": 50, "Corundium": 50, "Gallicite": 50, "Uridium": 50, "Mercassium": 50},
		ProducesPerDay: map[string]float64{"Minerals": 100},
	}

	colony := world.NewColony(gs.NewId(), gs.NewId(), gs.NewId(), "Sol")
	colony.Installations["metal_smelter"] = 1
	colony.Installations["mineral_processor"] = 1
	colony.Stockpile = map[string]float64{
		"Duranium": 100, "Tritanium": 50, "Boronide": 50,
		"Corundium": 50, "Gallicite": 50, "Uridium": 50, "Mercassium": 50,
	}
	gs.Colonies.Set(colony.Id, colony)

	Tick(gs, db, 24)

	assert.Equal(t, 100.0, colony.Stockpile["Metals"])
	assert.Equal(t, 100.0, colony.Stockpile["Minerals"])

	colony.Stockpile["Tritanium"] = 0
	colony.Stockpile["Metals"] = 0
	Tick(gs, db, 24)
	assert.Equal(t, 0.0, colony.Stockpile["Metals"])
}
