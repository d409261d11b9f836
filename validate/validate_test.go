package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/world"
)

func TestValidateFlagsUnknownShipSystem(t *testing.T) {
	gs := world.New()
	db := content.New()

	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	ship := &world.Ship{Id: gs.NewId(), FactionId: faction.Id, SystemId: 999999}
	gs.Ships.Set(ship.Id, ship)
	gs.NextId = ship.Id + 1

	issues := Validate(gs, db)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "unknown system_id 999999") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFixIsIdempotent(t *testing.T) {
	gs := world.New()
	db := content.New()

	Fix(gs)
	before := Validate(gs, db)
	Fix(gs)
	after := Validate(gs, db)
	assert.Equal(t, before, after)
}

func TestFixResolvesUnknownShipSystem(t *testing.T) {
	gs := world.New()
	db := content.New()

	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	ship := &world.Ship{Id: gs.NewId(), FactionId: faction.Id, SystemId: 999999}
	gs.Ships.Set(ship.Id, ship)
	gs.NextId = ship.Id + 1

	Fix(gs)
	issues := Validate(gs, db)
	assert.Empty(t, issues)
	assert.False(t, gs.Ships.Has(ship.Id), "ship with an unresolvable system_id should be dropped")

	// Idempotent: a second Fix/Validate pass changes nothing further.
	Fix(gs)
	assert.Equal(t, issues, Validate(gs, db))
}
