package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

func newTestWorld() (*world.GameState, *content.DB) {
	gs := world.New()
	db := content.New()

	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	return gs, db
}

func spawnShip(gs *world.GameState, sys *world.StarSystem, factionId ids.Id, pos geom.Vec, hp, weaponDamage, weaponRange float64) *world.Ship {
	ship := &world.Ship{
		Id:          gs.NewId(),
		FactionId:   factionId,
		SystemId:    sys.Id,
		PositionMkm: pos,
		Hp:          hp,
	}
	ship.Cache.MaxHp = hp
	ship.Cache.WeaponDamage = weaponDamage
	ship.Cache.WeaponRangeMkm = weaponRange
	gs.Ships.Set(ship.Id, ship)
	sys.AddShip(ship.Id)
	return ship
}

func TestBeamDamageWithinRange(t *testing.T) {
	gs, db := newTestWorld()
	sys := gs.Systems.MustGet(gs.Systems.SortedIds()[0])

	attacker := spawnShip(gs, sys, 1, geom.Vec{}, 100, 10, 5)
	target := spawnShip(gs, sys, 2, geom.Vec{X: 1}, 50, 0, 0)

	Tick(gs, db, 24)

	assert.Less(t, target.Hp, 50.0)
	assert.Equal(t, attacker.Hp, 100.0)
}

func TestBeamOutOfRangeDoesNoDamage(t *testing.T) {
	gs, db := newTestWorld()
	sys := gs.Systems.MustGet(gs.Systems.SortedIds()[0])

	spawnShip(gs, sys, 1, geom.Vec{}, 100, 10, 1)
	target := spawnShip(gs, sys, 2, geom.Vec{X: 50}, 50, 0, 0)

	Tick(gs, db, 24)

	assert.Equal(t, 50.0, target.Hp)
}

func TestDestroyedShipCreatesWreckWhenShipyardCostKnown(t *testing.T) {
	gs, db := newTestWorld()
	sys := gs.Systems.MustGet(gs.Systems.SortedIds()[0])
	db.Installations["shipyard"] = &content.InstallationDef{
		Id:                  "shipyard",
		BuildRateTonsPerDay: 10,
		BuildCostsPerTon:    map[string]float64{"duranium": 1},
	}

	attacker := spawnShip(gs, sys, 1, geom.Vec{}, 100, 1000, 5)
	target := spawnShip(gs, sys, 2, geom.Vec{X: 1}, 1, 0, 0)
	target.Cache.MassTons = 20

	Tick(gs, db, 24)

	require.False(t, gs.Ships.Has(target.Id))
	require.Equal(t, 1, gs.Wrecks.Len())
	for _, w := range gs.Wrecks.Map() {
		assert.Equal(t, 10.0, w.Minerals["duranium"])
	}
	_ = attacker
}
