package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

func newTestShip(gs *world.GameState, sysId ids.Id, pos geom.Vec) *world.Ship {
	ship := &world.Ship{
		Id:          gs.NewId(),
		SystemId:    sysId,
		PositionMkm: pos,
		Cache: content.DesignStats{
			SpeedKmS:         10,
			FuelCapacity:     1000,
			CargoTons:        500,
			MiningTonsPerDay: 50,
		},
		Fuel: 1000,
	}
	gs.Ships.Set(ship.Id, ship)
	return ship
}

func TestMoveToPointArrivesAndStops(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	ship := newTestShip(gs, sys.Id, geom.Vec{})
	target := geom.Vec{X: 10}
	gs.OrdersFor(ship.Id).Queue = world.OrderQueue{world.MoveToPointOrder{Target: target}}

	// 10 km/s * 86.4 = 864 mkm/day, far more than 10mkm in a day: arrives in
	// one 24h tick.
	Execute(gs, content.New(), 24)

	assert.True(t, geom.WithinEps(ship.PositionMkm, target, ArrivalEpsMkm))
	assert.Empty(t, gs.OrdersFor(ship.Id).Queue)
}

func TestMoveToPointConsumesFuelAndPartialSteps(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	ship := newTestShip(gs, sys.Id, geom.Vec{})
	ship.Cache.SpeedKmS = 1 // 86.4 mkm/day
	ship.Cache.FuelUsePerMkm = 1
	target := geom.Vec{X: 1000}
	gs.OrdersFor(ship.Id).Queue = world.OrderQueue{world.MoveToPointOrder{Target: target}}

	Execute(gs, content.New(), 24)

	assert.InDelta(t, 86.4, ship.PositionMkm.X, 1e-6)
	assert.InDelta(t, 1000-86.4, ship.Fuel, 1e-6)
	assert.Len(t, gs.OrdersFor(ship.Id).Queue, 1, "order stays queued until arrival")
}

func TestMineBodyAccumulatesCargoAndStopsWhenFull(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	body := &world.Body{
		Id:              gs.NewId(),
		SystemId:        sys.Id,
		MineralDeposits: map[string]float64{"Duranium": 10000},
	}
	gs.Bodies.Set(body.Id, body)

	ship := newTestShip(gs, sys.Id, body.PositionMkm)
	ship.Cache.CargoTons = 100
	ship.Cache.MiningTonsPerDay = 50

	gs.OrdersFor(ship.Id).Queue = world.OrderQueue{
		world.MineBodyOrder{BodyId: body.Id, Mineral: "Duranium", StopWhenCargoFull: true},
	}

	Execute(gs, content.New(), 24)
	assert.InDelta(t, 50.0, ship.CargoTons["Duranium"], 1e-6)
	assert.Len(t, gs.OrdersFor(ship.Id).Queue, 1)

	Execute(gs, content.New(), 24)
	assert.InDelta(t, 100.0, ship.CargoTons["Duranium"], 1e-6)
	assert.Empty(t, gs.OrdersFor(ship.Id).Queue, "order pops once cargo hold is full")
}

func TestUnloadMineralTransfersToColonyStockpile(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	body := &world.Body{Id: gs.NewId(), SystemId: sys.Id}
	gs.Bodies.Set(body.Id, body)
	colony := world.NewColony(gs.NewId(), 0, body.Id, "Test Colony")
	gs.Colonies.Set(colony.Id, colony)

	ship := newTestShip(gs, sys.Id, body.PositionMkm)
	ship.AddCargo("Duranium", 30)

	gs.OrdersFor(ship.Id).Queue = world.OrderQueue{
		world.UnloadMineralOrder{ColonyId: colony.Id, Mineral: "Duranium", Tons: 30},
	}

	Execute(gs, content.New(), 24)

	assert.InDelta(t, 30.0, colony.Stock("Duranium"), 1e-6)
	assert.InDelta(t, 0.0, ship.CargoTons["Duranium"], 1e-6)
	assert.Empty(t, gs.OrdersFor(ship.Id).Queue)
}

func TestWaitDaysOrderCompletesAfterDuration(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)
	ship := newTestShip(gs, sys.Id, geom.Vec{})

	gs.OrdersFor(ship.Id).Queue = world.OrderQueue{world.WaitDaysOrder{DurationDays: 2}}

	Execute(gs, content.New(), 24)
	assert.Len(t, gs.OrdersFor(ship.Id).Queue, 1)

	Execute(gs, content.New(), 24)
	assert.Empty(t, gs.OrdersFor(ship.Id).Queue)
}
