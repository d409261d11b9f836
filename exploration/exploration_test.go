package exploration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/world"
)

func TestInvestigationResolvesWhenProgressMet(t *testing.T) {
	gs := world.New()
	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)

	anomaly := &world.Anomaly{Id: gs.NewId(), SystemId: sys.Id, InvestigationRequired: 5}
	gs.Anomalies.Set(anomaly.Id, anomaly)

	ship := &world.Ship{Id: gs.NewId(), FactionId: faction.Id, SystemId: sys.Id, PositionMkm: geom.Vec{}}
	ship.Cache.SensorRangeMkm = 1
	gs.Ships.Set(ship.Id, ship)

	Tick(gs, 1, 24)
	assert.False(t, anomaly.Resolved)

	for i := 0; i < 10; i++ {
		Tick(gs, 1, 24)
	}
	assert.True(t, anomaly.Resolved)
	assert.Equal(t, faction.Id, anomaly.ResolvedByFactionId)
}

func TestWreckDecaysAndIsRemoved(t *testing.T) {
	gs := world.New()
	wreck := &world.Wreck{Id: gs.NewId(), Minerals: map[string]float64{"Duranium": 1.0}}
	gs.Wrecks.Set(wreck.Id, wreck)

	Tick(gs, 2, 24)
	_, ok := gs.Wrecks.Get(wreck.Id)
	assert.False(t, ok)
}
