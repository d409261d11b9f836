package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

func TestGenerateOffersPostsInvestigateContractForAnomaly(t *testing.T) {
	gs := world.New()
	sys := &world.StarSystem{Id: gs.NewId()}
	gs.Systems.Set(sys.Id, sys)
	anomaly := &world.Anomaly{Id: gs.NewId(), SystemId: sys.Id, InvestigationRequired: 5}
	gs.Anomalies.Set(anomaly.Id, anomaly)

	Tick(gs, 1, 24)

	found := false
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.Kind == world.ContractInvestigateAnomaly && c.TargetId == anomaly.Id {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExpireOffersPastExpiresDay(t *testing.T) {
	gs := world.New()
	c := &world.Contract{Id: gs.NewId(), Kind: world.ContractSalvageWreck, Status: world.ContractOffered, ExpiresDay: 5}
	gs.Contracts.Set(c.Id, c)

	Tick(gs, 10, 24)
	assert.Equal(t, world.ContractExpired, c.Status)
}

func TestResolveAcceptedInvestigateContractOnResolution(t *testing.T) {
	gs := world.New()
	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	anomaly := &world.Anomaly{Id: gs.NewId(), Resolved: true}
	gs.Anomalies.Set(anomaly.Id, anomaly)

	ship := &world.Ship{Id: gs.NewId(), FactionId: faction.Id}
	gs.Ships.Set(ship.Id, ship)

	c := &world.Contract{
		Id: gs.NewId(), Kind: world.ContractInvestigateAnomaly, Status: world.ContractAccepted,
		TargetId: anomaly.Id, AssigneeFactionId: faction.Id, AssignedShipId: ship.Id,
		RewardResearchPoints: 20,
	}
	gs.Contracts.Set(c.Id, c)

	Tick(gs, 1, 24)
	assert.Equal(t, world.ContractCompleted, c.Status)
	assert.Equal(t, 20.0, faction.ResearchPoints)
}

func TestGenerateOffersPostsEscortContractForFreighterEnteringRiskyRegion(t *testing.T) {
	gs := world.New()
	faction := world.NewFaction(gs.NewId(), "Terran", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	fromSys := &world.StarSystem{Id: gs.NewId()}
	toSys := &world.StarSystem{Id: gs.NewId(), RegionId: gs.NewId()}
	gs.Systems.Set(fromSys.Id, fromSys)
	gs.Systems.Set(toSys.Id, toSys)
	gs.Regions[toSys.RegionId] = &world.Region{PirateRisk: 0.9}

	jpA := &world.JumpPoint{Id: gs.NewId(), SystemId: fromSys.Id}
	jpB := &world.JumpPoint{Id: gs.NewId(), SystemId: toSys.Id}
	jpA.LinkedJumpId = jpB.Id
	jpB.LinkedJumpId = jpA.Id
	gs.JumpPoints.Set(jpA.Id, jpA)
	gs.JumpPoints.Set(jpB.Id, jpB)
	fromSys.JumpPointIds = []ids.Id{jpA.Id}

	ship := &world.Ship{Id: gs.NewId(), FactionId: faction.Id, SystemId: fromSys.Id, Hp: 10, PositionMkm: jpA.PositionMkm}
	gs.Ships.Set(ship.Id, ship)
	gs.ShipOrders[ship.Id] = &world.ShipOrders{Queue: []world.Order{world.TravelViaJumpOrder{JumpId: jpA.Id}}}

	Tick(gs, 1, 24)

	found := false
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.Kind == world.ContractEscortConvoy && c.TargetId == ship.Id && c.TargetId2 == toSys.Id {
			found = true
		}
	}
	assert.True(t, found)
}
