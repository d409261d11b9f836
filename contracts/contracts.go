// Package contracts advances the contract board each tick: expiring
// stale offers, generating new ones from unresolved world state, and
// resolving accepted contracts whose completion predicate fires.
package contracts

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// MaxOffersPerTick bounds how many new contracts a single tick may post,
// keeping the board from flooding when many anomalies/wrecks appear at
// once.
const MaxOffersPerTick = 3

// ArrivalRangeMkm is how close an assigned ship must be to a target
// position for a contract's completion predicate to fire.
const ArrivalRangeMkm = 0.5

// ExpiryDays is how many days an Offered contract stays on the board.
const ExpiryDays = 30

// RewardInvestigate and friends are the default reward sizes for
// generated contracts.
const (
	RewardInvestigate = 20.0
	RewardSalvage     = 10.0
	RewardSurvey      = 15.0
	RewardEscort      = 25.0
)

// Tick advances the contract board by hours of simulated time, using
// currentDay as the day stamp for new offers/expirations.
func Tick(gs *world.GameState, currentDay int64, hours float64) {
	expireOffers(gs, currentDay)
	generateOffers(gs, currentDay)
	resolveAccepted(gs, currentDay)
}

func expireOffers(gs *world.GameState, currentDay int64) {
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.Status == world.ContractOffered && currentDay >= c.ExpiresDay {
			c.Status = world.ContractExpired
		}
	}
}

func generateOffers(gs *world.GameState, currentDay int64) {
	posted := 0

	for _, aid := range gs.Anomalies.SortedIds() {
		if posted >= MaxOffersPerTick {
			return
		}
		a := gs.Anomalies.MustGet(aid)
		if a.Resolved || hasOpenContractFor(gs, a.Id) {
			continue
		}
		postContract(gs, world.ContractInvestigateAnomaly, a.Id, 0, RewardInvestigate, currentDay)
		posted++
	}

	for _, wid := range gs.Wrecks.SortedIds() {
		if posted >= MaxOffersPerTick {
			return
		}
		w := gs.Wrecks.MustGet(wid)
		if w.Remaining() <= 0 || hasOpenContractFor(gs, w.Id) {
			continue
		}
		postContract(gs, world.ContractSalvageWreck, w.Id, 0, RewardSalvage, currentDay)
		posted++
	}

	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		for _, jpId := range sys.JumpPointIds {
			if posted >= MaxOffersPerTick {
				return
			}
			jp, ok := gs.JumpPoints.Get(jpId)
			if !ok || len(jp.SurveyedBy) > 0 || hasOpenContractFor(gs, jpId) {
				continue
			}
			postContract(gs, world.ContractSurveyJumpPoint, jpId, 0, RewardSurvey, currentDay)
			posted++
		}
	}

	posted += generateEscortOffers(gs, currentDay, posted)
}

// generateEscortOffers posts EscortConvoy contracts for any live ship, of
// whatever role, whose head order is a TravelViaJump and which sits near
// that jump point when it leads into a region with pirate_risk above 0.25,
// so other factions can pick up protection work. TargetId is the convoy
// ship, TargetId2 its destination system.
func generateEscortOffers(gs *world.GameState, currentDay int64, alreadyPosted int) int {
	posted := 0
	for _, shipId := range gs.Ships.SortedIds() {
		if alreadyPosted+posted >= MaxOffersPerTick {
			break
		}
		ship := gs.Ships.MustGet(shipId)
		if !ship.Alive() || hasOpenContractFor(gs, shipId) {
			continue
		}
		so, ok := gs.ShipOrders[shipId]
		if !ok || len(so.Queue) == 0 {
			continue
		}
		jumpOrder, ok := so.Queue[0].(world.TravelViaJumpOrder)
		if !ok {
			continue
		}
		jp, ok := gs.JumpPoints.Get(jumpOrder.JumpId)
		if !ok || !geom.WithinEps(ship.PositionMkm, jp.PositionMkm, ArrivalRangeMkm*10) {
			continue
		}
		linked, ok := gs.JumpPoints.Get(jp.LinkedJumpId)
		if !ok {
			continue
		}
		destSys, ok := gs.Systems.Get(linked.SystemId)
		if !ok {
			continue
		}
		region, ok := gs.Regions[destSys.RegionId]
		if !ok || region.PirateRisk <= 0.25 {
			continue
		}

		c := &world.Contract{
			Id:                   gs.NewId(),
			Kind:                 world.ContractEscortConvoy,
			Status:               world.ContractOffered,
			IssuerFactionId:      ship.FactionId,
			TargetId:             shipId,
			TargetId2:            destSys.Id,
			RewardResearchPoints: RewardEscort,
			OfferedDay:           currentDay,
			ExpiresDay:           currentDay + ExpiryDays,
		}
		gs.Contracts.Set(c.Id, c)
		posted++
	}
	return posted
}

func hasOpenContractFor(gs *world.GameState, targetId ids.Id) bool {
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.TargetId == targetId && (c.Status == world.ContractOffered || c.Status == world.ContractAccepted) {
			return true
		}
	}
	return false
}

func postContract(gs *world.GameState, kind world.ContractKind, targetId, targetId2 ids.Id, reward float64, day int64) {
	c := &world.Contract{
		Id:                   gs.NewId(),
		Kind:                 kind,
		Status:               world.ContractOffered,
		TargetId:             targetId,
		TargetId2:            targetId2,
		RewardResearchPoints: reward,
		OfferedDay:           day,
		ExpiresDay:           day + ExpiryDays,
	}
	gs.Contracts.Set(c.Id, c)
}

func resolveAccepted(gs *world.GameState, currentDay int64) {
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.Status != world.ContractAccepted {
			continue
		}
		if !predicateFires(gs, c) {
			continue
		}

		c.Status = world.ContractCompleted
		c.ResolvedDay = currentDay
		if faction, ok := gs.Factions.Get(c.AssigneeFactionId); ok {
			faction.ResearchPoints += c.RewardResearchPoints
		}
		gs.EmitFor(world.LevelInfo, "contracts", "contract completed", c.AssigneeFactionId, c.AssignedShipId, 0, 0)
	}
}

func predicateFires(gs *world.GameState, c *world.Contract) bool {
	ship, ok := gs.Ships.Get(c.AssignedShipId)
	if !ok {
		return false
	}

	switch c.Kind {
	case world.ContractInvestigateAnomaly:
		a, ok := gs.Anomalies.Get(c.TargetId)
		return ok && a.Resolved
	case world.ContractSalvageWreck:
		_, ok := gs.Wrecks.Get(c.TargetId)
		return !ok
	case world.ContractSurveyJumpPoint:
		jp, ok := gs.JumpPoints.Get(c.TargetId)
		return ok && jp.SurveyedBy[c.AssigneeFactionId]
	case world.ContractEscortConvoy:
		return ship.SystemId == c.TargetId2
	}
	return false
}
