// Package pirates drives the AI_Pirate, AI_Explorer and AI_Empire control
// modes: pirate raider spawns scaled by regional pirate_risk vs
// pirate_suppression, and the logistics planners run on behalf of
// non-player factions.
package pirates

import (
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/planners"
	"github.com/nebula4x/nebula4x/rng"
	"github.com/nebula4x/nebula4x/world"
)

// SpawnChancePerDay is the baseline daily probability of a raider spawning
// in a region with pirate_risk 1.0 and no suppression.
const SpawnChancePerDay = 0.05

// RaiderName is the display name given to every spawned pirate raider.
const RaiderName = "Raider"

// FleetPowerScale converts a patrolling fleet's summed weapon/missile
// damage into suppression-target units: a fleet rated at FleetPowerScale
// worth of damage fully offsets one full point of pirate_risk.
const FleetPowerScale = 100.0

// DefaultSuppressionAdjustFractionPerDay is the fraction of the gap to
// target closed per day in a region with no active patrol mission, so
// suppression built up by a patrol decays back toward baseline once the
// patrol leaves rather than persisting forever.
const DefaultSuppressionAdjustFractionPerDay = 1.0

// Tick runs the given hours of AI behavior: pirate spawns/raids for AI_Pirate
// factions, automation planners for AI_Explorer/AI_Empire factions, and
// the regional pirate_suppression drift driven by patrol fleets.
func Tick(gs *world.GameState, db *content.DB, seed uint64, hours float64) {
	days := hours / 24.0
	for _, factionId := range gs.Factions.SortedIds() {
		faction := gs.Factions.MustGet(factionId)
		switch faction.Control {
		case world.ControlAIPirate:
			runPirateFaction(gs, db, faction, seed, days)
		case world.ControlAIExplorer, world.ControlAIEmpire:
			runAutomatedFaction(gs, db, faction)
		}
	}
	driftSuppression(gs, days)
}

// driftSuppression moves every region's pirate_suppression toward
// fleet_power/FleetPowerScale − pirate_risk, at the adjust fraction of
// whatever patrol mission currently covers that region (or the default
// decay fraction if none does), per the suppression rule.
func driftSuppression(gs *world.GameState, days float64) {
	if days <= 0 {
		return
	}

	power := map[ids.Id]float64{}      // regionId -> summed patrol fleet power
	adjustFrac := map[ids.Id]float64{} // regionId -> max active patrol adjust fraction

	for _, fleetId := range gs.Fleets.SortedIds() {
		fleet := gs.Fleets.MustGet(fleetId)
		patrol, ok := fleet.Mission.(world.PatrolMission)
		if !ok {
			continue
		}
		sys, ok := gs.Systems.Get(patrol.SystemId)
		if !ok {
			continue
		}
		var fleetPower float64
		for shipId := range fleet.ShipIds {
			ship, ok := gs.Ships.Get(shipId)
			if !ok || !ship.Alive() || ship.SystemId != patrol.SystemId {
				continue
			}
			fleetPower += ship.Cache.WeaponDamage + ship.Cache.MissileDamage*float64(ship.Cache.MissileRacks)
		}
		if fleetPower <= 0 {
			continue
		}
		power[sys.RegionId] += fleetPower
		if patrol.SuppressionAdjustFractionPerDay > adjustFrac[sys.RegionId] {
			adjustFrac[sys.RegionId] = patrol.SuppressionAdjustFractionPerDay
		}
	}

	regionIds := make([]ids.Id, 0, len(gs.Regions))
	for regionId := range gs.Regions {
		regionIds = append(regionIds, regionId)
	}
	sort.Slice(regionIds, func(i, j int) bool { return regionIds[i] < regionIds[j] })

	for _, regionId := range regionIds {
		region := gs.Regions[regionId]
		frac, patrolled := adjustFrac[regionId]
		if !patrolled {
			frac = DefaultSuppressionAdjustFractionPerDay
		}
		target := clamp01(power[regionId]/FleetPowerScale - region.PirateRisk)
		gap := target - region.PirateSuppression
		region.PirateSuppression = clamp01(region.PirateSuppression + gap*frac*days)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func runPirateFaction(gs *world.GameState, db *content.DB, faction *world.Faction, seed uint64, days float64) {
	designId := firstDesignWithRole(db, content.RoleCombatant)
	if designId == "" {
		return
	}

	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		region := regionFor(gs, sys.RegionId)
		chance := SpawnChancePerDay * region.PirateRisk * (1 - region.PirateSuppression)
		if chance <= 0 {
			continue
		}

		tick := uint64(gs.Date.Days)*24 + uint64(gs.Date.HourOfDay)
		source := rng.New(seed ^ uint64(sysId) ^ uint64(faction.Id)<<32).Derive(tick)
		if !source.Bool(chance * days) {
			continue
		}

		spawnRaider(gs, db, faction, sys, designId)
	}

	for _, shipId := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(shipId)
		if ship.FactionId != faction.Id || !ship.Alive() {
			continue
		}
		so := gs.OrdersFor(ship.Id)
		if len(so.Queue) > 0 {
			continue
		}
		target := nearestHostile(gs, ship)
		if target != ids.Invalid {
			so.Queue = append(so.Queue, world.AttackShipOrder{TargetShipId: target})
		}
	}
}

func spawnRaider(gs *world.GameState, db *content.DB, faction *world.Faction, sys *world.StarSystem, designId string) {
	ship := &world.Ship{
		Id:        gs.NewId(),
		FactionId: faction.Id,
		SystemId:  sys.Id,
		DesignId:  designId,
		Name:      RaiderName,
	}
	ship.RecomputeCache(db)
	ship.Hp = ship.Cache.MaxHp
	ship.Shields = ship.Cache.MaxShields
	ship.Fuel = ship.Cache.FuelCapacity
	gs.Ships.Set(ship.Id, ship)
	sys.AddShip(ship.Id)
	gs.EmitFor(world.LevelWarn, "pirates", "a pirate raider has appeared", faction.Id, ship.Id, 0, sys.Id)
}

func nearestHostile(gs *world.GameState, ship *world.Ship) ids.Id {
	sys, ok := gs.Systems.Get(ship.SystemId)
	if !ok {
		return ids.Invalid
	}
	var best ids.Id
	bestDist := -1.0
	shipIds := append([]ids.Id(nil), sys.ShipIds...)
	sort.Slice(shipIds, func(i, j int) bool { return shipIds[i] < shipIds[j] })
	for _, otherId := range shipIds {
		other, ok := gs.Ships.Get(otherId)
		if !ok || !other.Alive() || other.FactionId == ship.FactionId {
			continue
		}
		dist := ship.PositionMkm.Dist(other.PositionMkm)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = other.Id
		}
	}
	return best
}

func regionFor(gs *world.GameState, regionId ids.Id) *world.Region {
	if region, ok := gs.Regions[regionId]; ok {
		return region
	}
	fallback := world.DefaultRegion("Unknown")
	return &fallback
}

func firstDesignWithRole(db *content.DB, role content.DesignRole) string {
	designIds := make([]string, 0, len(db.Designs))
	for id := range db.Designs {
		designIds = append(designIds, id)
	}
	sort.Strings(designIds)
	for _, id := range designIds {
		if db.Designs[id].Role == role {
			return id
		}
	}
	return ""
}

// runAutomatedFaction applies the full logistics planner suite against a
// non-player faction's automation-flagged ships, mirroring what the player
// UI would trigger on request.
func runAutomatedFaction(gs *world.GameState, db *content.DB, faction *world.Faction) {
	opts := planners.Options{RequireIdle: true, ExcludeFleetShips: false}

	var assignments []planners.Assignment
	assignments = append(assignments, planners.PlanMining(gs, faction.Id, planners.MineOptions{Options: opts})...)
	assignments = append(assignments, planners.PlanFreight(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanFuel(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanSalvage(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanContracts(gs, db, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanSustainment(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanTroopTransport(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanPopulationTransfer(gs, faction.Id, opts)...)
	assignments = append(assignments, planners.PlanTerraforming(gs, faction.Id, opts)...)

	planners.Apply(gs, assignments)
}
