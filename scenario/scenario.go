// Package scenario builds a starting GameState: either the fixed
// single-system scenario or a procedurally scattered one.
package scenario

import (
	"fmt"
	"sort"

	"github.com/nebula4x/nebula4x/archetype"
	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/planners"
	"github.com/nebula4x/nebula4x/rng"
	"github.com/nebula4x/nebula4x/world"
)

// HomeSystemRadiusMkm places the home colony's body this far from its
// star in the fixed scenario.
const HomeSystemRadiusMkm = 150.0

// NewGame builds the fixed single-system starting scenario: one home
// system with a star and a habitable planet, one Player faction, one
// colony, and whatever starting ships db's first Combatant/Freighter
// designs describe.
func NewGame(db *content.DB) *world.GameState {
	gs := world.New()

	faction := world.NewFaction(gs.NewId(), "Terran Federation", world.ControlPlayer)
	gs.Factions.Set(faction.Id, faction)

	sys := &world.StarSystem{Id: gs.NewId(), Name: "Sol"}
	gs.Systems.Set(sys.Id, sys)
	faction.Discover(sys.Id)

	star := &world.Body{Id: gs.NewId(), SystemId: sys.Id, Name: "Sol", Type: world.BodyStar}
	gs.Bodies.Set(star.Id, star)
	sys.BodyIds = append(sys.BodyIds, star.Id)

	homeArchetype := archetype.Balanced()

	home := &world.Body{
		Id: gs.NewId(), SystemId: sys.Id, Name: "Earth", Type: world.BodyPlanet,
		RadiusMkm: HomeSystemRadiusMkm, PeriodDays: 365.25,
		SurfaceTempK: homeArchetype.HomeHabitability.TempCenterK, AtmosphereAtm: homeArchetype.HomeHabitability.AtmCenterAtm,
		TargetTempK: homeArchetype.HomeHabitability.TempCenterK, TargetAtmAtm: homeArchetype.HomeHabitability.AtmCenterAtm,
	}
	home.PositionMkm = home.PositionAt(0)
	gs.Bodies.Set(home.Id, home)
	sys.BodyIds = append(sys.BodyIds, home.Id)

	colony := world.NewColony(gs.NewId(), faction.Id, home.Id, "Earth Colony")
	colony.PopulationMillions = homeArchetype.StartingPopulationMillions
	gs.Colonies.Set(colony.Id, colony)

	spawnStartingFleet(gs, db, faction, sys, home, homeArchetype)

	gs.Regions[sys.Id] = ptrRegion(world.DefaultRegion("Core"))
	sys.RegionId = sys.Id

	return gs
}

// NewGameRandom scatters nSystems systems at seeded positions, links them
// with a spanning chain of jump points so every system is reachable from
// the first, assigns one starting colony to a Player faction and, when there
// is more than one system, one to a single AI_Explorer faction, then
// partitions the galaxy into regions.
func NewGameRandom(db *content.DB, seed uint64, nSystems int) *world.GameState {
	if nSystems < 1 {
		nSystems = 1
	}
	gs := world.New()
	source := rng.New(seed)

	systems := make([]*world.StarSystem, 0, nSystems)
	for i := 0; i < nSystems; i++ {
		sys := &world.StarSystem{
			Id:   gs.NewId(),
			Name: fmt.Sprintf("System-%02d", i+1),
			GalaxyPos: geom.Vec{
				X: source.Float64Range(-500, 500),
				Y: source.Float64Range(-500, 500),
			},
		}
		gs.Systems.Set(sys.Id, sys)
		systems = append(systems, sys)

		star := &world.Body{Id: gs.NewId(), SystemId: sys.Id, Name: sys.Name + " Star", Type: world.BodyStar}
		gs.Bodies.Set(star.Id, star)
		sys.BodyIds = append(sys.BodyIds, star.Id)
	}

	// Spanning chain: system i links to system i+1, guaranteeing every
	// system is reachable from the first without a full mesh of jumps.
	for i := 0; i+1 < len(systems); i++ {
		a, b := systems[i], systems[i+1]
		jpA := &world.JumpPoint{Id: gs.NewId(), SystemId: a.Id, PositionMkm: geom.Vec{X: 100, Y: 0}}
		jpB := &world.JumpPoint{Id: gs.NewId(), SystemId: b.Id, PositionMkm: geom.Vec{X: -100, Y: 0}}
		jpA.LinkedJumpId = jpB.Id
		jpB.LinkedJumpId = jpA.Id
		gs.JumpPoints.Set(jpA.Id, jpA)
		gs.JumpPoints.Set(jpB.Id, jpB)
		a.JumpPointIds = append(a.JumpPointIds, jpA.Id)
		b.JumpPointIds = append(b.JumpPointIds, jpB.Id)
	}

	playerArchetype := archetype.Balanced()
	player := world.NewFaction(gs.NewId(), "Terran Federation", world.ControlPlayer)
	gs.Factions.Set(player.Id, player)
	player.Discover(systems[0].Id)
	spawnHomeColony(gs, db, player, systems[0], "Homeworld", playerArchetype)
	spawnStartingFleet(gs, db, player, systems[0], nil, playerArchetype)

	if len(systems) > 1 {
		aiArchetype := archetype.RandomWithSeed(seed ^ 0xA1)
		ai := world.NewFaction(gs.NewId(), "Independent Colonies", world.ControlAIExplorer)
		gs.Factions.Set(ai.Id, ai)
		last := systems[len(systems)-1]
		ai.Discover(last.Id)
		spawnHomeColony(gs, db, ai, last, "Outpost", aiArchetype)
		spawnStartingFleet(gs, db, ai, last, nil, aiArchetype)
	}

	k := len(systems)/4 + 1
	regions := planners.PartitionRegions(gs, k, seed, "Region")
	for id, region := range regions {
		gs.Regions[id] = region
	}

	return gs
}

func spawnHomeColony(gs *world.GameState, db *content.DB, faction *world.Faction, sys *world.StarSystem, name string, arch archetype.Archetype) {
	home := &world.Body{
		Id: gs.NewId(), SystemId: sys.Id, Name: name, Type: world.BodyPlanet,
		RadiusMkm: HomeSystemRadiusMkm, SurfaceTempK: arch.HomeHabitability.TempCenterK, AtmosphereAtm: arch.HomeHabitability.AtmCenterAtm,
		TargetTempK: arch.HomeHabitability.TempCenterK, TargetAtmAtm: arch.HomeHabitability.AtmCenterAtm,
	}
	home.PositionMkm = home.PositionAt(0)
	gs.Bodies.Set(home.Id, home)
	sys.BodyIds = append(sys.BodyIds, home.Id)

	colony := world.NewColony(gs.NewId(), faction.Id, home.Id, name+" Colony")
	colony.PopulationMillions = arch.StartingPopulationMillions
	gs.Colonies.Set(colony.Id, colony)
}

func spawnStartingFleet(gs *world.GameState, db *content.DB, faction *world.Faction, sys *world.StarSystem, at *world.Body, arch archetype.Archetype) {
	pos := geom.Vec{}
	if at != nil {
		pos = at.PositionMkm
	}

	spawnShips(gs, db, faction, sys, pos, content.RoleCombatant, arch.StartingCombatantCount, "Warship")
	spawnShips(gs, db, faction, sys, pos, content.RoleFreighter, arch.StartingFreighterCount, "Freighter")
}

func spawnShips(gs *world.GameState, db *content.DB, faction *world.Faction, sys *world.StarSystem, pos geom.Vec, role content.DesignRole, count int, namePrefix string) {
	if count <= 0 {
		return
	}
	designId := firstDesignWithRole(db, role)
	if designId == "" {
		return
	}
	for i := 0; i < count; i++ {
		ship := &world.Ship{
			Id: gs.NewId(), FactionId: faction.Id, SystemId: sys.Id, PositionMkm: pos, DesignId: designId,
			Name: fmt.Sprintf("%s %d", namePrefix, i+1),
		}
		ship.RecomputeCache(db)
		ship.Hp = ship.Cache.MaxHp
		ship.Shields = ship.Cache.MaxShields
		ship.Fuel = ship.Cache.FuelCapacity
		gs.Ships.Set(ship.Id, ship)
		sys.AddShip(ship.Id)
	}
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

func ptrRegion(r world.Region) *world.Region { return &r }
