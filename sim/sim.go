// Package sim owns the live Simulation: ContentDB + GameState bound
// together, driving the fixed-order tick pipeline and exposing the
// order-issuance and query surface a CLI or UI drives the engine through.
package sim

import (
	"fmt"
	"os"
	"sort"

	"github.com/nebula4x/nebula4x/combat"
	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/contracts"
	"github.com/nebula4x/nebula4x/diplomacy"
	"github.com/nebula4x/nebula4x/economy"
	"github.com/nebula4x/nebula4x/exploration"
	"github.com/nebula4x/nebula4x/fsio"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/orders"
	"github.com/nebula4x/nebula4x/pirates"
	"github.com/nebula4x/nebula4x/research"
	"github.com/nebula4x/nebula4x/scenario"
	"github.com/nebula4x/nebula4x/validate"
	"github.com/nebula4x/nebula4x/victory"
	"github.com/nebula4x/nebula4x/world"
)

// Config holds the options a caller sets once at startup: the AI seed and
// the autosave directory/rotation policy.
type Config struct {
	AISeed uint64

	// AutosaveDir is the directory autosave snapshots are written to and
	// scanned for pruning; an empty value disables autosave entirely.
	AutosaveDir string
	// AutosavePrefix is prepended to every autosave filename, letting
	// multiple runs share a directory without colliding.
	AutosavePrefix string
	// AutosaveIntervalHours is how many simulated hours must elapse
	// between autosave writes; zero disables autosave.
	AutosaveIntervalHours float64
	// AutosaveKeepFiles is how many of the newest autosave snapshots to
	// retain; older ones are pruned after each write.
	AutosaveKeepFiles int
}

// Simulation owns one running game: its content rules, its mutable world,
// and the seed driving every AI/exploration RNG draw this run.
type Simulation struct {
	DB     *content.DB
	GS     *world.GameState
	Config Config

	// autosaveHoursAccum tracks simulated hours elapsed since the last
	// autosave write; run-local bookkeeping, not persisted with GameState.
	autosaveHoursAccum float64
}

// New wraps an already-built GameState with db and cfg.
func New(db *content.DB, gs *world.GameState, cfg Config) *Simulation {
	return &Simulation{DB: db, GS: gs, Config: cfg}
}

// NewGame starts the fixed single-system scenario.
func NewGame(db *content.DB, cfg Config) *Simulation {
	return New(db, scenario.NewGame(db), cfg)
}

// NewGameRandom starts a procedurally scattered scenario with nSystems
// systems, seeded by cfg.AISeed.
func NewGameRandom(db *content.DB, nSystems int, cfg Config) *Simulation {
	return New(db, scenario.NewGameRandom(db, cfg.AISeed, nSystems), cfg)
}

// LoadGame reads and deserializes a save file from path.
func LoadGame(path string, db *content.DB, cfg Config) (*Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: load game: %w", err)
	}
	gs, err := world.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("sim: load game: %w", err)
	}
	return New(db, gs, cfg), nil
}

// SaveGame atomically writes the simulation's current state to path.
func (s *Simulation) SaveGame(path string) error {
	data, err := world.Serialize(s.GS)
	if err != nil {
		return fmt.Errorf("sim: save game: %w", err)
	}
	return fsio.WriteFileAtomic(path, data, 0o644)
}

// ReloadContentDB swaps in db and recomputes every ship's cached stats
// against it, the one place a content reload touches live entities.
func (s *Simulation) ReloadContentDB(db *content.DB) {
	s.DB = db
	for _, shipId := range s.GS.Ships.SortedIds() {
		s.GS.Ships.MustGet(shipId).RecomputeCache(db)
	}
}

// AdvanceHours runs the full fixed-order tick pipeline for n hours, one
// hour at a time so every subsystem sees a consistent sub-day step.
func (s *Simulation) AdvanceHours(n int) {
	for i := 0; i < n; i++ {
		s.tickOneHour()
	}
}

// AdvanceDays runs AdvanceHours for n*24 hours.
func (s *Simulation) AdvanceDays(n int) {
	s.AdvanceHours(n * hoursPerDay)
}

const hoursPerDay = 24

func (s *Simulation) tickOneHour() {
	gs, db := s.GS, s.DB
	const hours = 1.0

	updateOrbits(gs)
	updateContacts(gs)
	orders.Execute(gs, db, hours)
	combat.Tick(gs, db, hours)
	economy.Tick(gs, db, hours)
	research.Tick(gs, db, hours)
	exploration.Tick(gs, s.Config.AISeed, hours)
	pirates.Tick(gs, db, s.Config.AISeed, hours)
	contracts.Tick(gs, gs.Date.Days, hours)
	diplomacy.Tick(gs, hours)
	checkVictory(gs)

	gs.Date = gs.Date.AddHours(1)

	s.autosaveTick(hours)
}

// updateOrbits refreshes every body's cached position for the new tick's
// fractional day, the first step of every tick per the pipeline order.
func updateOrbits(gs *world.GameState) {
	t := gs.Date.AsFractionalDays()
	for _, bodyId := range gs.Bodies.SortedIds() {
		body := gs.Bodies.MustGet(bodyId)
		body.PositionMkm = body.PositionAt(t)
	}
}

// updateContacts refreshes each faction's fog-of-war ship_contacts for
// every foreign ship currently in a system the faction has a ship or
// colony in (sensor range is not separately metered; presence in-system is
// the detection test).
func updateContacts(gs *world.GameState) {
	for _, factionId := range gs.Factions.SortedIds() {
		faction := gs.Factions.MustGet(factionId)
		presentSystems := map[ids.Id]bool{}
		for _, shipId := range gs.Ships.SortedIds() {
			ship := gs.Ships.MustGet(shipId)
			if ship.FactionId == factionId {
				presentSystems[ship.SystemId] = true
			}
		}
		for _, colonyId := range gs.Colonies.SortedIds() {
			colony := gs.Colonies.MustGet(colonyId)
			if colony.FactionId != factionId {
				continue
			}
			if body, ok := gs.Bodies.Get(colony.BodyId); ok {
				presentSystems[body.SystemId] = true
			}
		}

		for _, shipId := range gs.Ships.SortedIds() {
			ship := gs.Ships.MustGet(shipId)
			if ship.FactionId == factionId || !presentSystems[ship.SystemId] {
				continue
			}
			faction.ShipContacts[ship.Id] = &world.ShipContact{
				ShipId:       ship.Id,
				SystemId:     ship.SystemId,
				PositionMkm:  ship.PositionMkm,
				LastSeenDays: gs.Date.AsFractionalDays(),
			}
		}
	}
}

func checkVictory(gs *world.GameState) {
	if victory.Check(gs, gs.VictoryRules) && !gs.VictoryState.TerminalEventEmitted {
		gs.VictoryState.TerminalEventEmitted = true
		gs.EmitFor(world.LevelInfo, "victory", "the game has ended", gs.VictoryState.WinnerFactionId, 0, 0, 0)
	}
}

// Validate runs the state validator against the live GameState.
func (s *Simulation) Validate() []string {
	return validate.Validate(s.GS, s.DB)
}

// FixState runs the idempotent state repair pass.
func (s *Simulation) FixState() {
	validate.Fix(s.GS)
}

// IssueMoveToPoint replaces shipId's order queue with a single move to
// target, returning false if the ship does not exist.
func (s *Simulation) IssueMoveToPoint(shipId ids.Id, target geom.Vec) bool {
	ship, ok := s.GS.Ships.Get(shipId)
	if !ok {
		return false
	}
	so := s.GS.OrdersFor(ship.Id)
	so.Queue = world.OrderQueue{world.MoveToPointOrder{Target: target}}
	return true
}

// IssueMoveToBody replaces shipId's order queue with a single move to
// bodyId.
func (s *Simulation) IssueMoveToBody(shipId, bodyId ids.Id) bool {
	if _, ok := s.GS.Ships.Get(shipId); !ok {
		return false
	}
	if _, ok := s.GS.Bodies.Get(bodyId); !ok {
		return false
	}
	so := s.GS.OrdersFor(shipId)
	so.Queue = world.OrderQueue{world.MoveToBodyOrder{BodyId: bodyId}}
	return true
}

// IssueMineBody queues a mining order against bodyId.
func (s *Simulation) IssueMineBody(shipId, bodyId ids.Id, mineral string, stopWhenFull bool) bool {
	if _, ok := s.GS.Ships.Get(shipId); !ok {
		return false
	}
	if _, ok := s.GS.Bodies.Get(bodyId); !ok {
		return false
	}
	so := s.GS.OrdersFor(shipId)
	so.Queue = append(so.Queue, world.MineBodyOrder{BodyId: bodyId, Mineral: mineral, StopWhenCargoFull: stopWhenFull})
	return true
}

// IssueUnloadMineral queues a cargo-to-colony transfer order.
func (s *Simulation) IssueUnloadMineral(shipId, colonyId ids.Id, mineral string, tons float64) bool {
	if _, ok := s.GS.Ships.Get(shipId); !ok {
		return false
	}
	if _, ok := s.GS.Colonies.Get(colonyId); !ok {
		return false
	}
	so := s.GS.OrdersFor(shipId)
	so.Queue = append(so.Queue, world.UnloadMineralOrder{ColonyId: colonyId, Mineral: mineral, Tons: tons})
	return true
}

// AssignContractToShip marks an Offered contract Accepted and assigned to
// shipId's faction.
func (s *Simulation) AssignContractToShip(contractId, shipId ids.Id) bool {
	contract, ok := s.GS.Contracts.Get(contractId)
	if !ok || contract.Status != world.ContractOffered {
		return false
	}
	ship, ok := s.GS.Ships.Get(shipId)
	if !ok {
		return false
	}
	contract.Status = world.ContractAccepted
	contract.AssigneeFactionId = ship.FactionId
	contract.AssignedShipId = shipId
	return true
}

// IsSystemDiscoveredByFaction reports whether factionId has discovered
// systemId.
func (s *Simulation) IsSystemDiscoveredByFaction(factionId, systemId ids.Id) bool {
	faction, ok := s.GS.Factions.Get(factionId)
	if !ok {
		return false
	}
	return faction.HasDiscovered(systemId)
}

// DetectedHostileShipsInSystem returns every ship contact factionId holds
// for systemId.
func (s *Simulation) DetectedHostileShipsInSystem(factionId, systemId ids.Id) []*world.ShipContact {
	faction, ok := s.GS.Factions.Get(factionId)
	if !ok {
		return nil
	}
	var out []*world.ShipContact
	for _, shipId := range sortedContactIds(faction) {
		contact := faction.ShipContacts[shipId]
		if contact.SystemId == systemId {
			out = append(out, contact)
		}
	}
	return out
}

func sortedContactIds(f *world.Faction) []ids.Id {
	out := make([]ids.Id, 0, len(f.ShipContacts))
	for id := range f.ShipContacts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FleetForShip returns the fleet containing shipId, if any.
func (s *Simulation) FleetForShip(shipId ids.Id) (*world.Fleet, bool) {
	return s.GS.FleetForShip(shipId)
}

// ComputeScoreboard returns the current victory scoreboard by faction id.
func (s *Simulation) ComputeScoreboard() map[ids.Id]float64 {
	return victory.ComputeScoreboard(s.GS, s.GS.VictoryRules)
}
