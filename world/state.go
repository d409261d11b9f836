package world

import (
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/simdate"
)

// GameState is the entire mutable world: every entity arena plus the
// bookkeeping counters (next_id, next_event_seq) the invariants in the
// design doc are defined over. advance_hours is the only mutation entry
// point into a live GameState; everything else (planners, the validator,
// queries) takes it by read access and returns plans or reports.
type GameState struct {
	SaveVersion int `json:"save_version"`

	Date      simdate.Date `json:"-"`
	NextId      ids.Id `json:"next_id"`
	NextEventSeq int64 `json:"next_event_seq"`

	SelectedSystem ids.Id `json:"selected_system,omitempty"`

	Systems     *Arena[*StarSystem]   `json:"systems"`
	Bodies      *Arena[*Body]         `json:"bodies"`
	JumpPoints  *Arena[*JumpPoint]    `json:"jump_points"`
	Ships       *Arena[*Ship]         `json:"ships"`
	ShipOrders  map[ids.Id]*ShipOrders `json:"ship_orders"`
	Colonies    *Arena[*Colony]       `json:"colonies"`
	Factions    *Arena[*Faction]      `json:"factions"`
	Fleets      *Arena[*Fleet]        `json:"fleets"`
	Anomalies   *Arena[*Anomaly]      `json:"anomalies"`
	Wrecks      *Arena[*Wreck]        `json:"wrecks"`
	Contracts   *Arena[*Contract]     `json:"contracts"`
	Missiles    *Arena[*Missile]      `json:"missiles"`
	Regions     map[ids.Id]*Region    `json:"regions"`

	Events []SimEvent `json:"events"`

	CustomDesigns map[string]bool `json:"custom_designs,omitempty"`

	VictoryRules VictoryRules `json:"victory_rules"`
	VictoryState VictoryState `json:"victory_state"`
}

// New returns an empty, ready-to-populate GameState with every arena
// initialized and next_id/next_event_seq starting at 1.
func New() *GameState {
	return &GameState{
		SaveVersion:  1,
		NextId:       1,
		NextEventSeq: 1,
		Systems:      NewArena[*StarSystem](),
		Bodies:       NewArena[*Body](),
		JumpPoints:   NewArena[*JumpPoint](),
		Ships:        NewArena[*Ship](),
		ShipOrders:   map[ids.Id]*ShipOrders{},
		Colonies:     NewArena[*Colony](),
		Factions:     NewArena[*Faction](),
		Fleets:       NewArena[*Fleet](),
		Anomalies:    NewArena[*Anomaly](),
		Wrecks:       NewArena[*Wreck](),
		Contracts:    NewArena[*Contract](),
		Missiles:     NewArena[*Missile](),
		Regions:      map[ids.Id]*Region{},
		CustomDesigns: map[string]bool{},
		VictoryRules: DefaultVictoryRules(),
	}
}

// NewId allocates and returns the next monotonic Id.
func (gs *GameState) NewId() ids.Id {
	id := gs.NextId
	gs.NextId++
	return id
}

// Emit appends a new SimEvent with an allocated sequence number and the
// current date, then advances next_event_seq.
func (gs *GameState) Emit(level EventLevel, category string, message string) SimEvent {
	ev := SimEvent{
		Seq:      gs.NextEventSeq,
		Day:      gs.Date.Days,
		Level:    level,
		Category: category,
		Message:  message,
	}
	gs.NextEventSeq++
	gs.Events = append(gs.Events, ev)
	return ev
}

// EmitFor is Emit plus entity tags, for events the UI should route to a
// specific faction/ship/colony/system context.
func (gs *GameState) EmitFor(level EventLevel, category, message string, factionId, shipId, colonyId, systemId ids.Id) SimEvent {
	ev := gs.Emit(level, category, message)
	ev.FactionId, ev.ShipId, ev.ColonyId, ev.SystemId = factionId, shipId, colonyId, systemId
	gs.Events[len(gs.Events)-1] = ev
	return ev
}

// OrdersFor returns (creating if absent) the ShipOrders for shipId.
func (gs *GameState) OrdersFor(shipId ids.Id) *ShipOrders {
	so, ok := gs.ShipOrders[shipId]
	if !ok {
		so = &ShipOrders{}
		gs.ShipOrders[shipId] = so
	}
	return so
}

// FleetForShip returns the fleet containing shipId, if any.
func (gs *GameState) FleetForShip(shipId ids.Id) (*Fleet, bool) {
	var found *Fleet
	for _, fleetId := range gs.Fleets.SortedIds() {
		fleet := gs.Fleets.MustGet(fleetId)
		if fleet.HasShip(shipId) {
			found = fleet
			break
		}
	}
	return found, found != nil
}

// DestroyShip removes a ship from its system and fleet, then from the ship
// arena and its order queue. It does not create a Wreck; callers that need
// one (combat, ScrapShip) create it explicitly with the minerals they
// computed.
func (gs *GameState) DestroyShip(shipId ids.Id) {
	ship, ok := gs.Ships.Get(shipId)
	if ok {
		if sys, ok := gs.Systems.Get(ship.SystemId); ok {
			sys.RemoveShip(shipId)
		}
	}
	if fleet, ok := gs.FleetForShip(shipId); ok {
		fleet.RemoveShip(shipId)
	}
	gs.Ships.Delete(shipId)
	delete(gs.ShipOrders, shipId)
}
