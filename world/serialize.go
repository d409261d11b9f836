package world

import (
	"encoding/json"
	"fmt"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/simdate"
)

// saveDoc is the exact top-level shape of a save file. Field order here
// only affects Go struct layout, not JSON key order, but it is kept in
// the same order the save-file contract lists them so a diff against the
// contract is easy to eyeball.
type saveDoc struct {
	SaveVersion int `json:"save_version"`

	Date      int64 `json:"date"`
	HourOfDay int   `json:"hour_of_day"`

	NextId       ids.Id `json:"next_id"`
	NextEventSeq int64  `json:"next_event_seq"`

	SelectedSystem ids.Id `json:"selected_system,omitempty"`

	Systems    *Arena[*StarSystem]    `json:"systems"`
	Bodies     *Arena[*Body]          `json:"bodies"`
	JumpPoints *Arena[*JumpPoint]     `json:"jump_points"`
	Ships      *Arena[*Ship]          `json:"ships"`
	ShipOrders map[string]*ShipOrders `json:"ship_orders"`
	Colonies   *Arena[*Colony]        `json:"colonies"`
	Factions   *Arena[*Faction]       `json:"factions"`
	Fleets     *Arena[*Fleet]         `json:"fleets"`
	Regions    map[string]*Region     `json:"regions"`
	Anomalies  *Arena[*Anomaly]       `json:"anomalies"`
	Wrecks     *Arena[*Wreck]         `json:"wrecks"`
	Contracts  *Arena[*Contract]      `json:"contracts"`
	Missiles   *Arena[*Missile]       `json:"missiles,omitempty"`

	Events []SimEvent `json:"events"`

	CustomDesigns map[string]bool `json:"custom_designs,omitempty"`

	VictoryRules VictoryRules `json:"victory_rules"`
	VictoryState VictoryState `json:"victory_state"`
}

// Serialize renders a GameState as the canonical save-file JSON document.
func Serialize(gs *GameState) ([]byte, error) {
	doc := saveDoc{
		SaveVersion:    gs.SaveVersion,
		Date:           gs.Date.Days,
		HourOfDay:      gs.Date.HourOfDay,
		NextId:         gs.NextId,
		NextEventSeq:   gs.NextEventSeq,
		SelectedSystem: gs.SelectedSystem,
		Systems:        gs.Systems,
		Bodies:         gs.Bodies,
		JumpPoints:     gs.JumpPoints,
		Ships:          gs.Ships,
		Colonies:       gs.Colonies,
		Factions:       gs.Factions,
		Fleets:         gs.Fleets,
		Anomalies:      gs.Anomalies,
		Wrecks:         gs.Wrecks,
		Contracts:      gs.Contracts,
		Missiles:       gs.Missiles,
		Events:         gs.Events,
		CustomDesigns:  gs.CustomDesigns,
		VictoryRules:   gs.VictoryRules,
		VictoryState:   gs.VictoryState,
	}

	doc.ShipOrders = make(map[string]*ShipOrders, len(gs.ShipOrders))
	for id, so := range gs.ShipOrders {
		doc.ShipOrders[id.String()] = so
	}

	doc.Regions = make(map[string]*Region, len(gs.Regions))
	for id, r := range gs.Regions {
		doc.Regions[id.String()] = r
	}

	return json.MarshalIndent(&doc, "", "  ")
}

// Deserialize parses a save-file JSON document into a fresh GameState.
// Unknown top-level keys are ignored, per the round-trip contract.
func Deserialize(data []byte) (*GameState, error) {
	var doc saveDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("world: deserialize: %w", err)
	}

	gs := New()
	gs.SaveVersion = doc.SaveVersion
	gs.Date = simdate.Date{Days: doc.Date, HourOfDay: doc.HourOfDay}
	gs.NextId = doc.NextId
	gs.NextEventSeq = doc.NextEventSeq
	gs.SelectedSystem = doc.SelectedSystem

	if doc.Systems != nil {
		gs.Systems = doc.Systems
	}
	if doc.Bodies != nil {
		gs.Bodies = doc.Bodies
	}
	if doc.JumpPoints != nil {
		gs.JumpPoints = doc.JumpPoints
	}
	if doc.Ships != nil {
		gs.Ships = doc.Ships
	}
	if doc.Colonies != nil {
		gs.Colonies = doc.Colonies
	}
	if doc.Factions != nil {
		gs.Factions = doc.Factions
	}
	if doc.Fleets != nil {
		gs.Fleets = doc.Fleets
	}
	if doc.Anomalies != nil {
		gs.Anomalies = doc.Anomalies
	}
	if doc.Wrecks != nil {
		gs.Wrecks = doc.Wrecks
	}
	if doc.Contracts != nil {
		gs.Contracts = doc.Contracts
	}
	if doc.Missiles != nil {
		gs.Missiles = doc.Missiles
	}

	gs.Events = doc.Events
	if doc.CustomDesigns != nil {
		gs.CustomDesigns = doc.CustomDesigns
	}
	gs.VictoryRules = doc.VictoryRules
	gs.VictoryState = doc.VictoryState

	for key, so := range doc.ShipOrders {
		id, err := ids.ParseId(key)
		if err != nil {
			return nil, fmt.Errorf("world: deserialize: ship_orders key %q: %w", key, err)
		}
		gs.ShipOrders[id] = so
	}

	for key, r := range doc.Regions {
		id, err := ids.ParseId(key)
		if err != nil {
			return nil, fmt.Errorf("world: deserialize: regions key %q: %w", key, err)
		}
		gs.Regions[id] = r
	}

	return gs, nil
}
