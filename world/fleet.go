package world

import (
	"encoding/json"
	"fmt"

	"github.com/nebula4x/nebula4x/ids"
)

// FleetMissionType discriminates the FleetMission sum type.
type FleetMissionType string

const (
	MissionNone    FleetMissionType = "None"
	MissionPatrol  FleetMissionType = "Patrol"
	MissionEscort  FleetMissionType = "Escort"
	MissionStrike  FleetMissionType = "Strike"
	MissionReserve FleetMissionType = "Reserve"
)

// FleetMission is the tagged union of a fleet's current standing mission.
type FleetMission interface {
	Kind() FleetMissionType
}

type NoneMission struct{}

func (NoneMission) Kind() FleetMissionType { return MissionNone }

// PatrolMission holds a fleet on station in a system, suppressing piracy
// there per pirate_suppression_adjust_fraction_per_day.
type PatrolMission struct {
	SystemId                              ids.Id  `json:"system_id"`
	SuppressionAdjustFractionPerDay       float64 `json:"suppression_adjust_fraction_per_day"`
}

func (PatrolMission) Kind() FleetMissionType { return MissionPatrol }

// EscortMission assigns the fleet to shepherd a convoy ship to a system.
type EscortMission struct {
	ConvoyShipId   ids.Id `json:"convoy_ship_id"`
	DestSystemId   ids.Id `json:"dest_system_id"`
}

func (EscortMission) Kind() FleetMissionType { return MissionEscort }

// StrikeMission sends the fleet to engage hostiles in a system.
type StrikeMission struct {
	TargetSystemId ids.Id `json:"target_system_id"`
}

func (StrikeMission) Kind() FleetMissionType { return MissionStrike }

// ReserveMission parks the fleet at a home colony awaiting orders.
type ReserveMission struct {
	HomeColonyId ids.Id `json:"home_colony_id"`
}

func (ReserveMission) Kind() FleetMissionType { return MissionReserve }

// MarshalFleetMission renders m as its {"type": "...", ...} envelope.
func MarshalFleetMission(m FleetMission) ([]byte, error) {
	if m == nil {
		m = NoneMission{}
	}
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, err
	}
	typeJSON, _ := json.Marshal(m.Kind())
	obj["type"] = typeJSON
	return json.Marshal(obj)
}

// UnmarshalFleetMission decodes a {"type": "...", ...} envelope.
func UnmarshalFleetMission(data []byte) (FleetMission, error) {
	var head struct {
		Type FleetMissionType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "", MissionNone:
		return NoneMission{}, nil
	case MissionPatrol:
		var m PatrolMission
		return m, json.Unmarshal(data, &m)
	case MissionEscort:
		var m EscortMission
		return m, json.Unmarshal(data, &m)
	case MissionStrike:
		var m StrikeMission
		return m, json.Unmarshal(data, &m)
	case MissionReserve:
		var m ReserveMission
		return m, json.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("world: unknown fleet mission type %q", head.Type)
	}
}

// Fleet groups ships under a faction, optionally with a leader, and carries
// a standing mission that the pirate/AI-empire tick and patrol planner act
// on. A ship belongs to at most one fleet.
type Fleet struct {
	Id            ids.Id          `json:"id"`
	FactionId     ids.Id          `json:"faction_id"`
	Name          string          `json:"name"`
	ShipIds       map[ids.Id]bool `json:"ship_ids"`
	LeaderShipId  ids.Id          `json:"leader_ship_id,omitempty"`
	Mission       FleetMission    `json:"-"`
}

// MarshalJSON renders Fleet with its Mission field as a tagged envelope.
func (f Fleet) MarshalJSON() ([]byte, error) {
	type alias Fleet
	missionJSON, err := MarshalFleetMission(f.Mission)
	if err != nil {
		return nil, err
	}
	base, err := json.Marshal(alias(f))
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	m["mission"] = missionJSON
	return json.Marshal(m)
}

// UnmarshalJSON reads Fleet back, decoding its tagged mission envelope.
func (f *Fleet) UnmarshalJSON(data []byte) error {
	type alias Fleet
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	var wrapper struct {
		Mission json.RawMessage `json:"mission"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	*f = Fleet(a)
	if len(wrapper.Mission) > 0 {
		mission, err := UnmarshalFleetMission(wrapper.Mission)
		if err != nil {
			return err
		}
		f.Mission = mission
	} else {
		f.Mission = NoneMission{}
	}
	return nil
}

// HasShip reports whether shipId is a member.
func (f *Fleet) HasShip(shipId ids.Id) bool { return f.ShipIds[shipId] }

// AddShip adds shipId to the fleet.
func (f *Fleet) AddShip(shipId ids.Id) {
	if f.ShipIds == nil {
		f.ShipIds = map[ids.Id]bool{}
	}
	f.ShipIds[shipId] = true
}

// RemoveShip removes shipId, clearing LeaderShipId if it was the leader.
func (f *Fleet) RemoveShip(shipId ids.Id) {
	delete(f.ShipIds, shipId)
	if f.LeaderShipId == shipId {
		f.LeaderShipId = ids.Invalid
	}
}
