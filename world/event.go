package world

import "github.com/nebula4x/nebula4x/ids"

// EventLevel is the severity of a SimEvent.
type EventLevel string

const (
	LevelInfo  EventLevel = "Info"
	LevelWarn  EventLevel = "Warn"
	LevelError EventLevel = "Error"
)

// SimEvent is a single tick-pipeline log entry: a monotonically-sequenced,
// optionally entity-tagged message the UI surfaces as a toast or modal.
type SimEvent struct {
	Seq      int64      `json:"seq"`
	Day      int64      `json:"day"`
	Level    EventLevel `json:"level"`
	Category string     `json:"category"`

	FactionId ids.Id `json:"faction_id,omitempty"`
	ShipId    ids.Id `json:"ship_id,omitempty"`
	ColonyId  ids.Id `json:"colony_id,omitempty"`
	SystemId  ids.Id `json:"system_id,omitempty"`

	Message string `json:"message"`
}
