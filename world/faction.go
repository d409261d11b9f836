package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// ControlMode distinguishes a human-driven faction from the AI behaviors the
// pirate/AI-empire tick drives.
type ControlMode string

const (
	ControlPlayer      ControlMode = "Player"
	ControlAIExplorer  ControlMode = "AI_Explorer"
	ControlAIPirate    ControlMode = "AI_Pirate"
	ControlAIEmpire    ControlMode = "AI_Empire"
)

// ShipContact is the fog-of-war record of a foreign ship: the last position
// and system a faction's sensors actually observed it in.
type ShipContact struct {
	ShipId       ids.Id   `json:"ship_id"`
	SystemId     ids.Id   `json:"system_id"`
	PositionMkm  geom.Vec `json:"position_mkm"`
	LastSeenDays float64  `json:"last_seen_days"`
}

// ResearchQueueEntry names a tech queued for research after the current one
// completes.
type ResearchQueueEntry struct {
	TechId string `json:"tech_id"`
}

// JournalEntry is a persistent player note automatically appended by the
// engine (distinct from SystemNotes, which the player authors).
type JournalEntry struct {
	Day     int64  `json:"day"`
	Message string `json:"message"`
}

// Faction is an empire: player or AI controlled, with its own research,
// discovery, diplomacy and fog-of-war state.
type Faction struct {
	Id      ids.Id      `json:"id"`
	Name    string      `json:"name"`
	Control ControlMode `json:"control"`

	ResearchPoints          float64              `json:"research_points"`
	ActiveResearchId        string               `json:"active_research_id,omitempty"`
	ActiveResearchProgress  float64              `json:"active_research_progress"`
	ResearchQueue           []ResearchQueueEntry `json:"research_queue,omitempty"`
	KnownTechs              map[string]bool      `json:"known_techs,omitempty"`
	UnlockedComponents      map[string]bool      `json:"unlocked_components,omitempty"`
	UnlockedInstallations   map[string]bool      `json:"unlocked_installations,omitempty"`

	DiscoveredSystems []ids.Id                `json:"discovered_systems,omitempty"`
	ShipContacts      map[ids.Id]*ShipContact `json:"ship_contacts,omitempty"`

	// Diplomacy maps target faction id to relation in [-1,1].
	Diplomacy map[ids.Id]float64 `json:"diplomacy,omitempty"`

	SystemNotes map[ids.Id]string `json:"system_notes,omitempty"`
	Journal     []JournalEntry    `json:"journal,omitempty"`
}

// NewFaction returns a Faction with its maps initialized.
func NewFaction(id ids.Id, name string, control ControlMode) *Faction {
	return &Faction{
		Id:                    id,
		Name:                  name,
		Control:               control,
		KnownTechs:            map[string]bool{},
		UnlockedComponents:    map[string]bool{},
		UnlockedInstallations: map[string]bool{},
		ShipContacts:          map[ids.Id]*ShipContact{},
		Diplomacy:             map[ids.Id]float64{},
		SystemNotes:           map[ids.Id]string{},
	}
}

// HasDiscovered reports whether systemId is in the faction's discovered set.
func (f *Faction) HasDiscovered(systemId ids.Id) bool {
	for _, id := range f.DiscoveredSystems {
		if id == systemId {
			return true
		}
	}
	return false
}

// Discover adds systemId to the discovered set if not already present,
// preserving the duplicate-free invariant.
func (f *Faction) Discover(systemId ids.Id) {
	if f.HasDiscovered(systemId) {
		return
	}
	f.DiscoveredSystems = append(f.DiscoveredSystems, systemId)
}

// RelationWith returns the faction's relation toward target, defaulting to 0
// (neutral) if no entry exists yet.
func (f *Faction) RelationWith(target ids.Id) float64 {
	return f.Diplomacy[target]
}
