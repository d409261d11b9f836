package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// AnomalyKind names the flavor of an unresolved anomaly.
type AnomalyKind string

const (
	AnomalyDerelict    AnomalyKind = "Derelict"
	AnomalySignal      AnomalyKind = "Signal"
	AnomalyRuins       AnomalyKind = "Ruins"
	AnomalyAnomalous   AnomalyKind = "Anomalous"
)

// Anomaly is an unresolved point of interest discoverable by a surveyor.
type Anomaly struct {
	Id       ids.Id      `json:"id"`
	SystemId ids.Id      `json:"system_id"`
	PositionMkm geom.Vec `json:"position_mkm"`
	Kind     AnomalyKind `json:"kind"`

	// LeadChain is the ordered list of clue strings that flavor-layer UI
	// reveals as investigation progresses; the engine only needs its length.
	LeadChain []string `json:"lead_chain,omitempty"`

	InvestigationProgress float64 `json:"investigation_progress"`
	InvestigationRequired float64 `json:"investigation_required"`

	ResolvedByFactionId ids.Id `json:"resolved_by_faction_id,omitempty"`
	Resolved            bool   `json:"resolved"`
}

// Wreck is a persistent salvageable entity left behind by a destroyed ship.
type Wreck struct {
	Id          ids.Id             `json:"id"`
	SystemId    ids.Id             `json:"system_id"`
	PositionMkm geom.Vec           `json:"position_mkm"`
	Minerals    map[string]float64 `json:"minerals"`
	SourceShipFactionId ids.Id     `json:"source_ship_faction_id,omitempty"`
}

// Remaining returns the wreck's total remaining tons across all minerals.
func (w *Wreck) Remaining() float64 {
	total := 0.0
	for _, v := range w.Minerals {
		total += v
	}
	return total
}
