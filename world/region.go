package world

import "github.com/nebula4x/nebula4x/geom"

// Region groups nearby systems (by galaxy_pos) under shared gameplay
// modifiers, produced by the k-means region partitioner.
type Region struct {
	Name   string   `json:"name"`
	Center geom.Vec `json:"center"`

	MineralRichnessMult  float64 `json:"mineral_richness_mult"`
	VolatileRichnessMult float64 `json:"volatile_richness_mult"`
	SalvageRichnessMult  float64 `json:"salvage_richness_mult"`
	NebulaBias           float64 `json:"nebula_bias"` // [-1,1]
	PirateRisk           float64 `json:"pirate_risk"` // [0,1]
	PirateSuppression    float64 `json:"pirate_suppression"` // [0,1]
	RuinsDensity         float64 `json:"ruins_density"` // [0,1]
}

// DefaultRegion returns a region with neutral modifiers, used as the
// fallback for a system not yet assigned to a partitioned region.
func DefaultRegion(name string) Region {
	return Region{
		Name:                 name,
		MineralRichnessMult:  1,
		VolatileRichnessMult: 1,
		SalvageRichnessMult:  1,
	}
}
