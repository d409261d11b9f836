// Package diplomacy drifts inter-faction relations toward a neutral
// baseline over time.
package diplomacy

import (
	"sort"

	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// BaselineRelation is the relation every pair of factions drifts toward
// absent any other influence.
const BaselineRelation = 0.0

// DriftPerDay is the fraction of the gap to baseline closed per day.
const DriftPerDay = 0.02

// Tick drifts every faction's recorded relations toward BaselineRelation,
// in ascending faction-id then ascending target-id order for determinism.
func Tick(gs *world.GameState, hours float64) {
	days := hours / 24.0
	for _, fid := range gs.Factions.SortedIds() {
		f := gs.Factions.MustGet(fid)
		if len(f.Diplomacy) == 0 {
			continue
		}
		targets := make([]ids.Id, 0, len(f.Diplomacy))
		for target := range f.Diplomacy {
			targets = append(targets, target)
		}
		sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
		for _, t := range targets {
			relation := f.Diplomacy[t]
			gap := BaselineRelation - relation
			relation += gap * DriftPerDay * days
			f.Diplomacy[t] = clamp(relation, -1, 1)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
