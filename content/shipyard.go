package content

import "sort"

// ShipyardCostProfile returns the build_costs_per_ton map of a shipyard-
// capable installation (BuildRateTonsPerDay > 0), used by the colony
// economy to cost shipyard construction and by combat/scrap to compute
// mineral refunds for a destroyed or scrapped ship. §3 ties build costs to
// the InstallationDef rather than the ShipDesign, so any one shipyard-
// capable installation stands in as the cost profile; ordinary scenarios
// define exactly one. The lowest installation id is chosen so the result
// is deterministic across map-iteration order.
func (db *DB) ShipyardCostProfile() map[string]float64 {
	ids := make([]string, 0, len(db.Installations))
	for id := range db.Installations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		inst := db.Installations[id]
		if inst.BuildRateTonsPerDay > 0 && len(inst.BuildCostsPerTon) > 0 {
			return inst.BuildCostsPerTon
		}
	}
	return nil
}
