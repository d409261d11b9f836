package world

import "github.com/nebula4x/nebula4x/ids"

// BuildOrder is the head-of-queue shipyard job: building tons_remaining more
// tons of a ship design.
type BuildOrder struct {
	DesignId     string  `json:"design_id"`
	TonsRemaining float64 `json:"tons_remaining"`
	TotalTons     float64 `json:"total_tons"`
}

// InstallationOrder is a queued construction job: cp_remaining construction
// points left on the current unit, quantity_remaining more units after that.
type InstallationOrder struct {
	InstallationId     string  `json:"installation_id"`
	CpRemaining        float64 `json:"cp_remaining"`
	CpPerUnit          float64 `json:"cp_per_unit"`
	QuantityRemaining  int     `json:"quantity_remaining"`
}

// TroopTrainingOrder is a queued ground-forces training job.
type TroopTrainingOrder struct {
	PointsRemaining float64 `json:"points_remaining"`
	TotalPoints     float64 `json:"total_points"`
}

// Colony is a populated body: population, stockpile, installation counts
// and the three production queues (shipyard, construction, training).
type Colony struct {
	Id        ids.Id `json:"id"`
	FactionId ids.Id `json:"faction_id"`
	BodyId    ids.Id `json:"body_id"`
	Name      string `json:"name"`

	PopulationMillions float64            `json:"population_millions"`
	Stockpile          map[string]float64 `json:"stockpile"`
	Installations      map[string]int     `json:"installations"`

	ShipyardQueue      []BuildOrder         `json:"shipyard_queue,omitempty"`
	ConstructionQueue  []InstallationOrder  `json:"construction_queue,omitempty"`
	GroundForces       float64              `json:"ground_forces"`
	TroopTrainingQueue []TroopTrainingOrder `json:"troop_training_queue,omitempty"`

	// InstallationTargets feeds auto-construction: if the current count of
	// an installation id is below its target and the construction queue has
	// no order for it, a build order for the deficit is appended.
	InstallationTargets map[string]int `json:"installation_targets,omitempty"`
}

// NewColony returns a Colony with its maps initialized.
func NewColony(id, factionId, bodyId ids.Id, name string) *Colony {
	return &Colony{
		Id:            id,
		FactionId:     factionId,
		BodyId:        bodyId,
		Name:          name,
		Stockpile:     map[string]float64{},
		Installations: map[string]int{},
	}
}

// Stock returns the tons of mineral on hand, 0 if none.
func (c *Colony) Stock(mineral string) float64 { return c.Stockpile[mineral] }

// AddStock adds tons of mineral to the colony's stockpile.
func (c *Colony) AddStock(mineral string, tons float64) {
	if tons == 0 {
		return
	}
	if c.Stockpile == nil {
		c.Stockpile = map[string]float64{}
	}
	c.Stockpile[mineral] += tons
}

// TakeStock removes up to tons of mineral, returning the amount removed.
func (c *Colony) TakeStock(mineral string, tons float64) float64 {
	have := c.Stockpile[mineral]
	take := tons
	if take > have {
		take = have
	}
	if take <= 0 {
		return 0
	}
	c.Stockpile[mineral] -= take
	return take
}

// CanAfford reports whether the colony's stockpile covers every entry in
// costs.
func (c *Colony) CanAfford(costs map[string]float64) bool {
	for resource, amount := range costs {
		if c.Stockpile[resource] < amount {
			return false
		}
	}
	return true
}

// Pay deducts costs from the stockpile. Callers must call CanAfford first;
// Pay does not itself check sufficiency.
func (c *Colony) Pay(costs map[string]float64) {
	for resource, amount := range costs {
		c.Stockpile[resource] -= amount
	}
}
