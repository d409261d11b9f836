// Package economy runs the colony-economy tick: per-installation
// production/consumption, mining deposit drawdown, terraforming steps,
// troop training, shipyard construction and auto-construction, all
// accumulated per hour as hours/24 day-fractions. Research accrual is left
// to the research package.
package economy

import (
	"math"
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/world"
)

// TerraformMaxDeltaPerDay is how far one terraforming point moves a body's
// temperature (K) toward its target per day; atmosphere (atm) moves a
// hundredth of that. A step never overshoots the target.
const TerraformMaxDeltaPerDay = 0.5

// ScrapRecoveryRate is the fraction of a ScrapShip order's build cost
// refunded to the owning colony, distinct from combat's RecoveryRate
// because a planned scrap is a deliberate salvage job, not a battle loss.
const ScrapRecoveryRate = 0.75

// Tick advances every colony's economy by the given number of hours.
func Tick(gs *world.GameState, db *content.DB, hours float64) {
	days := hours / 24.0
	for _, colonyId := range gs.Colonies.SortedIds() {
		colony := gs.Colonies.MustGet(colonyId)
		body, _ := gs.Bodies.Get(colony.BodyId)

		runInstallations(db, colony, body, days)
		advanceShipyard(gs, db, colony, days)
		advanceConstruction(gs, db, colony, days)
		advanceTraining(db, colony, days)
		autoConstruct(colony)
	}
}

func sortedInstallationIds(colony *world.Colony) []string {
	ids := make([]string, 0, len(colony.Installations))
	for id := range colony.Installations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// runInstallations applies every per-day installation effect except research
// accrual, which the research package owns (it sums the same
// research_points_per_day across colonies independently so the research
// tick stays the single source of truth for active_research_progress).
func runInstallations(db *content.DB, colony *world.Colony, body *world.Body, days float64) {
	for _, instId := range sortedInstallationIds(colony) {
		count := colony.Installations[instId]
		def, ok := db.Installations[instId]
		if !ok || count <= 0 {
			continue
		}
		m := float64(count)

		consumed := scale(def.ConsumesPerDay, m*days)
		if colony.CanAfford(consumed) {
			colony.Pay(consumed)
			for resource, amount := range scale(def.ProducesPerDay, m*days) {
				colony.AddStock(resource, amount)
			}
		}

		if def.MiningTonsPerDay > 0 && body != nil {
			mineFromBody(colony, body, def.MiningTonsPerDay*m*days)
		}

		if def.TerraformingPointsPerDay > 0 && body != nil {
			stepTerraforming(body, def.TerraformingPointsPerDay*m*days)
		}
	}
}

func scale(m map[string]float64, factor float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v * factor
	}
	return out
}

// mineFromBody draws tons proportionally across a body's deposits; an
// unlimited deposit (empty map) just credits the colony with the full
// amount.
func mineFromBody(colony *world.Colony, body *world.Body, tons float64) {
	if tons <= 0 {
		return
	}
	if body.DepositUnlimited() {
		colony.AddStock("Unknown", tons)
		return
	}

	total := 0.0
	for _, remaining := range body.MineralDeposits {
		total += remaining
	}
	if total <= 0 {
		return
	}

	resources := make([]string, 0, len(body.MineralDeposits))
	for r := range body.MineralDeposits {
		resources = append(resources, r)
	}
	sort.Strings(resources)

	for _, resource := range resources {
		remaining := body.MineralDeposits[resource]
		share := remaining / total * tons
		if share > remaining {
			share = remaining
		}
		body.MineralDeposits[resource] -= share
		colony.AddStock(resource, share)
	}
}

func stepTerraforming(body *world.Body, points float64) {
	tempDelta := clampDelta(body.TargetTempK-body.SurfaceTempK, points*TerraformMaxDeltaPerDay)
	body.SurfaceTempK += tempDelta

	atmDelta := clampDelta(body.TargetAtmAtm-body.AtmosphereAtm, points*TerraformMaxDeltaPerDay*0.01)
	body.AtmosphereAtm += atmDelta
}

func clampDelta(gap, maxStep float64) float64 {
	if gap == 0 {
		return 0
	}
	if math.Abs(gap) < maxStep {
		return gap
	}
	if gap > 0 {
		return maxStep
	}
	return -maxStep
}

func advanceShipyard(gs *world.GameState, db *content.DB, colony *world.Colony, days float64) {
	if len(colony.ShipyardQueue) == 0 {
		return
	}
	profile := db.ShipyardCostProfile()
	buildRate := shipyardBuildRate(db, colony)
	if buildRate <= 0 {
		return
	}

	order := &colony.ShipyardQueue[0]
	deltaTons := buildRate * days
	if deltaTons > order.TonsRemaining {
		deltaTons = order.TonsRemaining
	}
	cost := scale(profile, deltaTons)
	if !colony.CanAfford(cost) {
		return
	}
	colony.Pay(cost)
	order.TonsRemaining -= deltaTons

	if order.TonsRemaining <= 1e-6 {
		spawnShip(gs, db, colony, order.DesignId)
		colony.ShipyardQueue = colony.ShipyardQueue[1:]
	}
}

func shipyardBuildRate(db *content.DB, colony *world.Colony) float64 {
	rate := 0.0
	ids := sortedInstallationIds(colony)
	for _, id := range ids {
		def, ok := db.Installations[id]
		if !ok || def.BuildRateTonsPerDay <= 0 {
			continue
		}
		rate += def.BuildRateTonsPerDay * float64(colony.Installations[id])
	}
	return rate
}

func spawnShip(gs *world.GameState, db *content.DB, colony *world.Colony, designId string) {
	ship := &world.Ship{
		Id:        gs.NewId(),
		FactionId: colony.FactionId,
		DesignId:  designId,
	}
	if body, ok := gs.Bodies.Get(colony.BodyId); ok {
		ship.SystemId = body.SystemId
		ship.PositionMkm = body.PositionMkm
		if sys, ok := gs.Systems.Get(body.SystemId); ok {
			sys.AddShip(ship.Id)
		}
	}
	ship.RecomputeCache(db)
	ship.Hp = ship.Cache.MaxHp
	ship.Shields = ship.Cache.MaxShields
	ship.Fuel = ship.Cache.FuelCapacity
	gs.Ships.Set(ship.Id, ship)
	gs.EmitFor(world.LevelInfo, "economy", "shipyard completed "+designId, colony.FactionId, ship.Id, colony.Id, ship.SystemId)
}

func advanceConstruction(gs *world.GameState, db *content.DB, colony *world.Colony, days float64) {
	if len(colony.ConstructionQueue) == 0 {
		return
	}
	order := &colony.ConstructionQueue[0]
	order.CpRemaining -= constructionPointsPerDay(db, colony) * days
	if order.CpRemaining > 0 {
		return
	}

	colony.Installations[order.InstallationId]++
	order.QuantityRemaining--
	if order.QuantityRemaining <= 0 {
		colony.ConstructionQueue = colony.ConstructionQueue[1:]
	} else {
		order.CpRemaining += order.CpPerUnit
	}
}

func constructionPointsPerDay(db *content.DB, colony *world.Colony) float64 {
	total := 0.0
	for _, id := range sortedInstallationIds(colony) {
		def, ok := db.Installations[id]
		if !ok {
			continue
		}
		total += def.ConstructionPointsPerDay * float64(colony.Installations[id])
	}
	return total
}

func advanceTraining(db *content.DB, colony *world.Colony, days float64) {
	if len(colony.TroopTrainingQueue) == 0 {
		return
	}
	rate := 0.0
	for _, id := range sortedInstallationIds(colony) {
		def, ok := db.Installations[id]
		if !ok {
			continue
		}
		rate += def.TroopTrainingPointsPerDay * float64(colony.Installations[id])
	}
	if rate <= 0 {
		return
	}

	order := &colony.TroopTrainingQueue[0]
	order.PointsRemaining -= rate * days
	if order.PointsRemaining <= 0 {
		colony.GroundForces += order.TotalPoints
		colony.TroopTrainingQueue = colony.TroopTrainingQueue[1:]
	}
}

// autoConstruct appends a build order for the deficit between an
// installation's target count and its current count, when the construction
// queue has no order for it already.
func autoConstruct(colony *world.Colony) {
	if colony.InstallationTargets == nil {
		return
	}
	targets := make([]string, 0, len(colony.InstallationTargets))
	for id := range colony.InstallationTargets {
		targets = append(targets, id)
	}
	sort.Strings(targets)

	queued := map[string]bool{}
	for _, o := range colony.ConstructionQueue {
		queued[o.InstallationId] = true
	}

	for _, instId := range targets {
		target := colony.InstallationTargets[instId]
		current := colony.Installations[instId]
		if current >= target || queued[instId] {
			continue
		}
		colony.ConstructionQueue = append(colony.ConstructionQueue, world.InstallationOrder{
			InstallationId:    instId,
			QuantityRemaining: target - current,
		})
	}
}

// ScrapShip deletes ship and credits colony with recovered minerals
// computed from the shipyard cost profile inverted at ScrapRecoveryRate,
// per the salvage-on-scrap arithmetic design note.
func ScrapShip(gs *world.GameState, db *content.DB, colony *world.Colony, ship *world.Ship) {
	profile := db.ShipyardCostProfile()
	for resource, perTon := range profile {
		colony.AddStock(resource, perTon*ship.Cache.MassTons*ScrapRecoveryRate)
	}
	gs.EmitFor(world.LevelInfo, "economy", ship.Name+" scrapped", ship.FactionId, ship.Id, colony.Id, ship.SystemId)
	gs.DestroyShip(ship.Id)
}
