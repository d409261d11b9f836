// Package orders executes the head of each ship's order queue once per
// tick: movement, mining, salvage, cargo transfers, survey and the other
// per-ship state-machine orders spec'd in the tick pipeline's order
// execution step.
package orders

import (
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/economy"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/routing"
	"github.com/nebula4x/nebula4x/world"
)

// ArrivalEpsMkm is how close a ship must get to a movement target to be
// considered arrived (kArrivalEps in the design notes).
const ArrivalEpsMkm = 0.05

// JumpRadiusMkm is how close a ship must be to a jump point to transit it.
const JumpRadiusMkm = 0.5

// TransferRangeMkm is the maximum separation for ship-to-ship transfers.
const TransferRangeMkm = 1.0

// SalvageTonsPerDayMin and SalvageTonsPerDayPerCargoTon mirror the
// planner's salvage rate so a manually-issued SalvageWreck order behaves
// the same as a planned one.
const (
	SalvageTonsPerDayMin         = 5.0
	SalvageTonsPerDayPerCargoTon = 0.1
)

// Execute processes the head order of every ship's queue for hours of
// simulated time, in ascending ship-id order.
func Execute(gs *world.GameState, db *content.DB, hours float64) {
	days := hours / 24.0
	for _, shipId := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(shipId)
		if !ship.Alive() {
			continue
		}
		so, ok := gs.ShipOrders[shipId]
		if !ok || len(so.Queue) == 0 {
			continue
		}

		order := so.Queue[0]
		done := runOrder(gs, db, ship, order, hours, days)
		if done {
			popOrder(gs, ship.Id, so)
		}
	}
}

func popOrder(gs *world.GameState, shipId ids.Id, so *world.ShipOrders) {
	so.Queue = so.Queue[1:]
	if len(so.Queue) > 0 || !so.Repeat {
		return
	}
	if so.RepeatCountRemaining == 0 {
		so.Repeat = false
		return
	}
	so.Queue = world.CloneQueue(so.RepeatTemplate)
	if so.RepeatCountRemaining > 0 {
		so.RepeatCountRemaining--
	}
}

// runOrder advances order by hours/days of simulated time and reports
// whether it has completed and should be popped.
func runOrder(gs *world.GameState, db *content.DB, ship *world.Ship, order world.Order, hours, days float64) bool {
	switch o := order.(type) {
	case world.MoveToPointOrder:
		return moveToward(gs, ship, o.Target, geom.Vec{}, hours)
	case world.MoveToBodyOrder:
		body, ok := gs.Bodies.Get(o.BodyId)
		if !ok {
			return true
		}
		return moveToward(gs, ship, body.PositionMkm, body.VelocityAt(gs.Date.AsFractionalDays()), hours)
	case world.TravelViaJumpOrder:
		return travelViaJump(gs, ship, o, hours)
	case world.AttackShipOrder:
		return attackShip(gs, ship, o, hours)
	case world.MineBodyOrder:
		return mineBody(gs, ship, o, days)
	case world.SalvageWreckOrder:
		return salvageWreck(gs, ship, o, days)
	case world.LoadMineralOrder:
		return loadMineral(gs, ship, o)
	case world.UnloadMineralOrder:
		return unloadMineral(gs, ship, o)
	case world.OrbitBodyOrder:
		return orbitBody(&o, days, func(u world.OrbitBodyOrder) { replaceHead(gs, ship.Id, u) })
	case world.WaitDaysOrder:
		return waitDays(&o, days, func(u world.WaitDaysOrder) { replaceHead(gs, ship.Id, u) })
	case world.TransferCargoToShipOrder:
		return transferCargo(gs, ship, o)
	case world.TransferFuelToShipOrder:
		return transferFuel(gs, ship, o)
	case world.TransferTroopsToShipOrder:
		return transferTroops(gs, ship, o)
	case world.EscortShipOrder:
		return escortShip(gs, ship, o, hours)
	case world.SurveyJumpPointOrder:
		return surveyJumpPoint(gs, &o, ship, days, func(u world.SurveyJumpPointOrder) { replaceHead(gs, ship.Id, u) })
	case world.ScrapShipOrder:
		return scrapShip(gs, db, ship, o)
	default:
		return true
	}
}

func replaceHead(gs *world.GameState, shipId ids.Id, updated world.Order) {
	so := gs.ShipOrders[shipId]
	if so == nil || len(so.Queue) == 0 {
		return
	}
	so.Queue[0] = updated
}

// moveToward advances ship toward target (with target's own velocity, zero
// for stationary points) using the intercept solver for aim, consuming
// fuel proportional to distance traveled. Returns true on arrival.
func moveToward(gs *world.GameState, ship *world.Ship, target, targetVelocity geom.Vec, hours float64) bool {
	if geom.WithinEps(ship.PositionMkm, target, ArrivalEpsMkm) {
		return true
	}

	speed := ship.Cache.SpeedKmS * world.SpeedKmSToMkmPerDay
	if speed <= 0 {
		return true
	}

	sol := routing.Intercept(ship.PositionMkm, target, targetVelocity, speed, ArrivalEpsMkm, 3650)
	aim := target
	if sol.HasSolution {
		aim = sol.AimPosition
	}

	dir := aim.Sub(ship.PositionMkm)
	dist := dir.Len()
	if dist <= 1e-9 {
		return true
	}
	step := speed * (hours / 24.0)
	if step >= dist {
		step = dist
	}

	if ship.Cache.FuelUsePerMkm > 0 {
		fuelNeeded := ship.Cache.FuelUsePerMkm * step
		if ship.Fuel < fuelNeeded {
			if ship.Fuel <= 0 {
				gs.EmitFor(world.LevelWarn, "orders", ship.Name+" out of fuel", ship.FactionId, ship.Id, 0, ship.SystemId)
				return false
			}
			step = ship.Fuel / ship.Cache.FuelUsePerMkm
			fuelNeeded = ship.Fuel
		}
		ship.Fuel -= fuelNeeded
	}

	unit := dir.Scale(1.0 / dist)
	ship.PositionMkm = ship.PositionMkm.Add(unit.Scale(step))
	return geom.WithinEps(ship.PositionMkm, target, ArrivalEpsMkm)
}

func travelViaJump(gs *world.GameState, ship *world.Ship, o world.TravelViaJumpOrder, hours float64) bool {
	jp, ok := gs.JumpPoints.Get(o.JumpId)
	if !ok {
		return true
	}
	if !moveToward(gs, ship, jp.PositionMkm, geom.Vec{}, hours) {
		return false
	}
	if !geom.WithinEps(ship.PositionMkm, jp.PositionMkm, JumpRadiusMkm) {
		return false
	}

	linked, ok := gs.JumpPoints.Get(jp.LinkedJumpId)
	if !ok {
		return true
	}

	fromSys, _ := gs.Systems.Get(ship.SystemId)
	if fromSys != nil {
		fromSys.RemoveShip(ship.Id)
	}
	ship.SystemId = linked.SystemId
	ship.PositionMkm = linked.PositionMkm
	if toSys, ok := gs.Systems.Get(linked.SystemId); ok {
		toSys.AddShip(ship.Id)
	}
	if faction, ok := gs.Factions.Get(ship.FactionId); ok {
		faction.Discover(linked.SystemId)
	}
	return true
}

func attackShip(gs *world.GameState, ship *world.Ship, o world.AttackShipOrder, hours float64) bool {
	target, ok := gs.Ships.Get(o.TargetShipId)
	if !ok || !target.Alive() {
		return true
	}
	if target.SystemId != ship.SystemId {
		return true
	}
	// Combat itself is resolved by the combat package's own tick; this
	// order only closes distance so the combat pass finds the ships in
	// range.
	moveToward(gs, ship, target.PositionMkm, geom.Vec{}, hours)
	return false
}

func mineBody(gs *world.GameState, ship *world.Ship, o world.MineBodyOrder, days float64) bool {
	body, ok := gs.Bodies.Get(o.BodyId)
	if !ok {
		return true
	}
	if !geom.WithinEps(ship.PositionMkm, body.PositionMkm, TransferRangeMkm) {
		if !moveShipDirect(ship, body.PositionMkm) {
			return false
		}
	}

	rate := ship.Cache.MiningTonsPerDay
	if rate <= 0 {
		return true
	}
	tons := rate * days
	if o.StopWhenCargoFull {
		if free := ship.CargoFree(); tons > free {
			tons = free
		}
	}
	if tons <= 0 {
		return o.StopWhenCargoFull
	}

	mined := mineralsFromBody(body, o.Mineral, tons)
	if mined <= 0 {
		return true
	}
	ship.AddCargo(mineralLabel(o.Mineral), mined)
	return o.StopWhenCargoFull && ship.CargoFree() <= 1e-9
}

func mineralLabel(requested string) string {
	if requested == "" {
		return "Unknown"
	}
	return requested
}

func mineralsFromBody(body *world.Body, mineral string, tons float64) float64 {
	if body.DepositUnlimited() {
		return tons
	}
	if mineral == "" {
		total := 0.0
		for _, v := range body.MineralDeposits {
			total += v
		}
		if total < tons {
			tons = total
		}
		return tons
	}
	remaining := body.MineralDeposits[mineral]
	if remaining < tons {
		tons = remaining
	}
	body.MineralDeposits[mineral] -= tons
	return tons
}

func salvageWreck(gs *world.GameState, ship *world.Ship, o world.SalvageWreckOrder, days float64) bool {
	wreck, ok := gs.Wrecks.Get(o.WreckId)
	if !ok {
		return true
	}
	if !geom.WithinEps(ship.PositionMkm, wreck.PositionMkm, TransferRangeMkm) {
		if !moveShipDirect(ship, wreck.PositionMkm) {
			return false
		}
	}

	rate := SalvageTonsPerDayMin
	if perCargo := SalvageTonsPerDayPerCargoTon * ship.Cache.CargoTons; perCargo > rate {
		rate = perCargo
	}
	remaining := rate * days
	if free := ship.CargoFree(); remaining > free {
		remaining = free
	}

	for _, mineral := range sortedKeys(wreck.Minerals) {
		if remaining <= 0 {
			break
		}
		take := wreck.Minerals[mineral]
		if take > remaining {
			take = remaining
		}
		wreck.Minerals[mineral] -= take
		ship.AddCargo(mineral, take)
		remaining -= take
	}

	if wreck.Remaining() <= 1e-9 {
		gs.Wrecks.Delete(wreck.Id)
		return true
	}
	return ship.CargoFree() <= 1e-9
}

func loadMineral(gs *world.GameState, ship *world.Ship, o world.LoadMineralOrder) bool {
	colony, ok := gs.Colonies.Get(o.ColonyId)
	if !ok {
		return true
	}
	minerals := sortedKeys(colony.Stockpile)
	if o.Mineral != "" {
		minerals = []string{o.Mineral}
	}
	for _, mineral := range minerals {
		want := o.Tons
		available := colony.Stock(mineral)
		if want <= 0 || want > available {
			want = available
		}
		if free := ship.CargoFree(); want > free {
			want = free
		}
		if want <= 0 {
			continue
		}
		taken := colony.TakeStock(mineral, want)
		ship.AddCargo(mineral, taken)
		if o.Mineral != "" || ship.CargoFree() <= 1e-9 {
			break
		}
	}
	return true
}

func unloadMineral(gs *world.GameState, ship *world.Ship, o world.UnloadMineralOrder) bool {
	colony, ok := gs.Colonies.Get(o.ColonyId)
	if !ok {
		return true
	}
	minerals := sortedKeys(ship.CargoTons)
	if o.Mineral != "" {
		minerals = []string{o.Mineral}
	}
	for _, mineral := range minerals {
		want := o.Tons
		aboard := ship.CargoTons[mineral]
		if want <= 0 || want > aboard {
			want = aboard
		}
		if want <= 0 {
			continue
		}
		removed := ship.RemoveCargo(mineral, want)
		colony.AddStock(mineral, removed)
	}
	return true
}

func orbitBody(o *world.OrbitBodyOrder, days float64, update func(world.OrbitBodyOrder)) bool {
	o.ElapsedDays += days
	update(*o)
	if o.DurationDays < 0 {
		return false
	}
	return o.ElapsedDays >= o.DurationDays
}

func waitDays(o *world.WaitDaysOrder, days float64, update func(world.WaitDaysOrder)) bool {
	o.ElapsedDays += days
	update(*o)
	return o.ElapsedDays >= o.DurationDays
}

func transferCargo(gs *world.GameState, ship *world.Ship, o world.TransferCargoToShipOrder) bool {
	target, ok := gs.Ships.Get(o.TargetShipId)
	if !ok || !inTransferRange(ship, target) {
		return true
	}
	minerals := sortedKeys(ship.CargoTons)
	if o.Mineral != "" {
		minerals = []string{o.Mineral}
	}
	for _, mineral := range minerals {
		want := o.Tons
		aboard := ship.CargoTons[mineral]
		if want <= 0 || want > aboard {
			want = aboard
		}
		if free := target.CargoFree(); want > free {
			want = free
		}
		if want <= 0 {
			continue
		}
		removed := ship.RemoveCargo(mineral, want)
		target.AddCargo(mineral, removed)
	}
	return true
}

func transferFuel(gs *world.GameState, ship *world.Ship, o world.TransferFuelToShipOrder) bool {
	target, ok := gs.Ships.Get(o.TargetShipId)
	if !ok || !inTransferRange(ship, target) {
		return true
	}
	want := o.Tons
	if want <= 0 || want > ship.Fuel {
		want = ship.Fuel
	}
	if room := target.Cache.FuelCapacity - target.Fuel; want > room {
		want = room
	}
	if want > 0 {
		ship.Fuel -= want
		target.Fuel += want
	}
	return true
}

func transferTroops(gs *world.GameState, ship *world.Ship, o world.TransferTroopsToShipOrder) bool {
	target, ok := gs.Ships.Get(o.TargetShipId)
	if !ok || !inTransferRange(ship, target) {
		return true
	}
	want := o.Troops
	if want <= 0 || want > ship.Troops {
		want = ship.Troops
	}
	room := int(target.Cache.TroopCapacity) - target.Troops
	if want > room {
		want = room
	}
	if want > 0 {
		ship.Troops -= want
		target.Troops += want
	}
	return true
}

func escortShip(gs *world.GameState, ship *world.Ship, o world.EscortShipOrder, hours float64) bool {
	target, ok := gs.Ships.Get(o.TargetShipId)
	if !ok {
		return true
	}
	moveToward(gs, ship, target.PositionMkm, geom.Vec{}, hours)
	return false
}

func surveyJumpPoint(gs *world.GameState, o *world.SurveyJumpPointOrder, ship *world.Ship, days float64, update func(world.SurveyJumpPointOrder)) bool {
	jp, ok := gs.JumpPoints.Get(o.JumpId)
	if !ok {
		return true
	}
	if !geom.WithinEps(ship.PositionMkm, jp.PositionMkm, TransferRangeMkm) {
		return false
	}

	o.ProgressRp += ship.Cache.SensorRangeMkm * days
	update(*o)

	const surveyRequired = 100.0
	if o.ProgressRp < surveyRequired {
		return false
	}

	if jp.SurveyedBy == nil {
		jp.SurveyedBy = map[ids.Id]bool{}
	}
	jp.SurveyedBy[ship.FactionId] = true
	if faction, ok := gs.Factions.Get(ship.FactionId); ok {
		if linked, ok := gs.JumpPoints.Get(jp.LinkedJumpId); ok {
			faction.Discover(linked.SystemId)
		}
	}
	return true
}

func scrapShip(gs *world.GameState, db *content.DB, ship *world.Ship, o world.ScrapShipOrder) bool {
	colony, ok := gs.Colonies.Get(o.ColonyId)
	if !ok {
		return true
	}
	body, ok := gs.Bodies.Get(colony.BodyId)
	if !ok || !geom.WithinEps(ship.PositionMkm, body.PositionMkm, TransferRangeMkm) {
		if ok {
			moveShipDirect(ship, body.PositionMkm)
		}
		return false
	}
	economy.ScrapShip(gs, db, colony, ship)
	return true
}

func inTransferRange(a, b *world.Ship) bool {
	return a.SystemId == b.SystemId && geom.WithinEps(a.PositionMkm, b.PositionMkm, TransferRangeMkm)
}

// moveShipDirect reports whether ship is within TransferRangeMkm of target;
// it does not move the ship. It is used by orders (mine/salvage/scrap) that
// only require being in range; the approach leg comes from an explicit
// MoveToBody/MoveToPoint order queued ahead of them.
func moveShipDirect(ship *world.Ship, target geom.Vec) bool {
	return geom.WithinEps(ship.PositionMkm, target, TransferRangeMkm)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
