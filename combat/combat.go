// Package combat runs the per-tick engagement pass: beam fire, missile
// flight and impact, and point-defense interception, grounded on the
// intercept solver in routing for missile aim.
package combat

import (
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/log"
	"github.com/nebula4x/nebula4x/routing"
	"github.com/nebula4x/nebula4x/world"
)

// RecoveryRate is the fraction of a destroyed ship's build cost recovered
// into its wreck. It mirrors the scrap recovery rate in economy but is
// deliberately a separate constant: combat losses aren't salvage jobs the
// loser planned for.
const RecoveryRate = 0.5

// Tick runs the given hours of combat across every system that contains
// opposing ships, in ascending system id then ascending id order so damage
// accumulation is deterministic regardless of map iteration order.
func Tick(gs *world.GameState, db *content.DB, hours float64) {
	advanceMissiles(gs, db, hours)
	runPointDefense(gs, db, hours)

	for _, sysId := range gs.Systems.SortedIds() {
		sys := gs.Systems.MustGet(sysId)
		engageSystem(gs, db, sys, hours)
	}

	resolveMissileImpacts(gs, db)
	sweepDestroyedShips(gs, db)
}

func shipsByFaction(gs *world.GameState, sys *world.StarSystem) map[ids.Id][]ids.Id {
	byFaction := map[ids.Id][]ids.Id{}
	shipIds := append([]ids.Id(nil), sys.ShipIds...)
	sort.Slice(shipIds, func(i, j int) bool { return shipIds[i] < shipIds[j] })
	for _, shipId := range shipIds {
		ship, ok := gs.Ships.Get(shipId)
		if !ok || !ship.Alive() {
			continue
		}
		byFaction[ship.FactionId] = append(byFaction[ship.FactionId], shipId)
	}
	return byFaction
}

func engageSystem(gs *world.GameState, db *content.DB, sys *world.StarSystem, hours float64) {
	byFaction := shipsByFaction(gs, sys)
	if len(byFaction) < 2 {
		return
	}

	factionIds := make([]ids.Id, 0, len(byFaction))
	for f := range byFaction {
		factionIds = append(factionIds, f)
	}
	sort.Slice(factionIds, func(i, j int) bool { return factionIds[i] < factionIds[j] })

	for _, attackerFaction := range factionIds {
		for _, attackerId := range byFaction[attackerFaction] {
			attacker, ok := gs.Ships.Get(attackerId)
			if !ok || !attacker.Alive() {
				continue
			}
			target := pickTarget(gs, byFaction, attackerFaction, attackerId)
			if target == nil {
				continue
			}
			fireBeam(gs, attacker, target, hours)
			launchMissiles(gs, db, attacker, target, hours)
		}
	}
}

// pickTarget chooses the lowest-id living enemy ship in the system, giving
// every tick a deterministic target regardless of which order was used to
// assign AttackShip.
func pickTarget(gs *world.GameState, byFaction map[ids.Id][]ids.Id, attackerFaction ids.Id, attackerId ids.Id) *world.Ship {
	var best *world.Ship
	for faction, shipIds := range byFaction {
		if faction == attackerFaction {
			continue
		}
		for _, shipId := range shipIds {
			ship, ok := gs.Ships.Get(shipId)
			if !ok || !ship.Alive() {
				continue
			}
			if best == nil || ship.Id < best.Id {
				best = ship
			}
		}
	}
	_ = attackerId
	return best
}

func fireBeam(gs *world.GameState, attacker, target *world.Ship, hours float64) {
	if attacker.Cache.WeaponDamage <= 0 {
		return
	}
	separation := attacker.PositionMkm.Dist(target.PositionMkm)
	if separation > attacker.Cache.WeaponRangeMkm {
		return
	}
	damage := attacker.Cache.WeaponDamage * (hours / 24.0)
	applyDamage(gs, target, damage)
}

func applyDamage(gs *world.GameState, target *world.Ship, damage float64) {
	if target.Shields > 0 {
		absorbed := damage
		if absorbed > target.Shields {
			absorbed = target.Shields
		}
		target.Shields -= absorbed
		damage -= absorbed
	}
	if damage <= 0 {
		return
	}
	target.Hp -= damage
	if target.Hp <= 0 {
		gs.EmitFor(world.LevelWarn, "combat", target.Name+" destroyed", target.FactionId, target.Id, 0, target.SystemId)
	}
}

func regenShields(ship *world.Ship, hours float64) {
	if ship.Cache.MaxShields <= 0 {
		return
	}
	ship.Shields += ship.Cache.ShieldRegenPerDay * (hours / 24.0)
	if ship.Shields > ship.Cache.MaxShields {
		ship.Shields = ship.Cache.MaxShields
	}
}

func launchMissiles(gs *world.GameState, db *content.DB, attacker, target *world.Ship, hours float64) {
	if attacker.Cache.MissileRacks <= 0 {
		return
	}
	separation := attacker.PositionMkm.Dist(target.PositionMkm)
	if separation > attacker.Cache.MissileRangeMkm*2 {
		return
	}
	for rack := 0; rack < attacker.Cache.MissileRacks && rack < len(attacker.MissileReloadRemaining); rack++ {
		if attacker.MissileReloadRemaining[rack] > 0 {
			attacker.MissileReloadRemaining[rack] -= hours / 24.0
			continue
		}

		velocity := geom.Vec{}
		sol := routing.Intercept(attacker.PositionMkm, target.PositionMkm, velocity, attacker.Cache.MissileSpeedMkmPerDay, 0, attacker.Cache.MissileRangeMkm/attacker.Cache.MissileSpeedMkmPerDay)
		aim := target.PositionMkm
		if sol.HasSolution {
			aim = sol.AimPosition
		}

		missile := &world.Missile{
			Id:                gs.NewId(),
			LauncherShipId:    attacker.Id,
			LauncherFactionId: attacker.FactionId,
			TargetShipId:      target.Id,
			SystemId:          attacker.SystemId,
			PositionMkm:       attacker.PositionMkm,
			AimPosition:       aim,
			SpeedMkmPerDay:    attacker.Cache.MissileSpeedMkmPerDay,
			RemainingRangeMkm: attacker.Cache.MissileRangeMkm,
			DamageOnArrival:   attacker.Cache.MissileDamage,
		}
		gs.Missiles.Set(missile.Id, missile)
		attacker.MissileReloadRemaining[rack] = attacker.Cache.MissileReloadDays
	}
}

func advanceMissiles(gs *world.GameState, db *content.DB, hours float64) {
	for _, ship := range gs.Ships.Map() {
		regenShields(ship, hours)
	}

	for _, missileId := range gs.Missiles.SortedIds() {
		missile := gs.Missiles.MustGet(missileId)
		if target, ok := gs.Ships.Get(missile.TargetShipId); ok && target.Alive() {
			missile.AimPosition = target.PositionMkm
		}
		if overrun := missile.Advance(hours); overrun {
			gs.Missiles.Delete(missileId)
		}
	}
}

func runPointDefense(gs *world.GameState, db *content.DB, hours float64) {
	for _, shipId := range gs.Ships.SortedIds() {
		defender := gs.Ships.MustGet(shipId)
		if !defender.Alive() || defender.Cache.PointDefenseMounts <= 0 {
			continue
		}
		for _, missileId := range gs.Missiles.SortedIds() {
			missile, ok := gs.Missiles.Get(missileId)
			if !ok || missile.LauncherFactionId == defender.FactionId {
				continue
			}
			if defender.PositionMkm.Dist(missile.PositionMkm) > defender.Cache.PointDefenseRangeMkm {
				continue
			}
			gs.Missiles.Delete(missileId)
			gs.EmitFor(world.LevelInfo, "combat", "point defense intercepted an inbound missile", defender.FactionId, defender.Id, 0, defender.SystemId)
		}
	}
}

func resolveMissileImpacts(gs *world.GameState, db *content.DB) {
	for _, missileId := range gs.Missiles.SortedIds() {
		missile, ok := gs.Missiles.Get(missileId)
		if !ok || !missile.HasArrived() {
			continue
		}
		if target, ok := gs.Ships.Get(missile.TargetShipId); ok && target.Alive() {
			applyDamage(gs, target, missile.DamageOnArrival)
		}
		gs.Missiles.Delete(missileId)
	}
}

func sweepDestroyedShips(gs *world.GameState, db *content.DB) {
	var dead []ids.Id
	for _, shipId := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(shipId)
		if !ship.Alive() {
			dead = append(dead, shipId)
		}
	}

	for _, shipId := range dead {
		ship := gs.Ships.MustGet(shipId)
		minerals := scrapMinerals(db, ship.Cache.MassTons)
		if len(minerals) > 0 {
			wreck := &world.Wreck{
				Id:                  gs.NewId(),
				SystemId:            ship.SystemId,
				PositionMkm:         ship.PositionMkm,
				Minerals:            minerals,
				SourceShipFactionId: ship.FactionId,
			}
			gs.Wrecks.Set(wreck.Id, wreck)
		}
		gs.DestroyShip(shipId)
	}

	if len(dead) > 0 {
		log.Debug("combat tick destroyed ships", log.F("count", len(dead)))
	}
}

func scrapMinerals(db *content.DB, massTons float64) map[string]float64 {
	profile := db.ShipyardCostProfile()
	if profile == nil || massTons <= 0 {
		return nil
	}
	minerals := map[string]float64{}
	for resource, perTon := range profile {
		minerals[resource] = perTon * massTons * RecoveryRate
	}
	return minerals
}
