package content

import "fmt"

// RecomputeAllDesignStats recomputes the derived DesignStats cache for every
// design in db. Called after Load and after any content hot-reload; ship
// caches are refreshed separately by callers that hold GameState (see the
// sim package's reload path).
func RecomputeAllDesignStats(db *DB) error {
	for id, d := range db.Designs {
		if err := RecomputeDesignStats(db, d); err != nil {
			return fmt.Errorf("content: design %s: %w", id, err)
		}
	}
	return nil
}

// RecomputeDesignStats rebuilds d.Stats from d.Components by summing the
// referenced ComponentDefs' additive capacities. Per-ship characteristics
// are not summed: speed and fuel use come from the fastest Engine component,
// weapon and sensor range are the maximum over all components, and the
// signature multiplier is the lowest among components that set one (or are
// sensors), defaulting to 1.0.
func RecomputeDesignStats(db *DB, d *ShipDesign) error {
	var s DesignStats
	bestSpeed := 0.0
	bestSignature := 1.0
	haveSignature := false

	for _, cid := range d.Components {
		c, ok := db.Components[cid]
		if !ok {
			return fmt.Errorf("unknown component id %q", cid)
		}

		s.MassTons += c.MassTons
		s.FuelCapacity += c.FuelCapacity
		s.CargoTons += c.CargoTons
		s.MiningTonsPerDay += c.MiningTonsPerDay
		s.TroopCapacity += c.TroopCapacity
		s.MaxHp += c.HpBonus
		s.MaxShields += c.ShieldHp
		s.ShieldRegenPerDay += c.ShieldRegenPerDay
		s.WeaponDamage += c.WeaponDamage
		if c.WeaponRangeMkm > s.WeaponRangeMkm {
			s.WeaponRangeMkm = c.WeaponRangeMkm
		}
		if c.SensorRangeMkm > s.SensorRangeMkm {
			s.SensorRangeMkm = c.SensorRangeMkm
		}

		if c.Type == KindMissileRack {
			s.MissileRacks++
			s.MissileDamage = c.MissileDamage
			s.MissileRangeMkm = c.MissileRangeMkm
			s.MissileSpeedMkmPerDay = c.MissileSpeedMkmPerDay
			s.MissileReloadDays = c.MissileReloadDays
		}
		if c.Type == KindPointDefense {
			s.PointDefenseMounts++
			s.PointDefenseDamage = c.PointDefenseDamage
			s.PointDefenseRangeMkm = c.PointDefenseRangeMkm
		}

		if c.Type == KindEngine && c.SpeedKmS > bestSpeed {
			bestSpeed = c.SpeedKmS
			s.FuelUsePerMkm = c.FuelUsePerMkm
		}
		if c.SignatureMultiplier > 0 || c.Type == KindSensor {
			if !haveSignature || c.SignatureMultiplier < bestSignature {
				bestSignature = c.SignatureMultiplier
				haveSignature = true
			}
		}
	}

	s.SpeedKmS = bestSpeed
	if haveSignature {
		s.SignatureMultiplier = bestSignature
	} else {
		s.SignatureMultiplier = 1.0
	}

	d.Stats = s
	return nil
}
