package content

import (
	"fmt"
	"sort"
)

// Validate returns a sorted list of human-readable issues found in db. It
// never mutates db. Callers (e.g. hot reload) may choose to accept a DB with
// warnings; Load itself does not call Validate.
func Validate(db *DB) []string {
	var issues []string

	for id, r := range db.Resources {
		if id == "" {
			issues = append(issues, "resource: empty id")
			continue
		}
		if r.Id != id {
			issues = append(issues, fmt.Sprintf("resource %q: key/id mismatch (id=%q)", id, r.Id))
		}
		if r.SalvageResearchRPPerTon < 0 {
			issues = append(issues, fmt.Sprintf("resource %q: salvage_research_rp_per_ton is negative", id))
		}
	}

	for id, c := range db.Components {
		if id == "" {
			issues = append(issues, "component: empty id")
			continue
		}
		if c.Id != id {
			issues = append(issues, fmt.Sprintf("component %q: key/id mismatch (id=%q)", id, c.Id))
		}
		issues = append(issues, validateNonNegative(fmt.Sprintf("component %q", id), map[string]float64{
			"mass_tons":                 c.MassTons,
			"speed_km_s":                c.SpeedKmS,
			"fuel_use_per_mkm":          c.FuelUsePerMkm,
			"fuel_capacity":             c.FuelCapacity,
			"cargo_tons":                c.CargoTons,
			"mining_tons_per_day":       c.MiningTonsPerDay,
			"sensor_range_mkm":          c.SensorRangeMkm,
			"colony_capacity":           c.ColonyCapacity,
			"troop_capacity":            c.TroopCapacity,
			"power_output":              c.PowerOutput,
			"power_use":                 c.PowerUse,
			"weapon_damage":             c.WeaponDamage,
			"weapon_range_mkm":          c.WeaponRangeMkm,
			"missile_damage":            c.MissileDamage,
			"missile_range_mkm":         c.MissileRangeMkm,
			"missile_speed_mkm_per_day": c.MissileSpeedMkmPerDay,
			"missile_reload_days":       c.MissileReloadDays,
			"point_defense_damage":      c.PointDefenseDamage,
			"point_defense_range_mkm":   c.PointDefenseRangeMkm,
			"hp_bonus":                  c.HpBonus,
			"shield_hp":                 c.ShieldHp,
			"shield_regen_per_day":      c.ShieldRegenPerDay,
		})...)
		if c.SignatureMultiplier < 0 || c.SignatureMultiplier > 1 {
			issues = append(issues, fmt.Sprintf("component %q: signature_multiplier %.3f out of [0,1]", id, c.SignatureMultiplier))
		}
	}

	for id, d := range db.Designs {
		if id == "" {
			issues = append(issues, "design: empty id")
			continue
		}
		if d.Id != id {
			issues = append(issues, fmt.Sprintf("design %q: key/id mismatch (id=%q)", id, d.Id))
		}
		for _, cid := range d.Components {
			if _, ok := db.Components[cid]; !ok {
				issues = append(issues, fmt.Sprintf("design %q: references unknown component %q", id, cid))
			}
		}
	}

	for id, inst := range db.Installations {
		if id == "" {
			issues = append(issues, "installation: empty id")
			continue
		}
		if inst.Id != id {
			issues = append(issues, fmt.Sprintf("installation %q: key/id mismatch (id=%q)", id, inst.Id))
		}
		for rid, v := range inst.ProducesPerDay {
			if v < 0 {
				issues = append(issues, fmt.Sprintf("installation %q: produces_per_day[%s] is negative", id, rid))
			}
			if _, ok := db.Resources[rid]; !ok {
				issues = append(issues, fmt.Sprintf("installation %q: produces_per_day references unknown resource %q", id, rid))
			}
		}
		for rid, v := range inst.ConsumesPerDay {
			if v < 0 {
				issues = append(issues, fmt.Sprintf("installation %q: consumes_per_day[%s] is negative", id, rid))
			}
			if _, ok := db.Resources[rid]; !ok {
				issues = append(issues, fmt.Sprintf("installation %q: consumes_per_day references unknown resource %q", id, rid))
			}
		}
		for rid, v := range inst.BuildCostsPerTon {
			if v < 0 {
				issues = append(issues, fmt.Sprintf("installation %q: build_costs_per_ton[%s] is negative", id, rid))
			}
			if _, ok := db.Resources[rid]; !ok {
				issues = append(issues, fmt.Sprintf("installation %q: build_costs_per_ton references unknown resource %q", id, rid))
			}
		}
		issues = append(issues, validateNonNegative(fmt.Sprintf("installation %q", id), map[string]float64{
			"construction_points_per_day":   inst.ConstructionPointsPerDay,
			"mining_tons_per_day":           inst.MiningTonsPerDay,
			"build_rate_tons_per_day":       inst.BuildRateTonsPerDay,
			"sensor_range_mkm":              inst.SensorRangeMkm,
			"weapon_damage":                 inst.WeaponDamage,
			"weapon_range_mkm":              inst.WeaponRangeMkm,
			"research_points_per_day":       inst.ResearchPointsPerDay,
			"terraforming_points_per_day":   inst.TerraformingPointsPerDay,
			"troop_training_points_per_day": inst.TroopTrainingPointsPerDay,
			"habitation_capacity":           inst.HabitationCapacity,
			"fortification_points":          inst.FortificationPoints,
		})...)
	}

	for id, t := range db.Techs {
		if id == "" {
			issues = append(issues, "tech: empty id")
			continue
		}
		if t.Id != id {
			issues = append(issues, fmt.Sprintf("tech %q: key/id mismatch (id=%q)", id, t.Id))
		}
		if t.Cost < 0 {
			issues = append(issues, fmt.Sprintf("tech %q: cost is negative", id))
		}
		for _, pr := range t.Prereqs {
			if _, ok := db.Techs[pr]; !ok {
				issues = append(issues, fmt.Sprintf("tech %q: unknown prereq %q", id, pr))
			}
		}
		for _, eff := range t.Effects {
			switch eff.Type {
			case EffectUnlockComponent:
				if _, ok := db.Components[eff.Value]; !ok {
					issues = append(issues, fmt.Sprintf("tech %q: unlock_component targets unknown component %q", id, eff.Value))
				}
			case EffectUnlockInstallation:
				if _, ok := db.Installations[eff.Value]; !ok {
					issues = append(issues, fmt.Sprintf("tech %q: unlock_installation targets unknown installation %q", id, eff.Value))
				}
			default:
				issues = append(issues, fmt.Sprintf("tech %q: effect has unrecognized type %q", id, eff.Type))
			}
		}
	}

	if cycle := findTechCycle(db); cycle != "" {
		issues = append(issues, cycle)
	}

	sort.Strings(issues)
	return issues
}

func validateNonNegative(prefix string, fields map[string]float64) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	var out []string
	for _, name := range names {
		if fields[name] < 0 {
			out = append(out, fmt.Sprintf("%s: %s is negative", prefix, name))
		}
	}
	return out
}

// findTechCycle returns a description of the first prereq cycle found, or ""
// if the prereq graph is acyclic.
func findTechCycle(db *DB) string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(db.Techs))
	ids := make([]string, 0, len(db.Techs))
	for id := range db.Techs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var visit func(id string, path []string) string
	visit = func(id string, path []string) string {
		color[id] = gray
		t, ok := db.Techs[id]
		if ok {
			prereqs := append([]string{}, t.Prereqs...)
			sort.Strings(prereqs)
			for _, pr := range prereqs {
				if _, exists := db.Techs[pr]; !exists {
					continue
				}
				switch color[pr] {
				case white:
					if msg := visit(pr, append(path, id)); msg != "" {
						return msg
					}
				case gray:
					return fmt.Sprintf("tech prereq cycle: %s -> %s", joinPath(append(path, id)), pr)
				}
			}
		}
		color[id] = black
		return ""
	}

	for _, id := range ids {
		if color[id] == white {
			if msg := visit(id, nil); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func joinPath(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += " -> "
		}
		out += p
	}
	return out
}
