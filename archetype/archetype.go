// Package archetype defines named starting-condition templates for a new
// faction: homeworld habitability targets, starting population and fleet
// composition. Only the predefined archetypes exist; the package has no
// builder or validation for custom ones.
package archetype

import "github.com/nebula4x/nebula4x/rng"

// PrimaryTrait is the dominant strategic leaning a predefined archetype
// expresses. It is descriptive only: no other package reads it.
type PrimaryTrait string

const (
	TraitBalanced     PrimaryTrait = "Balanced"
	TraitIndustrious  PrimaryTrait = "Industrious"
	TraitMilitant     PrimaryTrait = "Militant"
	TraitExpansionist PrimaryTrait = "Expansionist"
	TraitStealthy     PrimaryTrait = "Stealthy"
)

// Habitability is the environment a homeworld should be generated near:
// center plus half-width tolerance, mirroring how Body.TargetTempK and
// TargetAtmAtm already express a colony's ideal environment.
type Habitability struct {
	TempCenterK  float64
	TempWidthK   float64
	AtmCenterAtm float64
	AtmWidthAtm  float64
}

// Archetype is a complete starting-condition template for one faction.
type Archetype struct {
	Name    string
	Primary PrimaryTrait

	HomeHabitability Habitability

	StartingPopulationMillions float64
	IndustryMultiplier         float64
	StartingCombatantCount     int
	StartingFreighterCount     int
}

// Score returns how well envK/envAtm matches a's home habitability
// preference, in [0,1], 1 being a perfect match. Used to pick or rank
// candidate homeworld bodies for a faction of this archetype.
func (a Archetype) Score(envTempK, envAtmAtm float64) float64 {
	tempScore := toleranceScore(envTempK, a.HomeHabitability.TempCenterK, a.HomeHabitability.TempWidthK)
	atmScore := toleranceScore(envAtmAtm, a.HomeHabitability.AtmCenterAtm, a.HomeHabitability.AtmWidthAtm)
	return tempScore * atmScore
}

func toleranceScore(value, center, width float64) float64 {
	if width <= 0 {
		if value == center {
			return 1
		}
		return 0
	}
	dist := value - center
	if dist < 0 {
		dist = -dist
	}
	if dist >= width {
		return 0
	}
	return 1 - dist/width
}

// Balanced is the default, moderate-everything archetype.
func Balanced() Archetype {
	return Archetype{
		Name:                       "Balanced",
		Primary:                    TraitBalanced,
		HomeHabitability:           Habitability{TempCenterK: 288, TempWidthK: 40, AtmCenterAtm: 1, AtmWidthAtm: 0.5},
		StartingPopulationMillions: 500,
		IndustryMultiplier:         1.0,
		StartingCombatantCount:     1,
		StartingFreighterCount:     1,
	}
}

// Industrious favors economic output over military strength.
func Industrious() Archetype {
	return Archetype{
		Name:                       "Industrious",
		Primary:                    TraitIndustrious,
		HomeHabitability:           Habitability{TempCenterK: 290, TempWidthK: 30, AtmCenterAtm: 1.1, AtmWidthAtm: 0.4},
		StartingPopulationMillions: 650,
		IndustryMultiplier:         1.3,
		StartingCombatantCount:     0,
		StartingFreighterCount:     2,
	}
}

// Militant starts with a stronger home fleet and a smaller colony.
func Militant() Archetype {
	return Archetype{
		Name:                       "Militant",
		Primary:                    TraitMilitant,
		HomeHabitability:           Habitability{TempCenterK: 280, TempWidthK: 35, AtmCenterAtm: 0.9, AtmWidthAtm: 0.4},
		StartingPopulationMillions: 350,
		IndustryMultiplier:         0.9,
		StartingCombatantCount:     3,
		StartingFreighterCount:     0,
	}
}

// Expansionist tolerates a much wider habitability band in exchange for
// weaker starting industry, reflecting an emphasis on claiming territory
// over any one colony's output.
func Expansionist() Archetype {
	return Archetype{
		Name:                       "Expansionist",
		Primary:                    TraitExpansionist,
		HomeHabitability:           Habitability{TempCenterK: 285, TempWidthK: 80, AtmCenterAtm: 1.0, AtmWidthAtm: 0.9},
		StartingPopulationMillions: 400,
		IndustryMultiplier:         0.85,
		StartingCombatantCount:     1,
		StartingFreighterCount:     1,
	}
}

// Stealthy starts with a narrow habitability band and a small but capable
// fleet, favoring survivability over raw output.
func Stealthy() Archetype {
	return Archetype{
		Name:                       "Stealthy",
		Primary:                    TraitStealthy,
		HomeHabitability:           Habitability{TempCenterK: 270, TempWidthK: 25, AtmCenterAtm: 0.8, AtmWidthAtm: 0.3},
		StartingPopulationMillions: 300,
		IndustryMultiplier:         1.0,
		StartingCombatantCount:     2,
		StartingFreighterCount:     0,
	}
}

// All returns every predefined archetype, in a fixed display order.
func All() []Archetype {
	return []Archetype{Balanced(), Industrious(), Militant(), Expansionist(), Stealthy()}
}

// RandomWithSeed deterministically picks one of the predefined archetypes
// using seed, for procedural scenario generation.
func RandomWithSeed(seed uint64) Archetype {
	all := All()
	source := rng.New(seed)
	return all[source.IntN(len(all))]
}
