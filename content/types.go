// Package content implements ContentDB: the immutable-at-tick catalog of
// resources, components, ship designs, installations and techs that a
// scenario is built from. ContentDB is loaded from JSON with include/overlay
// merge semantics (see Load) and validated before acceptance (see Validate).
package content

// ComponentKind enumerates the component archetypes a ComponentDef can be.
type ComponentKind string

const (
	KindEngine       ComponentKind = "Engine"
	KindCargo        ComponentKind = "Cargo"
	KindSensor       ComponentKind = "Sensor"
	KindReactor      ComponentKind = "Reactor"
	KindWeapon       ComponentKind = "Weapon"
	KindArmor        ComponentKind = "Armor"
	KindMissileRack  ComponentKind = "MissileRack"
	KindPointDefense ComponentKind = "PointDefense"
	KindShield       ComponentKind = "Shield"
	KindTroopBay     ComponentKind = "TroopBay"
	KindColonyModule ComponentKind = "ColonyModule"
	KindFuel         ComponentKind = "Fuel"
	KindUnknown      ComponentKind = "Unknown"
)

// DesignRole enumerates the coarse roles a ShipDesign can fill, used by
// planners to match ships to work.
type DesignRole string

const (
	RoleFreighter DesignRole = "Freighter"
	RoleSurveyor  DesignRole = "Surveyor"
	RoleCombatant DesignRole = "Combatant"
	RoleUnknown   DesignRole = "Unknown"
)

// Resource is a keyed, mineable-or-not material tracked in stockpiles.
// Fuel is a manufactured, non-mineable resource like any other.
type Resource struct {
	Id                      string `json:"id"`
	Name                    string `json:"name"`
	Category                string `json:"category"`
	Mineable                bool   `json:"mineable"`
	SalvageResearchRPPerTon float64 `json:"salvage_research_rp_per_ton"`
}

// ComponentDef is a named, purchasable ship component. Every numeric stat is
// required to be non-negative by Validate; SignatureMultiplier additionally
// must lie in [0,1].
type ComponentDef struct {
	Id   string        `json:"id"`
	Type ComponentKind `json:"type"`

	MassTons float64 `json:"mass_tons"`

	SpeedKmS          float64 `json:"speed_km_s"`
	FuelUsePerMkm     float64 `json:"fuel_use_per_mkm"`
	FuelCapacity      float64 `json:"fuel_capacity"`
	CargoTons         float64 `json:"cargo_tons"`
	MiningTonsPerDay  float64 `json:"mining_tons_per_day"`
	SensorRangeMkm    float64 `json:"sensor_range_mkm"`
	SignatureMultiplier float64 `json:"signature_multiplier"`
	ColonyCapacity    float64 `json:"colony_capacity"`
	TroopCapacity     float64 `json:"troop_capacity"`
	PowerOutput       float64 `json:"power_output"`
	PowerUse          float64 `json:"power_use"`

	WeaponDamage    float64 `json:"weapon_damage"`
	WeaponRangeMkm  float64 `json:"weapon_range_mkm"`

	MissileDamage       float64 `json:"missile_damage"`
	MissileRangeMkm     float64 `json:"missile_range_mkm"`
	MissileSpeedMkmPerDay float64 `json:"missile_speed_mkm_per_day"`
	MissileReloadDays   float64 `json:"missile_reload_days"`

	PointDefenseDamage   float64 `json:"point_defense_damage"`
	PointDefenseRangeMkm float64 `json:"point_defense_range_mkm"`

	HpBonus          float64 `json:"hp_bonus"`
	ShieldHp         float64 `json:"shield_hp"`
	ShieldRegenPerDay float64 `json:"shield_regen_per_day"`
}

// ShipDesign names a list of component ids and caches their aggregated
// stats. The cache is recomputed by RecomputeDesignStats whenever the underlying
// ComponentDefs may have changed (initial load, content hot-reload).
type ShipDesign struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	Role       DesignRole `json:"role"`
	Components []string   `json:"components"`

	// Overlay-only patch fields; consumed by the loader and cleared.
	ComponentsAdd    []string `json:"components_add,omitempty"`
	ComponentsRemove []string `json:"components_remove,omitempty"`

	// Derived cache, recomputed from Components by RecomputeDesignStats.
	Stats DesignStats `json:"stats"`
}

// DesignStats is the cache of aggregate stats derived from a design's
// component list. It is never hand-authored in content JSON.
type DesignStats struct {
	MassTons            float64 `json:"mass_tons"`
	SpeedKmS            float64 `json:"speed_km_s"`
	FuelUsePerMkm       float64 `json:"fuel_use_per_mkm"`
	FuelCapacity        float64 `json:"fuel_capacity"`
	CargoTons           float64 `json:"cargo_tons"`
	MiningTonsPerDay    float64 `json:"mining_tons_per_day"`
	SensorRangeMkm      float64 `json:"sensor_range_mkm"`
	SignatureMultiplier float64 `json:"signature_multiplier"`
	TroopCapacity       float64 `json:"troop_capacity"`
	MaxHp               float64 `json:"max_hp"`
	MaxShields          float64 `json:"max_shields"`
	ShieldRegenPerDay   float64 `json:"shield_regen_per_day"`

	WeaponDamage   float64 `json:"weapon_damage"`
	WeaponRangeMkm float64 `json:"weapon_range_mkm"`

	MissileRacks          int     `json:"missile_racks"`
	MissileDamage         float64 `json:"missile_damage"`
	MissileRangeMkm       float64 `json:"missile_range_mkm"`
	MissileSpeedMkmPerDay float64 `json:"missile_speed_mkm_per_day"`
	MissileReloadDays     float64 `json:"missile_reload_days"`

	PointDefenseMounts   int     `json:"point_defense_mounts"`
	PointDefenseDamage   float64 `json:"point_defense_damage"`
	PointDefenseRangeMkm float64 `json:"point_defense_range_mkm"`
}

// InstallationDef is a colony or ground building. Production/consumption are
// resource-id to tons-per-day maps; role-specific capacities are zero unless
// the installation performs that role.
type InstallationDef struct {
	Id   string `json:"id"`
	Name string `json:"name"`

	ProducesPerDay map[string]float64 `json:"produces_per_day"`
	ConsumesPerDay map[string]float64 `json:"consumes_per_day"`

	ConstructionPointsPerDay   float64            `json:"construction_points_per_day"`
	MiningTonsPerDay           float64            `json:"mining_tons_per_day"`
	BuildRateTonsPerDay        float64            `json:"build_rate_tons_per_day"`
	BuildCostsPerTon           map[string]float64 `json:"build_costs_per_ton"`
	SensorRangeMkm             float64            `json:"sensor_range_mkm"`
	WeaponDamage               float64            `json:"weapon_damage"`
	WeaponRangeMkm             float64            `json:"weapon_range_mkm"`
	ResearchPointsPerDay       float64            `json:"research_points_per_day"`
	TerraformingPointsPerDay   float64            `json:"terraforming_points_per_day"`
	TroopTrainingPointsPerDay  float64            `json:"troop_training_points_per_day"`
	HabitationCapacity         float64            `json:"habitation_capacity"`
	FortificationPoints        float64            `json:"fortification_points"`
}

// TechEffect is one unlock granted when a tech completes.
type TechEffect struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Effect type constants recognized by the research tick's unlock step.
const (
	EffectUnlockComponent    = "unlock_component"
	EffectUnlockInstallation = "unlock_installation"
)

// TechDef is a researchable technology: a cost, a prerequisite set (must be
// acyclic) and a list of unlock effects applied on completion.
type TechDef struct {
	Id      string       `json:"id"`
	Name    string       `json:"name"`
	Cost    float64      `json:"cost"`
	Prereqs []string     `json:"prereqs"`
	Effects []TechEffect `json:"effects"`
}

// DB is the immutable-at-tick content catalog. All maps are keyed by the
// entity's own Id field.
type DB struct {
	Resources     map[string]*Resource         `json:"resources"`
	Components    map[string]*ComponentDef     `json:"components"`
	Designs       map[string]*ShipDesign       `json:"designs"`
	Installations map[string]*InstallationDef  `json:"installations"`
	Techs         map[string]*TechDef          `json:"techs"`
}

// New returns an empty, ready-to-populate DB.
func New() *DB {
	return &DB{
		Resources:     map[string]*Resource{},
		Components:    map[string]*ComponentDef{},
		Designs:       map[string]*ShipDesign{},
		Installations: map[string]*InstallationDef{},
		Techs:         map[string]*TechDef{},
	}
}
