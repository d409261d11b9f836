package world

import (
	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// SpeedKmSToMkmPerDay converts a design's speed_km_s stat to mkm/day, the
// unit movement orders and planners compute travel time in.
const SpeedKmSToMkmPerDay = 86.4

// AutomationFlags are the per-ship "run this planner against me when idle"
// switches the planners' ship filters read.
type AutomationFlags struct {
	AutoMine      bool `json:"auto_mine,omitempty"`
	AutoSalvage   bool `json:"auto_salvage,omitempty"`
	AutoFreight   bool `json:"auto_freight,omitempty"`
	AutoExplore   bool `json:"auto_explore,omitempty"`
	AutoColonize  bool `json:"auto_colonize,omitempty"`
	AutoTanker    bool `json:"auto_tanker,omitempty"`
	AutoTroop     bool `json:"auto_troop,omitempty"`
	AutoColonist  bool `json:"auto_colonist,omitempty"`
	AutoTerraform bool `json:"auto_terraform,omitempty"`

	HomeColonyId     ids.Id `json:"home_colony_id,omitempty"`
	AutoMineMineral  string `json:"auto_mine_mineral,omitempty"`
}

// Ship is a single vessel: its location, cached design-derived stats,
// current resource levels and automation preferences.
type Ship struct {
	Id        ids.Id `json:"id"`
	FactionId ids.Id `json:"faction_id"`
	SystemId  ids.Id `json:"system_id"`
	Name      string `json:"name"`

	PositionMkm geom.Vec `json:"position_mkm"`
	DesignId    string   `json:"design_id"`

	// Cached stats, recomputed from ContentDB on load/new_game/content
	// reload per the caches-on-entities design note.
	Cache content.DesignStats `json:"cache"`

	Hp           float64            `json:"hp"`
	Shields      float64            `json:"shields"`
	Fuel         float64            `json:"fuel"`
	CargoTons    map[string]float64 `json:"cargo_tons,omitempty"`
	Troops       int                `json:"troops,omitempty"`

	MissileReloadRemaining []float64 `json:"missile_reload_remaining,omitempty"`

	Automation AutomationFlags `json:"automation"`
}

// RecomputeCache refreshes s.Cache from db for the ship's design. Ships
// whose design has a legacy or missing field keep the zero value of that
// field's semantic type, per the open question in the design notes on
// schema drift between save versions.
func (s *Ship) RecomputeCache(db *content.DB) {
	d, ok := db.Designs[s.DesignId]
	if !ok {
		s.Cache = content.DesignStats{}
		return
	}
	s.Cache = d.Stats
	if len(s.MissileReloadRemaining) != d.Stats.MissileRacks {
		s.MissileReloadRemaining = make([]float64, d.Stats.MissileRacks)
	}
}

// CargoTotal sums every mineral's tons currently aboard.
func (s *Ship) CargoTotal() float64 {
	total := 0.0
	for _, v := range s.CargoTons {
		total += v
	}
	return total
}

// CargoFree returns remaining cargo capacity in tons.
func (s *Ship) CargoFree() float64 {
	free := s.Cache.CargoTons - s.CargoTotal()
	if free < 0 {
		return 0
	}
	return free
}

// AddCargo adds tons of mineral to the ship's hold, initializing the map
// lazily.
func (s *Ship) AddCargo(mineral string, tons float64) {
	if tons <= 0 {
		return
	}
	if s.CargoTons == nil {
		s.CargoTons = map[string]float64{}
	}
	s.CargoTons[mineral] += tons
}

// RemoveCargo removes up to tons of mineral, returning the amount actually
// removed.
func (s *Ship) RemoveCargo(mineral string, tons float64) float64 {
	have := s.CargoTons[mineral]
	take := tons
	if take > have {
		take = have
	}
	if take <= 0 {
		return 0
	}
	s.CargoTons[mineral] -= take
	if s.CargoTons[mineral] <= 1e-9 {
		delete(s.CargoTons, mineral)
	}
	return take
}

// Alive reports whether the ship's hp is still above zero.
func (s *Ship) Alive() bool { return s.Hp > 0 }
