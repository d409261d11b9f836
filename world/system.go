package world

import (
	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// StarSystem is a node in the jump-point graph and the container for the
// bodies and ships physically located within it.
type StarSystem struct {
	Id         ids.Id    `json:"id"`
	Name       string    `json:"name"`
	GalaxyPos  geom.Vec  `json:"galaxy_pos"`
	RegionId   ids.Id    `json:"region_id"`

	BodyIds      []ids.Id `json:"bodies"`
	ShipIds      []ids.Id `json:"ships"`
	JumpPointIds []ids.Id `json:"jump_points"`

	NebulaDensity float64 `json:"nebula_density"`

	// Storm pulse parameters: a recurring sensor/signature disturbance.
	StormPeriodDays float64 `json:"storm_period_days"`
	StormPhaseDays  float64 `json:"storm_phase_days"`
	StormStrength   float64 `json:"storm_strength"`
}

// RemoveShip removes shipId from the system's ship list, a no-op if absent.
func (s *StarSystem) RemoveShip(shipId ids.Id) {
	s.ShipIds = removeId(s.ShipIds, shipId)
}

// AddShip appends shipId to the system's ship list if not already present.
func (s *StarSystem) AddShip(shipId ids.Id) {
	for _, id := range s.ShipIds {
		if id == shipId {
			return
		}
	}
	s.ShipIds = append(s.ShipIds, shipId)
}

func removeId(list []ids.Id, target ids.Id) []ids.Id {
	out := list[:0]
	for _, id := range list {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// JumpPoint is a bidirectional link between two systems' positions.
// Traversal is instantaneous once a ship is within jump radius.
type JumpPoint struct {
	Id             ids.Id   `json:"id"`
	SystemId       ids.Id   `json:"system_id"`
	PositionMkm    geom.Vec `json:"position_mkm"`
	LinkedJumpId   ids.Id   `json:"linked_jump_id"`

	// SurveyProgress maps faction id to accumulated survey progress (RP-days
	// equivalent). A faction that has fully surveyed this jump point can see
	// its link.
	SurveyProgress map[ids.Id]float64 `json:"survey_progress,omitempty"`

	// SurveyedBy is the set of factions that have completed the survey. The
	// contract board reads it; route planning does not.
	SurveyedBy map[ids.Id]bool `json:"surveyed_by,omitempty"`
}
