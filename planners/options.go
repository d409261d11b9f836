// Package planners implements the pure, side-effect-free logistics planners
// the automation tick runs against idle, automation-flagged ships: they read
// GameState and ContentDB and return an Assignment list. Applying a plan is
// the caller's job (see Apply) so the planners stay safe to invoke from a UI
// preview without perturbing the simulation, per the engine's purity design
// note.
package planners

import (
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/world"
)

// Options are the knobs shared by most planners. A zero Options is valid and
// means "no extra restriction".
type Options struct {
	RequireIdle          bool
	ExcludeFleetShips     bool
	RestrictToDiscovered  bool
	AvoidHostileSystems   bool

	MaxShips     int // 0 = unlimited
	MaxBodies    int // 0 = unlimited
	MaxContracts int // 0 = unlimited
	MinTons      float64
}

// Assignment is one planner's proposed work item: give shipId this list of
// orders. Score and EtaDays are diagnostic, surfaced to UI previews and used
// internally by greedy assignment to break ties.
type Assignment struct {
	ShipId  ids.Id
	Orders  []world.Order
	Score   float64
	EtaDays float64
	Note    string
}

// Apply appends each assignment's orders to its ship's live queue. Plans are
// pure; Apply is the one place a planner's output touches GameState.
func Apply(gs *world.GameState, assignments []Assignment) {
	for _, a := range assignments {
		so := gs.OrdersFor(a.ShipId)
		for _, o := range a.Orders {
			so.Queue = append(so.Queue, o)
		}
	}
}

// eligibleShips returns the automation-flagged ships in factionId's fleet
// that satisfy opts, in ascending id order for deterministic scoring.
func eligibleShips(gs *world.GameState, factionId ids.Id, opts Options, want func(*world.Ship) bool) []*world.Ship {
	var out []*world.Ship
	for _, shipId := range gs.Ships.SortedIds() {
		ship := gs.Ships.MustGet(shipId)
		if ship.FactionId != factionId || !ship.Alive() || !want(ship) {
			continue
		}
		if opts.RequireIdle {
			if so, ok := gs.ShipOrders[shipId]; ok && len(so.Queue) > 0 {
				continue
			}
		}
		if opts.ExcludeFleetShips {
			if _, inFleet := gs.FleetForShip(shipId); inFleet {
				continue
			}
		}
		if opts.AvoidHostileSystems && systemHasHostiles(gs, ship.SystemId, factionId) {
			continue
		}
		out = append(out, ship)
		if opts.MaxShips > 0 && len(out) >= opts.MaxShips {
			break
		}
	}
	return out
}

func systemHasHostiles(gs *world.GameState, systemId, factionId ids.Id) bool {
	sys, ok := gs.Systems.Get(systemId)
	if !ok {
		return false
	}
	for _, shipId := range sys.ShipIds {
		ship, ok := gs.Ships.Get(shipId)
		if ok && ship.FactionId != factionId {
			return true
		}
	}
	return false
}
