package world

import (
	"encoding/json"
	"fmt"

	"github.com/nebula4x/nebula4x/geom"
	"github.com/nebula4x/nebula4x/ids"
)

// OrderType discriminates the Order sum type. Orders serialize to JSON as
// {"type": "...", ...fields}, matching every other tagged union in the save
// format.
type OrderType string

const (
	OrderMoveToPoint        OrderType = "MoveToPoint"
	OrderMoveToBody         OrderType = "MoveToBody"
	OrderTravelViaJump      OrderType = "TravelViaJump"
	OrderAttackShip         OrderType = "AttackShip"
	OrderMineBody           OrderType = "MineBody"
	OrderSalvageWreck       OrderType = "SalvageWreck"
	OrderLoadMineral        OrderType = "LoadMineral"
	OrderUnloadMineral      OrderType = "UnloadMineral"
	OrderOrbitBody          OrderType = "OrbitBody"
	OrderWaitDays           OrderType = "WaitDays"
	OrderTransferCargo      OrderType = "TransferCargoToShip"
	OrderTransferFuel       OrderType = "TransferFuelToShip"
	OrderTransferTroops     OrderType = "TransferTroopsToShip"
	OrderEscortShip         OrderType = "EscortShip"
	OrderSurveyJumpPoint    OrderType = "SurveyJumpPoint"
	OrderScrapShip          OrderType = "ScrapShip"
)

// Order is the tagged-union interface every queued ship instruction
// implements. Order execution (see the sim package) is a single switch on
// Kind() per ship per tick, per the engine's no-inheritance design note.
type Order interface {
	Kind() OrderType
}

// --- Variants ---

type MoveToPointOrder struct {
	Target geom.Vec `json:"target"`
}

func (MoveToPointOrder) Kind() OrderType { return OrderMoveToPoint }

type MoveToBodyOrder struct {
	BodyId ids.Id `json:"body_id"`
}

func (MoveToBodyOrder) Kind() OrderType { return OrderMoveToBody }

type TravelViaJumpOrder struct {
	JumpId ids.Id `json:"jump_id"`
}

func (TravelViaJumpOrder) Kind() OrderType { return OrderTravelViaJump }

type AttackShipOrder struct {
	TargetShipId ids.Id `json:"target_ship_id"`
}

func (AttackShipOrder) Kind() OrderType { return OrderAttackShip }

type MineBodyOrder struct {
	BodyId            ids.Id `json:"body_id"`
	Mineral           string `json:"mineral"`
	StopWhenCargoFull bool   `json:"stop_when_cargo_full"`
}

func (MineBodyOrder) Kind() OrderType { return OrderMineBody }

type SalvageWreckOrder struct {
	WreckId ids.Id `json:"wreck_id"`
}

func (SalvageWreckOrder) Kind() OrderType { return OrderSalvageWreck }

type LoadMineralOrder struct {
	ColonyId ids.Id  `json:"colony_id"`
	Mineral  string  `json:"mineral"` // empty = any
	Tons     float64 `json:"tons"`    // 0 = max
}

func (LoadMineralOrder) Kind() OrderType { return OrderLoadMineral }

type UnloadMineralOrder struct {
	ColonyId ids.Id  `json:"colony_id"`
	Mineral  string  `json:"mineral"`
	Tons     float64 `json:"tons"`
}

func (UnloadMineralOrder) Kind() OrderType { return OrderUnloadMineral }

type OrbitBodyOrder struct {
	BodyId       ids.Id  `json:"body_id"`
	DurationDays float64 `json:"duration_days"` // negative = forever
	ElapsedDays  float64 `json:"elapsed_days"`
}

func (OrbitBodyOrder) Kind() OrderType { return OrderOrbitBody }

type WaitDaysOrder struct {
	DurationDays float64 `json:"duration_days"`
	ElapsedDays  float64 `json:"elapsed_days"`
}

func (WaitDaysOrder) Kind() OrderType { return OrderWaitDays }

type TransferCargoToShipOrder struct {
	TargetShipId ids.Id  `json:"target_ship_id"`
	Mineral      string  `json:"mineral"`
	Tons         float64 `json:"tons"`
}

func (TransferCargoToShipOrder) Kind() OrderType { return OrderTransferCargo }

type TransferFuelToShipOrder struct {
	TargetShipId ids.Id  `json:"target_ship_id"`
	Tons         float64 `json:"tons"`
}

func (TransferFuelToShipOrder) Kind() OrderType { return OrderTransferFuel }

type TransferTroopsToShipOrder struct {
	TargetShipId ids.Id `json:"target_ship_id"`
	Troops       int    `json:"troops"`
}

func (TransferTroopsToShipOrder) Kind() OrderType { return OrderTransferTroops }

type EscortShipOrder struct {
	TargetShipId ids.Id `json:"target_ship_id"`
}

func (EscortShipOrder) Kind() OrderType { return OrderEscortShip }

type SurveyJumpPointOrder struct {
	JumpId      ids.Id  `json:"jump_id"`
	ProgressRp  float64 `json:"progress"`
}

func (SurveyJumpPointOrder) Kind() OrderType { return OrderSurveyJumpPoint }

type ScrapShipOrder struct {
	ColonyId ids.Id `json:"colony_id"`
}

func (ScrapShipOrder) Kind() OrderType { return OrderScrapShip }

// --- Tagged union (de)serialization ---

// MarshalOrder renders a single Order as its {"type": "...", ...} envelope.
func MarshalOrder(o Order) ([]byte, error) {
	payload, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, err
	}
	typeJSON, _ := json.Marshal(o.Kind())
	m["type"] = typeJSON
	return json.Marshal(m)
}

// UnmarshalOrder decodes a single {"type": "...", ...} envelope into the
// matching Order variant.
func UnmarshalOrder(data []byte) (Order, error) {
	var head struct {
		Type OrderType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case OrderMoveToPoint:
		var o MoveToPointOrder
		return o, json.Unmarshal(data, &o)
	case OrderMoveToBody:
		var o MoveToBodyOrder
		return o, json.Unmarshal(data, &o)
	case OrderTravelViaJump:
		var o TravelViaJumpOrder
		return o, json.Unmarshal(data, &o)
	case OrderAttackShip:
		var o AttackShipOrder
		return o, json.Unmarshal(data, &o)
	case OrderMineBody:
		var o MineBodyOrder
		return o, json.Unmarshal(data, &o)
	case OrderSalvageWreck:
		var o SalvageWreckOrder
		return o, json.Unmarshal(data, &o)
	case OrderLoadMineral:
		var o LoadMineralOrder
		return o, json.Unmarshal(data, &o)
	case OrderUnloadMineral:
		var o UnloadMineralOrder
		return o, json.Unmarshal(data, &o)
	case OrderOrbitBody:
		var o OrbitBodyOrder
		return o, json.Unmarshal(data, &o)
	case OrderWaitDays:
		var o WaitDaysOrder
		return o, json.Unmarshal(data, &o)
	case OrderTransferCargo:
		var o TransferCargoToShipOrder
		return o, json.Unmarshal(data, &o)
	case OrderTransferFuel:
		var o TransferFuelToShipOrder
		return o, json.Unmarshal(data, &o)
	case OrderTransferTroops:
		var o TransferTroopsToShipOrder
		return o, json.Unmarshal(data, &o)
	case OrderEscortShip:
		var o EscortShipOrder
		return o, json.Unmarshal(data, &o)
	case OrderSurveyJumpPoint:
		var o SurveyJumpPointOrder
		return o, json.Unmarshal(data, &o)
	case OrderScrapShip:
		var o ScrapShipOrder
		return o, json.Unmarshal(data, &o)
	default:
		return nil, fmt.Errorf("world: unknown order type %q", head.Type)
	}
}

// OrderQueue is a []Order that marshals/unmarshals as a JSON array of tagged
// envelopes.
type OrderQueue []Order

func (q OrderQueue) MarshalJSON() ([]byte, error) {
	envs := make([]json.RawMessage, len(q))
	for i, o := range q {
		b, err := MarshalOrder(o)
		if err != nil {
			return nil, err
		}
		envs[i] = b
	}
	return json.Marshal(envs)
}

func (q *OrderQueue) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(OrderQueue, 0, len(raws))
	for _, r := range raws {
		o, err := UnmarshalOrder(r)
		if err != nil {
			return err
		}
		out = append(out, o)
	}
	*q = out
	return nil
}

// ShipOrders is the per-ship order state: the active queue, optional repeat
// behavior, and a suspended slot that Suspend/Resume swap with the live
// queue.
type ShipOrders struct {
	Queue               OrderQueue `json:"queue"`
	Repeat              bool       `json:"repeat"`
	RepeatTemplate       OrderQueue `json:"repeat_template"`
	RepeatCountRemaining int        `json:"repeat_count_remaining"` // -1 = infinite

	Suspended               bool       `json:"suspended"`
	SuspendedQueue          OrderQueue `json:"suspended_queue,omitempty"`
	SuspendedRepeat         bool       `json:"suspended_repeat,omitempty"`
	SuspendedRepeatTemplate OrderQueue `json:"suspended_repeat_template,omitempty"`
}

// Suspend captures the current queue/repeat state into the suspended slot
// and clears the live queue, so automation can take the ship over and later
// Resume restores exactly what the player had queued.
func (so *ShipOrders) Suspend() {
	if so.Suspended {
		return
	}
	so.SuspendedQueue = so.Queue
	so.SuspendedRepeat = so.Repeat
	so.SuspendedRepeatTemplate = so.RepeatTemplate
	so.Suspended = true
	so.Queue = nil
	so.Repeat = false
	so.RepeatTemplate = nil
}

// Resume restores a previously suspended queue/repeat state.
func (so *ShipOrders) Resume() {
	if !so.Suspended {
		return
	}
	so.Queue = so.SuspendedQueue
	so.Repeat = so.SuspendedRepeat
	so.RepeatTemplate = so.SuspendedRepeatTemplate
	so.Suspended = false
	so.SuspendedQueue = nil
	so.SuspendedRepeat = false
	so.SuspendedRepeatTemplate = nil
}

// CloneQueue deep-copies a queue of order values (all Order variants are
// already value types, so a slice copy suffices).
func CloneQueue(q OrderQueue) OrderQueue {
	if q == nil {
		return nil
	}
	out := make(OrderQueue, len(q))
	copy(out, q)
	return out
}
