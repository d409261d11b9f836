package planners

import (
	"sort"

	"github.com/nebula4x/nebula4x/content"
	"github.com/nebula4x/nebula4x/ids"
	"github.com/nebula4x/nebula4x/routing"
	"github.com/nebula4x/nebula4x/world"
)

// RiskPenalty and the per-hop overhead weight the contract score formula
// from §4.4: reward_rp / (eta+work+hop_overhead*hops+1) * (1-risk*penalty) *
// role_bonus.
const (
	RiskPenalty    = 0.5
	HopOverheadDays = 0.5
	RoleBonus       = 1.25
)

// PlanContracts greedily matches one ship to one Offered contract per edge,
// picking the highest-scoring (contract, ship) pair repeatedly. Surveyors
// are nudged toward anomaly/jump-survey work and combatants toward escorts.
func PlanContracts(gs *world.GameState, db *content.DB, factionId ids.Id, opts Options) []Assignment {
	ships := eligibleShips(gs, factionId, opts, func(s *world.Ship) bool { return true })
	if len(ships) == 0 {
		return nil
	}

	var contracts []*world.Contract
	for _, cid := range gs.Contracts.SortedIds() {
		c := gs.Contracts.MustGet(cid)
		if c.Status == world.ContractOffered {
			contracts = append(contracts, c)
		}
	}
	if len(contracts) == 0 {
		return nil
	}

	type edge struct {
		ship     *world.Ship
		contract *world.Contract
		score    float64
		eta      float64
	}
	var edges []edge

	for _, ship := range ships {
		for _, c := range contracts {
			eta, work := estimateContractWork(gs, ship, c)
			role := ""
			if d, ok := db.Designs[ship.DesignId]; ok {
				role = string(d.Role)
			}
			bonus := 1.0
			switch {
			case c.Kind == world.ContractInvestigateAnomaly || c.Kind == world.ContractSurveyJumpPoint:
				if role == "Surveyor" {
					bonus = RoleBonus
				}
			case c.Kind == world.ContractEscortConvoy:
				if role == "Combatant" {
					bonus = RoleBonus
				}
			}
			denom := max1(eta + work + HopOverheadDays*float64(c.HopsEstimate) + 1)
			score := c.RewardResearchPoints / denom * (1 - c.RiskEstimate*RiskPenalty) * bonus
			edges = append(edges, edge{ship, c, score, eta})
		}
	}

	sort.SliceStable(edges, func(i, j int) bool { return edges[i].score > edges[j].score })

	usedShip := map[ids.Id]bool{}
	usedContract := map[ids.Id]bool{}
	var out []Assignment
	for _, e := range edges {
		if usedShip[e.ship.Id] || usedContract[e.contract.Id] {
			continue
		}
		usedShip[e.ship.Id] = true
		usedContract[e.contract.Id] = true

		orders := contractOrders(e.contract)
		out = append(out, Assignment{
			ShipId:  e.ship.Id,
			Orders:  orders,
			Score:   e.score,
			EtaDays: e.eta,
			Note:    "contract " + string(e.contract.Kind),
		})
		if opts.MaxContracts > 0 && len(usedContract) >= opts.MaxContracts {
			break
		}
	}
	return out
}

func estimateContractWork(gs *world.GameState, ship *world.Ship, c *world.Contract) (etaDays, workDays float64) {
	switch c.Kind {
	case world.ContractInvestigateAnomaly:
		if a, ok := gs.Anomalies.Get(c.TargetId); ok {
			return ship.PositionMkm.Dist(a.PositionMkm) / speedOrOne(ship), 1
		}
	case world.ContractSalvageWreck:
		if w, ok := gs.Wrecks.Get(c.TargetId); ok {
			return ship.PositionMkm.Dist(w.PositionMkm) / speedOrOne(ship), 1
		}
	case world.ContractSurveyJumpPoint:
		if jp, ok := gs.JumpPoints.Get(c.TargetId); ok {
			return ship.PositionMkm.Dist(jp.PositionMkm) / speedOrOne(ship), 2
		}
	case world.ContractEscortConvoy:
		plan, ok := routing.PlanRoute(gs, ship.SystemId, ship.PositionMkm, ship.FactionId, speedOrOne(ship), c.TargetId2, false, nil)
		if ok {
			return plan.TotalEtaDays, 1
		}
	}
	return 1000, 1
}

func contractOrders(c *world.Contract) []world.Order {
	switch c.Kind {
	case world.ContractInvestigateAnomaly:
		return []world.Order{world.MoveToPointOrder{}, world.OrbitBodyOrder{BodyId: c.TargetId, DurationDays: -1}}
	case world.ContractSalvageWreck:
		return []world.Order{world.SalvageWreckOrder{WreckId: c.TargetId}}
	case world.ContractSurveyJumpPoint:
		return []world.Order{world.SurveyJumpPointOrder{JumpId: c.TargetId}}
	case world.ContractEscortConvoy:
		return []world.Order{world.TravelViaJumpOrder{JumpId: c.TargetId}}
	default:
		return nil
	}
}
