package world

import "github.com/nebula4x/nebula4x/ids"

// ContractKind enumerates the jobs the contract board offers.
type ContractKind string

const (
	ContractInvestigateAnomaly ContractKind = "InvestigateAnomaly"
	ContractSalvageWreck       ContractKind = "SalvageWreck"
	ContractSurveyJumpPoint    ContractKind = "SurveyJumpPoint"
	ContractEscortConvoy       ContractKind = "EscortConvoy"
)

// ContractStatus is a contract's lifecycle state.
type ContractStatus string

const (
	ContractOffered   ContractStatus = "Offered"
	ContractAccepted  ContractStatus = "Accepted"
	ContractCompleted ContractStatus = "Completed"
	ContractExpired   ContractStatus = "Expired"
	ContractFailed    ContractStatus = "Failed"
)

// Contract is an issuer-posted job another faction's ship can accept and
// resolve for a research-point reward.
type Contract struct {
	Id     ids.Id         `json:"id"`
	Kind   ContractKind   `json:"kind"`
	Status ContractStatus `json:"status"`

	IssuerFactionId   ids.Id `json:"issuer_faction_id"`
	AssigneeFactionId ids.Id `json:"assignee_faction_id,omitempty"`
	AssignedShipId    ids.Id `json:"assigned_ship_id,omitempty"`

	TargetId  ids.Id `json:"target_id"`
	TargetId2 ids.Id `json:"target_id2,omitempty"` // escort destination system

	RewardResearchPoints float64 `json:"reward_research_points"`
	RiskEstimate         float64 `json:"risk_estimate"`
	HopsEstimate         int     `json:"hops_estimate"`

	OfferedDay  int64 `json:"offered_day"`
	AcceptedDay int64 `json:"accepted_day,omitempty"`
	ExpiresDay  int64 `json:"expires_day"`
	ResolvedDay int64 `json:"resolved_day,omitempty"`
}
