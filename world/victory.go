package world

import "github.com/nebula4x/nebula4x/ids"

// VictoryReason names why the game ended.
type VictoryReason string

const (
	ReasonNone               VictoryReason = ""
	ReasonLastFactionStanding VictoryReason = "LastFactionStanding"
	ReasonScoreThreshold      VictoryReason = "ScoreThreshold"
)

// VictoryState is the outcome the victory check writes to each tick.
type VictoryState struct {
	GameOver       bool          `json:"game_over"`
	WinnerFactionId ids.Id       `json:"winner_faction_id,omitempty"`
	Reason         VictoryReason `json:"reason,omitempty"`

	// TerminalEventEmitted guards the "emit a terminal event once" rule: the
	// tick pipeline may keep running after game_over but must not repeat it.
	TerminalEventEmitted bool `json:"terminal_event_emitted,omitempty"`
}

// VictoryRules configures which victory conditions are active.
type VictoryRules struct {
	Enabled bool `json:"enabled"`

	ExcludePirates bool `json:"exclude_pirates"`

	EliminationEnabled        bool `json:"elimination_enabled"`
	EliminationRequiresColony bool `json:"elimination_requires_colony"`

	ScoreThreshold float64 `json:"score_threshold"`
}

// DefaultVictoryRules returns the conventional single-winner ruleset used by
// new_game/new_game_random scenarios.
func DefaultVictoryRules() VictoryRules {
	return VictoryRules{
		Enabled:                   true,
		ExcludePirates:            true,
		EliminationEnabled:        true,
		EliminationRequiresColony: true,
		ScoreThreshold:            0, // 0 disables the score-threshold check
	}
}
