package domain

// HistoryEntry records one resolved decision. The log is append-only and is
// written before any termination check, so terminating decisions still appear.
type HistoryEntry struct {
	Stage   string `json:"stage"`     // presentable id at the time of the decision
	Option  string `json:"challenge"` // option id
	Label   string `json:"option"`    // option label
	Outcome string `json:"outcome"`   // resolved outcome description
}

// PlayerState is the mutable progress record for one run. It is created at
// engine construction and mutated only by the engine.
type PlayerState struct {
	Budget                int            `json:"budget"`
	Reputation            int            `json:"reputation"`
	Risk                  int            `json:"risk"` // clamped to [0,100]
	CurrentStage          string         `json:"current_stage"`
	CurrentChallengeIndex int            `json:"current_challenge_index"`
	History               []HistoryEntry `json:"history"`
	TeamScore             int            `json:"team_score"`
	TeamTotals            map[Skill]int  `json:"team_totals"`
	TeamSize              int            `json:"team_size"`
}

// SyncTeam refreshes the team aggregate snapshot carried in the state.
func (s *PlayerState) SyncTeam(team *Team) {
	s.TeamScore = team.Score
	s.TeamTotals = team.Totals
	s.TeamSize = len(team.Members)
}

// Snapshot returns a deep enough copy for callers to keep: history and totals
// are copied so later engine mutations cannot show through.
func (s *PlayerState) Snapshot() PlayerState {
	out := *s
	out.History = make([]HistoryEntry, len(s.History))
	copy(out.History, s.History)
	out.TeamTotals = make(map[Skill]int, len(s.TeamTotals))
	for skill, total := range s.TeamTotals {
		out.TeamTotals[skill] = total
	}
	return out
}
