package match

import "strings"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeDraw Outcome = "draw"
	OutcomeLoss Outcome = "loss"
)

// Classify determines the outcome of a match for the viewing club.
//
// Goal comparison is authoritative: the provider awards forfeits and
// disconnect losses as e.g. 3-0 while sometimes leaving a stale result
// code behind, so the categorical fields are consulted only on a goal
// tie. On a tie the precedence is: forced-draw flag, numeric result
// code, win/loss/tie flags, then draw.
func Classify(m Match, clubID string) Outcome {
	row, ok := m.Clubs[clubID]
	if !ok {
		return OutcomeDraw
	}

	opponentGoals := row.GoalsAgainst
	if opponent, found := m.Opponent(clubID); found {
		opponentGoals = opponent.Goals
	}

	if row.Goals > opponentGoals {
		return OutcomeWin
	}
	if row.Goals < opponentGoals {
		return OutcomeLoss
	}

	if row.ForcedDraw {
		return OutcomeDraw
	}

	switch strings.TrimSpace(row.ResultCode) {
	case "1":
		return OutcomeWin
	case "2":
		return OutcomeLoss
	case "0":
		return OutcomeDraw
	}

	if truthyFlag(row.WinsFlag) {
		return OutcomeWin
	}
	if truthyFlag(row.LossesFlag) {
		return OutcomeLoss
	}
	if truthyFlag(row.TiesFlag) {
		return OutcomeDraw
	}

	return OutcomeDraw
}

func truthyFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}
