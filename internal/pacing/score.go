package pacing

import (
	"math"

	"github.com/momentumhq/momentum/internal/model"
)

// Life score labels, keyed off fixed thresholds.
const (
	ScoreLabelStrong = "Strong momentum"
	ScoreLabelSteady = "Steady pace"
	ScoreLabelBehind = "Needs focus"
	ScoreLabelEmpty  = "Add goals to calculate score"
)

// LifeScore is the mean completion ratio across active goals, as a
// 0-100 score. Empty distinguishes a user with no active goals from a
// genuine all-goals-at-zero score.
type LifeScore struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Empty bool   `json:"empty"`
}

// ComputeLifeScore averages progress across the active, non-archived
// goals and attaches a qualitative label.
func ComputeLifeScore(goals []*model.Goal) LifeScore {
	var sum float64
	var n int
	for _, g := range goals {
		if g.IsArchived() {
			continue
		}
		sum += Progress(g)
		n++
	}

	if n == 0 {
		return LifeScore{Score: 0, Label: ScoreLabelEmpty, Empty: true}
	}

	score := int(math.Round(sum / float64(n) * 100))
	return LifeScore{Score: score, Label: scoreLabel(score)}
}

func scoreLabel(score int) string {
	switch {
	case score >= 70:
		return ScoreLabelStrong
	case score >= 40:
		return ScoreLabelSteady
	default:
		return ScoreLabelBehind
	}
}
