package pacing

import (
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

func TestComputeLifeScore(t *testing.T) {
	tests := []struct {
		name      string
		goals     []*model.Goal
		wantScore int
		wantLabel string
	}{
		{
			"strong momentum",
			[]*model.Goal{incGoal("a", 0, 10, 8), incGoal("b", 0, 10, 9)},
			85, ScoreLabelStrong,
		},
		{
			"steady pace",
			[]*model.Goal{incGoal("a", 0, 10, 5)},
			50, ScoreLabelSteady,
		},
		{
			"needs focus",
			[]*model.Goal{incGoal("a", 0, 10, 1), incGoal("b", 0, 10, 3)},
			20, ScoreLabelBehind,
		},
		{
			"boundary at seventy",
			[]*model.Goal{incGoal("a", 0, 10, 7)},
			70, ScoreLabelStrong,
		},
		{
			"boundary at forty",
			[]*model.Goal{incGoal("a", 0, 10, 4)},
			40, ScoreLabelSteady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLifeScore(tt.goals)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.Empty {
				t.Error("Empty = true, want false")
			}
		})
	}
}

func TestComputeLifeScoreNoGoals(t *testing.T) {
	got := ComputeLifeScore(nil)
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.Label != ScoreLabelEmpty {
		t.Errorf("Label = %q, want %q", got.Label, ScoreLabelEmpty)
	}
	if !got.Empty {
		t.Error("Empty = false, want true")
	}
}

func TestComputeLifeScoreAllAtZeroIsNotEmpty(t *testing.T) {
	got := ComputeLifeScore([]*model.Goal{incGoal("a", 0, 10, 0)})
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
	if got.Empty {
		t.Error("Empty = true for a genuine zero score, want false")
	}
	if got.Label != ScoreLabelBehind {
		t.Errorf("Label = %q, want %q", got.Label, ScoreLabelBehind)
	}
}

func TestComputeLifeScoreSkipsArchived(t *testing.T) {
	archivedAt := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	done := incGoal("done", 0, 10, 10)
	stalled := incGoal("stalled", 0, 10, 0)
	stalled.ArchivedAt = &archivedAt

	got := ComputeLifeScore([]*model.Goal{done, stalled})
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100 (archived goal excluded)", got.Score)
	}
}
