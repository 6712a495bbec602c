package service

import (
	"testing"

	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		max   int
		want  int
	}{
		{name: "within range", score: 15, max: 20, want: 15},
		{name: "at max", score: 20, max: 20, want: 20},
		{name: "above max clamped", score: 25, max: 20, want: 20},
		{name: "negative clamped to zero", score: -5, max: 20, want: 0},
		{name: "zero", score: 0, max: 20, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampScore(tc.score, tc.max); got != tc.want {
				t.Errorf("clampScore(%d, %d) = %d, want %d", tc.score, tc.max, got, tc.want)
			}
		})
	}
}

func TestApplyReviewScores(t *testing.T) {
	items := []model.PracticeAttemptItem{
		{ID: 1, ExpectedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
		{ID: 2, ExpectedScore: 20, Question: model.Question{QuestionType: model.QuestionTypeSubjective}},
		{ID: 3, ExpectedScore: 20, Question: model.Question{QuestionType: model.QuestionTypeSubjective}},
	}
	scores := []dto.ReviewItemScore{
		{ItemID: 1, AwardedScore: 10}, // objective, ignored
		{ItemID: 2, AwardedScore: 25}, // clamped to 20
		{ItemID: 9, AwardedScore: 5},  // unknown item, ignored
	}

	changed, matched, hasSubjective := applyReviewScores(items, scores)

	if !hasSubjective {
		t.Error("hasSubjective = false, want true")
	}
	if matched != 1 {
		t.Errorf("matched = %d, want 1", matched)
	}
	if len(changed) != 1 || changed[0].ID != 2 {
		t.Fatalf("changed = %v, want only item 2", changed)
	}
	if changed[0].AwardedScore != 20 {
		t.Errorf("AwardedScore = %d, want clamped 20", changed[0].AwardedScore)
	}
	if items[2].AwardedScore != 0 {
		t.Errorf("unscored subjective item mutated: %d", items[2].AwardedScore)
	}
}

func TestApplyReviewScores_NoSubjectiveItems(t *testing.T) {
	items := []model.PracticeAttemptItem{
		{ID: 1, ExpectedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
	}
	_, matched, hasSubjective := applyReviewScores(items, []dto.ReviewItemScore{{ItemID: 1, AwardedScore: 5}})
	if hasSubjective {
		t.Error("hasSubjective = true for an all-objective attempt")
	}
	if matched != 0 {
		t.Errorf("matched = %d, want 0", matched)
	}
}

func TestTallyScores(t *testing.T) {
	// Mixed 80-point paper: three correct objectives at 10 each, one wrong,
	// two subjectives awarded 15 and 20.
	items := []model.PracticeAttemptItem{
		{ExpectedScore: 10, AwardedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
		{ExpectedScore: 10, AwardedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
		{ExpectedScore: 10, AwardedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
		{ExpectedScore: 10, AwardedScore: 0, Question: model.Question{QuestionType: model.QuestionTypeObjective}},
		{ExpectedScore: 20, AwardedScore: 15, Question: model.Question{QuestionType: model.QuestionTypeSubjective}},
		{ExpectedScore: 20, AwardedScore: 20, Question: model.Question{QuestionType: model.QuestionTypeSubjective}},
	}

	obtained, total := tallyScores(items)

	if total != 80 {
		t.Errorf("total = %d, want 80", total)
	}
	if obtained != 65 {
		t.Errorf("obtained = %d, want 65", obtained)
	}
}

func TestTallyScores_LegacyRowsBackfillTotal(t *testing.T) {
	items := []model.PracticeAttemptItem{
		{ExpectedScore: 0, AwardedScore: 10, Question: model.Question{QuestionType: model.QuestionTypeObjective, Score: 10}},
		{ExpectedScore: 0, AwardedScore: 20, Question: model.Question{QuestionType: model.QuestionTypeSubjective}},
	}
	obtained, total := tallyScores(items)
	if total != 10+SubjectiveDefaultScore {
		t.Errorf("total = %d, want %d", total, 10+SubjectiveDefaultScore)
	}
	if obtained != 30 {
		t.Errorf("obtained = %d, want 30", obtained)
	}
}
