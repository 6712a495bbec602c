package service

import (
	"testing"

	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
)

func objectiveItem(questionID uint, answer string, score int) model.PracticeAttemptItem {
	return model.PracticeAttemptItem{
		QuestionID:    questionID,
		ExpectedScore: score,
		Question: model.Question{
			ID:           questionID,
			QuestionType: model.QuestionTypeObjective,
			Answer:       answer,
			Score:        score,
		},
	}
}

func subjectiveItem(questionID uint) model.PracticeAttemptItem {
	return model.PracticeAttemptItem{
		QuestionID:    questionID,
		ExpectedScore: SubjectiveDefaultScore,
		Question: model.Question{
			ID:           questionID,
			QuestionType: model.QuestionTypeSubjective,
			Answer:       "model answer",
		},
	}
}

func TestIsAnswerCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		reference string
		want      bool
	}{
		{name: "exact match", submitted: "A", reference: "A", want: true},
		{name: "case insensitive", submitted: "b", reference: "B", want: true},
		{name: "whitespace trimmed", submitted: "  C  ", reference: "C", want: true},
		{name: "both normalized", submitted: " abc ", reference: "ABC", want: true},
		{name: "wrong answer", submitted: "A", reference: "B", want: false},
		{name: "empty never correct", submitted: "", reference: "", want: false},
		{name: "whitespace only never correct", submitted: "   ", reference: "   ", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isAnswerCorrect(tc.submitted, tc.reference); got != tc.want {
				t.Errorf("isAnswerCorrect(%q, %q) = %v, want %v", tc.submitted, tc.reference, got, tc.want)
			}
		})
	}
}

func TestScoreItems_AllObjectiveCorrect(t *testing.T) {
	items := make([]model.PracticeAttemptItem, 0, 10)
	answers := make(map[uint]string, 10)
	for i := uint(1); i <= 10; i++ {
		items = append(items, objectiveItem(i, "A", 5))
		answers[i] = "a"
	}

	result := scoreItems(items, answers)

	if result.CorrectCount != 10 {
		t.Errorf("CorrectCount = %d, want 10", result.CorrectCount)
	}
	if result.TotalScore != 50 {
		t.Errorf("TotalScore = %d, want 50", result.TotalScore)
	}
	if result.ObtainedScore != 50 {
		t.Errorf("ObtainedScore = %d, want 50", result.ObtainedScore)
	}
	if result.HasSubjective {
		t.Error("HasSubjective = true, want false")
	}
	for i := range result.Items {
		if result.Items[i].IsCorrect == nil || !*result.Items[i].IsCorrect {
			t.Errorf("item %d not marked correct", i)
		}
	}
}

func TestScoreItems_FullReplaceSemantics(t *testing.T) {
	items := []model.PracticeAttemptItem{
		objectiveItem(1, "A", 10),
		objectiveItem(2, "B", 10),
	}
	items[0].UserAnswer = "A"
	items[1].UserAnswer = "B"

	// The map covers only question 1; question 2's stored answer must be
	// wiped, not preserved.
	result := scoreItems(items, map[uint]string{1: "A"})

	if result.Items[1].UserAnswer != "" {
		t.Errorf("question 2 answer = %q, want cleared", result.Items[1].UserAnswer)
	}
	if result.Items[1].IsCorrect == nil || *result.Items[1].IsCorrect {
		t.Error("question 2 should be judged wrong after clearing")
	}
	if result.ObtainedScore != 10 {
		t.Errorf("ObtainedScore = %d, want 10", result.ObtainedScore)
	}
}

func TestScoreItems_NilMapKeepsStoredAnswers(t *testing.T) {
	items := []model.PracticeAttemptItem{
		objectiveItem(1, "A", 10),
		objectiveItem(2, "B", 10),
	}
	items[0].UserAnswer = "A"

	// Expiry path: score whatever drafts were saved.
	result := scoreItems(items, nil)

	if result.Items[0].UserAnswer != "A" {
		t.Errorf("stored answer was modified: %q", result.Items[0].UserAnswer)
	}
	if result.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", result.CorrectCount)
	}
	if result.ObtainedScore != 10 {
		t.Errorf("ObtainedScore = %d, want 10", result.ObtainedScore)
	}
}

func TestScoreItems_MixedPaper(t *testing.T) {
	items := []model.PracticeAttemptItem{
		objectiveItem(1, "A", 10),
		subjectiveItem(2),
		objectiveItem(3, "C", 10),
	}
	answers := map[uint]string{1: "A", 2: "my essay", 3: "D"}

	result := scoreItems(items, answers)

	if !result.HasSubjective {
		t.Error("HasSubjective = false, want true")
	}
	if result.Items[1].IsCorrect != nil {
		t.Error("subjective item must stay unjudged")
	}
	if result.Items[1].UserAnswer != "my essay" {
		t.Errorf("subjective answer = %q", result.Items[1].UserAnswer)
	}
	if result.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", result.CorrectCount)
	}
	if result.TotalScore != 10+SubjectiveDefaultScore+10 {
		t.Errorf("TotalScore = %d, want %d", result.TotalScore, 10+SubjectiveDefaultScore+10)
	}
	if result.ObtainedScore != 10 {
		t.Errorf("ObtainedScore = %d, want 10", result.ObtainedScore)
	}
}

func TestScoreItems_ResubmitOverwritesJudgment(t *testing.T) {
	item := objectiveItem(1, "A", 10)
	wrong := false
	item.IsCorrect = &wrong
	item.UserAnswer = "B"

	result := scoreItems([]model.PracticeAttemptItem{item}, map[uint]string{1: "A"})

	if result.Items[0].IsCorrect == nil || !*result.Items[0].IsCorrect {
		t.Error("re-evaluation did not overwrite the old judgment")
	}
	if result.Items[0].AwardedScore != 10 {
		t.Errorf("AwardedScore = %d, want 10", result.Items[0].AwardedScore)
	}
}

func TestBuildAnswerMap_LastWriteWins(t *testing.T) {
	answers := buildAnswerMap([]dto.AnswerInput{
		{QuestionID: 1, UserAnswer: "A"},
		{QuestionID: 2, UserAnswer: "B"},
		{QuestionID: 1, UserAnswer: "C"},
	})
	if answers[1] != "C" {
		t.Errorf("answers[1] = %q, want C", answers[1])
	}
	if answers[2] != "B" {
		t.Errorf("answers[2] = %q, want B", answers[2])
	}
}
