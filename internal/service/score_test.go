package service

import (
	"testing"

	"github.com/quizace/quizace-backend/internal/model"
)

func TestResolveScore(t *testing.T) {
	tests := []struct {
		name         string
		questionType string
		declared     int
		want         int
	}{
		{name: "objective declared", questionType: model.QuestionTypeObjective, declared: 5, want: 5},
		{name: "objective zero falls back", questionType: model.QuestionTypeObjective, declared: 0, want: ObjectiveDefaultScore},
		{name: "objective negative falls back", questionType: model.QuestionTypeObjective, declared: -3, want: ObjectiveDefaultScore},
		{name: "subjective ignores declared", questionType: model.QuestionTypeSubjective, declared: 5, want: SubjectiveDefaultScore},
		{name: "subjective zero", questionType: model.QuestionTypeSubjective, declared: 0, want: SubjectiveDefaultScore},
		{name: "subjective ignores large declared", questionType: model.QuestionTypeSubjective, declared: 100, want: SubjectiveDefaultScore},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveScore(tc.questionType, tc.declared); got != tc.want {
				t.Errorf("ResolveScore(%q, %d) = %d, want %d", tc.questionType, tc.declared, got, tc.want)
			}
		})
	}
}

func TestDefaultPaperSize(t *testing.T) {
	if got := DefaultPaperSize(model.QuestionTypeObjective); got != DefaultObjectiveSize {
		t.Errorf("objective size = %d, want %d", got, DefaultObjectiveSize)
	}
	if got := DefaultPaperSize(model.QuestionTypeSubjective); got != DefaultSubjectiveSize {
		t.Errorf("subjective size = %d, want %d", got, DefaultSubjectiveSize)
	}
}

func TestItemMaxScore(t *testing.T) {
	tests := []struct {
		name string
		item model.PracticeAttemptItem
		want int
	}{
		{
			name: "snapshot wins over live question",
			item: model.PracticeAttemptItem{
				ExpectedScore: 7,
				Question:      model.Question{QuestionType: model.QuestionTypeObjective, Score: 99},
			},
			want: 7,
		},
		{
			name: "legacy row resolves from question",
			item: model.PracticeAttemptItem{
				ExpectedScore: 0,
				Question:      model.Question{QuestionType: model.QuestionTypeObjective, Score: 4},
			},
			want: 4,
		},
		{
			name: "legacy subjective row",
			item: model.PracticeAttemptItem{
				ExpectedScore: 0,
				Question:      model.Question{QuestionType: model.QuestionTypeSubjective, Score: 3},
			},
			want: SubjectiveDefaultScore,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := itemMaxScore(&tc.item); got != tc.want {
				t.Errorf("itemMaxScore() = %d, want %d", got, tc.want)
			}
		})
	}
}
