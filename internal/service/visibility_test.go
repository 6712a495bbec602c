package service

import (
	"testing"

	"github.com/quizace/quizace-backend/internal/model"
)

func TestSolutionVisible(t *testing.T) {
	tests := []struct {
		name           string
		status         string
		reviewRequired bool
		questionType   string
		want           bool
	}{
		{name: "ongoing objective hidden", status: model.AttemptStatusOngoing, questionType: model.QuestionTypeObjective, want: false},
		{name: "ongoing subjective hidden", status: model.AttemptStatusOngoing, questionType: model.QuestionTypeSubjective, want: false},
		{name: "completed objective visible", status: model.AttemptStatusCompleted, questionType: model.QuestionTypeObjective, want: true},
		{name: "expired objective visible", status: model.AttemptStatusExpired, questionType: model.QuestionTypeObjective, want: true},
		{name: "completed subjective pending review hidden", status: model.AttemptStatusCompleted, reviewRequired: true, questionType: model.QuestionTypeSubjective, want: false},
		{name: "completed subjective reviewed visible", status: model.AttemptStatusCompleted, reviewRequired: false, questionType: model.QuestionTypeSubjective, want: true},
		{name: "expired subjective pending review hidden", status: model.AttemptStatusExpired, reviewRequired: true, questionType: model.QuestionTypeSubjective, want: false},
		{name: "mixed pending review objective still visible", status: model.AttemptStatusCompleted, reviewRequired: true, questionType: model.QuestionTypeObjective, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SolutionVisible(tc.status, tc.reviewRequired, tc.questionType)
			if got != tc.want {
				t.Errorf("SolutionVisible(%q, %v, %q) = %v, want %v", tc.status, tc.reviewRequired, tc.questionType, got, tc.want)
			}
		})
	}
}
