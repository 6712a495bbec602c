package service

import "github.com/quizace/quizace-backend/internal/model"

// SolutionVisible decides whether a question's reference answer and analysis
// may be shown for one attempt item. Solutions stay hidden while the attempt
// is ongoing; once terminal, objective solutions are always revealed while
// subjective ones wait for teacher review. Mixed attempts apply the rule per
// item using the question's own type, not the attempt's.
func SolutionVisible(attemptStatus string, reviewRequired bool, questionType string) bool {
	if attemptStatus != model.AttemptStatusCompleted && attemptStatus != model.AttemptStatusExpired {
		return false
	}
	if questionType == model.QuestionTypeSubjective {
		return !reviewRequired
	}
	return true
}
