package service

import (
	"fmt"
	"strings"

	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"gorm.io/gorm"
)

// EvaluationResult aggregates one scoring pass over an attempt's items.
type EvaluationResult struct {
	Items         []model.PracticeAttemptItem
	CorrectCount  int
	ObtainedScore int
	TotalScore    int
	HasSubjective bool
}

// Evaluator normalizes and scores submitted answers against reference
// answers. Objective items are auto-scored; subjective items stay unscored
// until teacher review.
type Evaluator interface {
	// Evaluate loads the attempt's items inside tx, applies answerMap (a
	// full replace of the stored answer set when non-nil), scores them and
	// persists the result in one pass.
	Evaluate(tx *gorm.DB, attempt *model.PracticeAttempt, answerMap map[uint]string) (*EvaluationResult, error)
}

type evaluator struct {
	attemptRepo repository.AttemptRepository
}

func NewEvaluator(attemptRepo repository.AttemptRepository) Evaluator {
	return &evaluator{attemptRepo: attemptRepo}
}

func (e *evaluator) Evaluate(tx *gorm.DB, attempt *model.PracticeAttempt, answerMap map[uint]string) (*EvaluationResult, error) {
	items, err := e.attemptRepo.ListItems(tx, attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("loading items for attempt %d: %w", attempt.ID, err)
	}

	result := scoreItems(items, answerMap)

	if err := e.attemptRepo.UpdateItemResults(tx, result.Items); err != nil {
		return nil, fmt.Errorf("persisting item results for attempt %d: %w", attempt.ID, err)
	}
	return &result, nil
}

// scoreItems is the pure scoring pass. With a non-nil answerMap every item's
// answer is replaced first; questions absent from the map become unanswered,
// not left unchanged. Each item is scored by its own question's type, so
// mixed papers work without special cases.
func scoreItems(items []model.PracticeAttemptItem, answerMap map[uint]string) EvaluationResult {
	var result EvaluationResult
	for i := range items {
		item := &items[i]
		if answerMap != nil {
			item.UserAnswer = answerMap[item.QuestionID]
		}

		maxScore := itemMaxScore(item)
		result.TotalScore += maxScore

		if item.Question.QuestionType == model.QuestionTypeSubjective {
			item.IsCorrect = nil
			result.HasSubjective = true
			continue
		}

		correct := isAnswerCorrect(item.UserAnswer, item.Question.Answer)
		item.IsCorrect = &correct
		if correct {
			item.AwardedScore = maxScore
			result.CorrectCount++
			result.ObtainedScore += maxScore
		} else {
			item.AwardedScore = 0
		}
	}
	result.Items = items
	return result
}

// isAnswerCorrect compares answers after trimming whitespace and
// upper-casing. An empty normalized answer is never correct.
func isAnswerCorrect(submitted, reference string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(submitted))
	expected := strings.ToUpper(strings.TrimSpace(reference))
	return normalized != "" && normalized == expected
}
