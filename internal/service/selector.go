package service

import (
	"math/rand"

	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
)

// QuestionSelector draws a bounded random sample of ready questions.
type QuestionSelector interface {
	// Select returns min(size, eligible) distinct questions for the subject
	// and type, every eligible question equally likely. ErrEmptyPool when no
	// question qualifies.
	Select(subjectID uint, questionType string, size int) ([]model.Question, error)
}

type questionSelector struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionSelector(questionRepo repository.QuestionRepository) QuestionSelector {
	return &questionSelector{questionRepo: questionRepo}
}

func (s *questionSelector) Select(subjectID uint, questionType string, size int) ([]model.Question, error) {
	pool, err := s.questionRepo.FindReadyBySubjectAndType(subjectID, questionType)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	return samplePool(pool, size), nil
}

// samplePool draws size questions without replacement; a pool at or below
// the requested size is returned whole.
func samplePool(pool []model.Question, size int) []model.Question {
	if size >= len(pool) {
		return pool
	}
	shuffled := make([]model.Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:size]
}
