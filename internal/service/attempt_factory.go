package service

import (
	"fmt"
	"time"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateAttemptParams describes one paper to materialize.
type CreateAttemptParams struct {
	UserID          uint
	Subject         *model.Subject
	QuestionType    string
	Size            int
	DurationSeconds int
	Mode            string
	Assignment      *model.ExamAssignment
	// PresetQuestionIDs, when non-empty, is used verbatim in order instead
	// of a random draw (fixed/mixed papers).
	PresetQuestionIDs []uint
	// ScoreOverrides replaces the resolved score for listed question ids.
	ScoreOverrides map[uint]int
}

// AttemptFactory materializes a timed attempt with ordered items, either
// from a random draw or a teacher-curated fixed list.
type AttemptFactory interface {
	CreateAttempt(params CreateAttemptParams) (*model.PracticeAttempt, []dto.PracticeQuestionResponse, time.Time, int, error)
}

type attemptFactory struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	selector     QuestionSelector
	clk          clock.Clock
}

func NewAttemptFactory(
	db *gorm.DB,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	selector QuestionSelector,
	clk clock.Clock,
) AttemptFactory {
	return &attemptFactory{
		db:           db,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		selector:     selector,
		clk:          clk,
	}
}

func (f *attemptFactory) CreateAttempt(params CreateAttemptParams) (*model.PracticeAttempt, []dto.PracticeQuestionResponse, time.Time, int, error) {
	questions, err := f.resolveQuestions(params)
	if err != nil {
		return nil, nil, time.Time{}, 0, err
	}

	now := f.clk.Now()
	attempt := &model.PracticeAttempt{
		UserID:          params.UserID,
		SubjectID:       params.Subject.ID,
		QuestionType:    params.QuestionType,
		DurationSeconds: params.DurationSeconds,
		TotalQuestions:  len(questions),
		Status:          model.AttemptStatusOngoing,
		StartedAt:       now,
		Mode:            params.Mode,
	}
	if params.Assignment != nil {
		attempt.AssignmentID = &params.Assignment.ID
	}

	totalScore := 0
	items := make([]model.PracticeAttemptItem, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		// ExpectedScore freezes the effective value now; later edits to the
		// question row never touch this attempt.
		score := ResolveScore(q.QuestionType, q.Score)
		if override, ok := params.ScoreOverrides[q.ID]; ok {
			score = override
		}
		totalScore += score
		items = append(items, model.PracticeAttemptItem{
			QuestionID:    q.ID,
			Order:         i + 1,
			ExpectedScore: score,
		})
	}
	attempt.TotalScore = totalScore
	attempt.Items = items

	// Attempt and items commit together or not at all.
	err = f.db.Transaction(func(tx *gorm.DB) error {
		return f.attemptRepo.Create(tx, attempt)
	})
	if err != nil {
		return nil, nil, time.Time{}, 0, fmt.Errorf("creating attempt: %w", err)
	}

	log.Info().
		Uint("attempt_id", attempt.ID).
		Uint("user_id", params.UserID).
		Str("mode", params.Mode).
		Int("questions", len(questions)).
		Int("total_score", totalScore).
		Msg("Attempt created")

	payload := questionsToPaperPayload(questions, attempt.Items)
	return attempt, payload, attempt.ExpiresAt(), attempt.RemainingSeconds(now), nil
}

func (f *attemptFactory) resolveQuestions(params CreateAttemptParams) ([]model.Question, error) {
	if len(params.PresetQuestionIDs) > 0 {
		questions, err := f.questionRepo.FindByIDsOrdered(params.PresetQuestionIDs)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			return nil, ErrEmptyPool
		}
		return questions, nil
	}
	if params.QuestionType == model.QuestionTypeMixed {
		return nil, ErrEmptyPaper
	}
	return f.selector.Select(params.Subject.ID, params.QuestionType, params.Size)
}
