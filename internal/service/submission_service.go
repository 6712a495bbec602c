package service

import (
	"errors"
	"fmt"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService owns the write paths of an ongoing attempt: saving
// draft answers and final submission.
type SubmissionService interface {
	Submit(userID, attemptID uint, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error)
	SaveDraftAnswers(userID, attemptID uint, req dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error)
}

type submissionService struct {
	db            *gorm.DB
	attemptRepo   repository.AttemptRepository
	wrongBookRepo repository.WrongBookRepository
	evaluator     Evaluator
	guard         ExpirationGuard
	clk           clock.Clock
}

func NewSubmissionService(
	db *gorm.DB,
	attemptRepo repository.AttemptRepository,
	wrongBookRepo repository.WrongBookRepository,
	evaluator Evaluator,
	guard ExpirationGuard,
	clk clock.Clock,
) SubmissionService {
	return &submissionService{
		db:            db,
		attemptRepo:   attemptRepo,
		wrongBookRepo: wrongBookRepo,
		evaluator:     evaluator,
		guard:         guard,
		clk:           clk,
	}
}

// Submit finalizes the attempt with the submitted answer set. Submitting an
// attempt that is already terminal performs no writes and returns the stored
// result unchanged, so client retries are harmless. Answers that arrive
// after the window elapsed are still scored, but the attempt lands in the
// expired state rather than completed.
func (s *submissionService) Submit(userID, attemptID uint, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindForUpdate(tx, attemptID, &userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}
		if attempt.IsTerminal() {
			return nil
		}

		// The expiry decision uses the clock reading taken before scoring,
		// so a submit racing the deadline cannot land as completed.
		now := s.clk.Now()
		expired := attempt.DeadlinePassed(now)

		result, err := s.evaluator.Evaluate(tx, attempt, buildAnswerMap(req.Answers))
		if err != nil {
			return err
		}

		attempt.CorrectCount = result.CorrectCount
		attempt.TotalScore = result.TotalScore
		attempt.ObtainedScore = result.ObtainedScore
		attempt.SubmittedAt = &now
		attempt.IsReviewRequired = result.HasSubjective
		if expired {
			attempt.Status = model.AttemptStatusExpired
		} else {
			attempt.Status = model.AttemptStatusCompleted
		}

		fields := []string{"correct_count", "total_score", "obtained_score", "status", "submitted_at", "is_review_required"}
		if err := s.attemptRepo.UpdateFields(tx, attempt, fields...); err != nil {
			return fmt.Errorf("finalizing attempt %d: %w", attempt.ID, err)
		}

		log.Info().
			Uint("attempt_id", attempt.ID).
			Uint("user_id", userID).
			Str("status", attempt.Status).
			Int("obtained", attempt.ObtainedScore).
			Int("total", attempt.TotalScore).
			Bool("review_required", attempt.IsReviewRequired).
			Msg("Attempt submitted")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.renderResult(userID, attemptID)
}

// SaveDraftAnswers persists partial answers without finalizing. The guard
// runs first, so a save landing after the window elapsed finalizes the
// attempt from what was stored before and the save itself is rejected.
func (s *submissionService) SaveDraftAnswers(userID, attemptID uint, req dto.SaveAnswersRequest) (*dto.SaveAnswersResponse, error) {
	var resp dto.SaveAnswersResponse
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindForUpdate(tx, attemptID, &userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}

		expiresAt, remaining, _, err := s.guard.EnsureNotExpired(tx, attempt)
		if err != nil {
			return err
		}
		if attempt.Status != model.AttemptStatusOngoing {
			return ErrAttemptNotOngoing
		}

		items, err := s.attemptRepo.ListItems(tx, attempt.ID)
		if err != nil {
			return err
		}

		answerMap := buildAnswerMap(req.Answers)
		changed := make([]model.PracticeAttemptItem, 0, len(answerMap))
		for i := range items {
			answer, ok := answerMap[items[i].QuestionID]
			if !ok || answer == items[i].UserAnswer {
				continue
			}
			items[i].UserAnswer = answer
			changed = append(changed, items[i])
		}
		if len(changed) > 0 {
			if err := s.attemptRepo.UpdateItemAnswers(tx, changed); err != nil {
				return fmt.Errorf("saving draft answers for attempt %d: %w", attempt.ID, err)
			}
		}

		resp.ExpiresAt = expiresAt
		resp.RemainingSeconds = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// renderResult reloads the attempt with its relations after the transaction
// committed and renders the terminal view.
func (s *submissionService) renderResult(userID, attemptID uint) (*dto.AttemptResultResponse, error) {
	attempt, err := s.attemptRepo.FindByIDAndUser(attemptID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	items, err := s.attemptRepo.ListItems(s.db, attempt.ID)
	if err != nil {
		return nil, err
	}
	wrongIDs, err := s.wrongBookRepo.QuestionIDsForUser(userID, itemQuestionIDs(items))
	if err != nil {
		return nil, err
	}
	return &dto.AttemptResultResponse{
		Attempt: attemptToResponse(attempt),
		Items:   itemsToResponses(attempt, items, wrongIDs, false),
	}, nil
}

// buildAnswerMap collapses the submitted list into a question-id keyed map.
// Duplicate entries for one question keep the last one, matching the order
// the client sent them.
func buildAnswerMap(answers []dto.AnswerInput) map[uint]string {
	answerMap := make(map[uint]string, len(answers))
	for _, a := range answers {
		answerMap[a.QuestionID] = a.UserAnswer
	}
	return answerMap
}
