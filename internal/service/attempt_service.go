package service

import (
	"errors"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"gorm.io/gorm"
)

// AttemptService starts self-service practice attempts and serves the
// student-facing read paths. Every read that touches an ongoing attempt runs
// the expiration guard first, so clients always observe post-deadline
// attempts as finalized.
type AttemptService interface {
	StartPractice(userID uint, req dto.StartPracticeRequest) (*dto.StartAttemptResponse, error)
	GetAttemptDetail(userID, attemptID uint) (*dto.AttemptDetailResponse, error)
	History(userID uint, filter repository.AttemptHistoryFilter) (*dto.AttemptHistoryResponse, error)
	Ongoing(userID uint, mode string) ([]dto.OngoingAttemptResponse, error)
	PendingReviews(userID uint, mode string) ([]dto.PendingReviewAttemptResponse, error)
}

type attemptService struct {
	db            *gorm.DB
	subjectRepo   repository.SubjectRepository
	attemptRepo   repository.AttemptRepository
	wrongBookRepo repository.WrongBookRepository
	factory       AttemptFactory
	guard         ExpirationGuard
	clk           clock.Clock
}

func NewAttemptService(
	db *gorm.DB,
	subjectRepo repository.SubjectRepository,
	attemptRepo repository.AttemptRepository,
	wrongBookRepo repository.WrongBookRepository,
	factory AttemptFactory,
	guard ExpirationGuard,
	clk clock.Clock,
) AttemptService {
	return &attemptService{
		db:            db,
		subjectRepo:   subjectRepo,
		attemptRepo:   attemptRepo,
		wrongBookRepo: wrongBookRepo,
		factory:       factory,
		guard:         guard,
		clk:           clk,
	}
}

func (s *attemptService) StartPractice(userID uint, req dto.StartPracticeRequest) (*dto.StartAttemptResponse, error) {
	subject, err := s.subjectRepo.FindByID(req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = model.QuestionTypeObjective
	}
	if !model.ValidQuestionType(questionType) {
		return nil, ErrInvalidQuestionType
	}

	size := req.Size
	if size <= 0 {
		size = DefaultPaperSize(questionType)
	}
	duration := req.DurationSeconds
	if duration <= 0 {
		duration = DefaultDurationSeconds
	}

	attempt, questions, expiresAt, remaining, err := s.factory.CreateAttempt(CreateAttemptParams{
		UserID:          userID,
		Subject:         subject,
		QuestionType:    questionType,
		Size:            size,
		DurationSeconds: duration,
		Mode:            model.AttemptModePractice,
	})
	if err != nil {
		return nil, err
	}

	return &dto.StartAttemptResponse{
		AttemptID:        attempt.ID,
		Subject:          subjectToResponse(subject),
		QuestionType:     attempt.QuestionType,
		DurationSeconds:  attempt.DurationSeconds,
		StartedAt:        attempt.StartedAt,
		ExpiresAt:        expiresAt,
		RemainingSeconds: remaining,
		Mode:             attempt.Mode,
		Questions:        questions,
	}, nil
}

// GetAttemptDetail returns the live paper for ongoing attempts and the full
// scored result for terminal ones. The guard side effect means the first
// request after the deadline is the one that finalizes the attempt.
func (s *attemptService) GetAttemptDetail(userID, attemptID uint) (*dto.AttemptDetailResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindForUpdate(tx, attemptID, &userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}
		_, _, _, err = s.guard.EnsureNotExpired(tx, attempt)
		return err
	})
	if err != nil {
		return nil, err
	}

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

	return &dto.AttemptDetailResponse{
		Attempt:          attemptToResponse(attempt),
		Items:            itemsToResponses(attempt, items, wrongIDs, false),
		ExpiresAt:        attempt.ExpiresAt(),
		RemainingSeconds: attempt.RemainingSeconds(s.clk.Now()),
	}, nil
}

func (s *attemptService) History(userID uint, filter repository.AttemptHistoryFilter) (*dto.AttemptHistoryResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 10
	}
	attempts, total, err := s.attemptRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, err
	}
	results := make([]dto.AttemptResponse, 0, len(attempts))
	for i := range attempts {
		results = append(results, attemptToResponse(&attempts[i]))
	}
	return &dto.AttemptHistoryResponse{
		Results:  results,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Ongoing lists attempts whose window is still open. Attempts found to have
// elapsed are finalized in passing and omitted from the listing.
func (s *attemptService) Ongoing(userID uint, mode string) ([]dto.OngoingAttemptResponse, error) {
	attempts, err := s.attemptRepo.ListOngoingByUser(userID, mode)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OngoingAttemptResponse, 0, len(attempts))
	for i := range attempts {
		snapshot := &attempts[i]
		var resp *dto.OngoingAttemptResponse
		err := s.db.Transaction(func(tx *gorm.DB) error {
			attempt, err := s.attemptRepo.FindForUpdate(tx, snapshot.ID, &userID)
			if err != nil {
				return err
			}
			expiresAt, remaining, _, err := s.guard.EnsureNotExpired(tx, attempt)
			if err != nil {
				return err
			}
			if attempt.Status != model.AttemptStatusOngoing {
				return nil
			}
			entry := dto.OngoingAttemptResponse{
				ID:               attempt.ID,
				SubjectID:        attempt.SubjectID,
				SubjectName:      snapshot.Subject.Name,
				QuestionType:     attempt.QuestionType,
				TotalQuestions:   attempt.TotalQuestions,
				StartedAt:        attempt.StartedAt,
				ExpiresAt:        expiresAt,
				RemainingSeconds: remaining,
				Mode:             attempt.Mode,
				AssignmentID:     attempt.AssignmentID,
			}
			if snapshot.Assignment != nil {
				entry.AssignmentTitle = snapshot.Assignment.Title
			}
			resp = &entry
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses, nil
}

func (s *attemptService) PendingReviews(userID uint, mode string) ([]dto.PendingReviewAttemptResponse, error) {
	attempts, err := s.attemptRepo.ListPendingReviewByUser(userID, mode)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.PendingReviewAttemptResponse, 0, len(attempts))
	for i := range attempts {
		responses = append(responses, pendingReviewToResponse(&attempts[i]))
	}
	return responses, nil
}
