package service

import (
	"errors"

	"github.com/quizace/quizace-backend/internal/clock"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// WrongBookService maintains the per-student ledger of wrongly answered
// questions. Entries are student-initiated from finalized attempt items, one
// entry per (student, question) pair.
type WrongBookService interface {
	Register(userID uint, req dto.AddWrongBookRequest) (*dto.WrongBookEntryResponse, error)
	List(userID uint, subjectID *uint, page, pageSize int) (*dto.WrongBookListResponse, error)
	Remove(userID, entryID uint) error
}

type wrongBookService struct {
	attemptRepo   repository.AttemptRepository
	wrongBookRepo repository.WrongBookRepository
	clk           clock.Clock
}

func NewWrongBookService(
	attemptRepo repository.AttemptRepository,
	wrongBookRepo repository.WrongBookRepository,
	clk clock.Clock,
) WrongBookService {
	return &wrongBookService{
		attemptRepo:   attemptRepo,
		wrongBookRepo: wrongBookRepo,
		clk:           clk,
	}
}

// Register adds one attempt item's question to the caller's wrong book. The
// attempt must be finalized and fully scored, and the item actually wrong:
// an objective item judged incorrect, or a subjective item awarded less than
// its maximum.
func (s *wrongBookService) Register(userID uint, req dto.AddWrongBookRequest) (*dto.WrongBookEntryResponse, error) {
	item, err := s.attemptRepo.FindItemForUser(req.AttemptItemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptItemNotFound
		}
		return nil, err
	}
	attempt, err := s.attemptRepo.FindByIDAndUser(item.AttemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptStatusOngoing {
		return nil, ErrAttemptOngoing
	}
	if attempt.IsReviewRequired && item.Question.QuestionType == model.QuestionTypeSubjective {
		return nil, ErrPendingReview
	}
	if !isItemWrong(item) {
		return nil, ErrNotWrong
	}

	// One atomic upsert on the (user, question) pair; concurrent registers
	// collapse into counter bumps instead of racing a find-then-create.
	now := s.clk.Now()
	if err := s.wrongBookRepo.Upsert(&model.WrongBookEntry{
		UserID:            userID,
		QuestionID:        item.QuestionID,
		SubjectID:         item.Question.SubjectID,
		LastAttemptID:     &item.AttemptID,
		LastAttemptItemID: &item.ID,
		LastUserAnswer:    item.UserAnswer,
		WrongTimes:        1,
		LastWrongAt:       now,
	}); err != nil {
		return nil, err
	}
	entry, err := s.wrongBookRepo.FindByUserAndQuestion(userID, item.QuestionID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("user_id", userID).
		Uint("question_id", item.QuestionID).
		Int("wrong_times", entry.WrongTimes).
		Msg("Wrong book entry recorded")

	entry.Question = item.Question
	entry.Subject = item.Question.Subject
	resp := wrongBookEntryToResponse(entry)
	return &resp, nil
}

func (s *wrongBookService) List(userID uint, subjectID *uint, page, pageSize int) (*dto.WrongBookListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	entries, total, err := s.wrongBookRepo.ListByUser(userID, subjectID, page, pageSize)
	if err != nil {
		return nil, err
	}
	summary, err := s.wrongBookRepo.SubjectSummary(userID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.WrongBookEntryResponse, 0, len(entries))
	for i := range entries {
		results = append(results, wrongBookEntryToResponse(&entries[i]))
	}
	subjects := make([]dto.WrongBookSubjectSummary, 0, len(summary))
	for _, row := range summary {
		subjects = append(subjects, dto.WrongBookSubjectSummary{
			ID:    row.SubjectID,
			Name:  row.SubjectName,
			Count: row.Total,
		})
	}
	return &dto.WrongBookListResponse{
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Subjects: subjects,
	}, nil
}

func (s *wrongBookService) Remove(userID, entryID uint) error {
	entry, err := s.wrongBookRepo.FindByIDAndUser(entryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return s.wrongBookRepo.Delete(entry)
}

// isItemWrong decides eligibility per the item's own question type. An
// unjudged objective item (never evaluated) is not wrong.
func isItemWrong(item *model.PracticeAttemptItem) bool {
	if item.Question.QuestionType == model.QuestionTypeSubjective {
		return item.AwardedScore < itemMaxScore(item)
	}
	return item.IsCorrect != nil && !*item.IsCorrect
}

func wrongBookEntryToResponse(entry *model.WrongBookEntry) dto.WrongBookEntryResponse {
	return dto.WrongBookEntryResponse{
		ID:             entry.ID,
		SubjectID:      entry.SubjectID,
		SubjectName:    entry.Subject.Name,
		Question:       questionToResponse(&entry.Question),
		LastUserAnswer: entry.LastUserAnswer,
		WrongTimes:     entry.WrongTimes,
		LastWrongAt:    entry.LastWrongAt,
		CreatedAt:      entry.CreatedAt,
	}
}
