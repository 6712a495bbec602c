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

// ReviewService is the teacher-side manual scoring workflow for attempts
// holding subjective items.
type ReviewService interface {
	Review(teacher *model.User, attemptID uint, req dto.ReviewAttemptRequest) (*dto.AttemptResultResponse, error)
	PendingForTeacher(teacherID uint, filter repository.PendingReviewFilter) ([]dto.PendingReviewAttemptResponse, error)
	PendingByStudent(teacherID uint, filter repository.PendingReviewFilter) ([]dto.StudentPendingReviewsResponse, error)
	AttemptDetailForTeacher(teacher *model.User, attemptID uint) (*dto.AttemptResultResponse, error)
}

type reviewService struct {
	db             *gorm.DB
	attemptRepo    repository.AttemptRepository
	assignmentRepo repository.AssignmentRepository
	wrongBookRepo  repository.WrongBookRepository
	clk            clock.Clock
}

func NewReviewService(
	db *gorm.DB,
	attemptRepo repository.AttemptRepository,
	assignmentRepo repository.AssignmentRepository,
	wrongBookRepo repository.WrongBookRepository,
	clk clock.Clock,
) ReviewService {
	return &reviewService{
		db:             db,
		attemptRepo:    attemptRepo,
		assignmentRepo: assignmentRepo,
		wrongBookRepo:  wrongBookRepo,
		clk:            clk,
	}
}

// Review applies teacher scores to the attempt's subjective items and clears
// the pending-review flag. Scores are clamped into [0, item max]; submitted
// entries that do not match a subjective item of this attempt are ignored,
// but at least one must match.
func (s *reviewService) Review(teacher *model.User, attemptID uint, req dto.ReviewAttemptRequest) (*dto.AttemptResultResponse, error) {
	var studentID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindForUpdate(tx, attemptID, nil)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttemptNotFound
			}
			return err
		}
		if err := s.authorizeReviewer(teacher, attempt); err != nil {
			return err
		}
		if !attempt.IsTerminal() || !attempt.IsReviewRequired {
			return ErrReviewNotRequired
		}

		items, err := s.attemptRepo.ListItems(tx, attempt.ID)
		if err != nil {
			return err
		}

		changed, matched, hasSubjective := applyReviewScores(items, req.Items)
		if !hasSubjective {
			return ErrNoSubjectiveItems
		}
		if matched == 0 {
			return ErrNoScoresProvided
		}
		if err := s.attemptRepo.UpdateItemScores(tx, changed); err != nil {
			return fmt.Errorf("persisting review scores for attempt %d: %w", attempt.ID, err)
		}

		obtained, total := tallyScores(items)
		now := s.clk.Now()
		attempt.ObtainedScore = obtained
		attempt.TotalScore = total
		attempt.IsReviewRequired = false
		attempt.ReviewedByID = &teacher.ID
		attempt.ReviewedAt = &now
		if req.ReviewComment != "" {
			comment := req.ReviewComment
			attempt.ReviewComment = &comment
		}

		fields := []string{"obtained_score", "total_score", "is_review_required", "reviewed_by_id", "reviewed_at", "review_comment"}
		if err := s.attemptRepo.UpdateFields(tx, attempt, fields...); err != nil {
			return fmt.Errorf("finalizing review of attempt %d: %w", attempt.ID, err)
		}

		studentID = attempt.UserID
		log.Info().
			Uint("attempt_id", attempt.ID).
			Uint("reviewer_id", teacher.ID).
			Int("items_scored", matched).
			Int("obtained", obtained).
			Msg("Attempt reviewed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.renderForTeacher(attemptID, studentID)
}

func (s *reviewService) PendingForTeacher(teacherID uint, filter repository.PendingReviewFilter) ([]dto.PendingReviewAttemptResponse, error) {
	attempts, err := s.attemptRepo.ListPendingReviewForTeacher(teacherID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.PendingReviewAttemptResponse, 0, len(attempts))
	for i := range attempts {
		responses = append(responses, pendingReviewToResponse(&attempts[i]))
	}
	return responses, nil
}

// PendingByStudent groups the teacher's review queue per student, newest
// submission first within each group.
func (s *reviewService) PendingByStudent(teacherID uint, filter repository.PendingReviewFilter) ([]dto.StudentPendingReviewsResponse, error) {
	attempts, err := s.attemptRepo.ListPendingReviewForTeacher(teacherID, filter)
	if err != nil {
		return nil, err
	}

	index := make(map[uint]int)
	groups := make([]dto.StudentPendingReviewsResponse, 0)
	for i := range attempts {
		attempt := &attempts[i]
		pos, ok := index[attempt.UserID]
		if !ok {
			pos = len(groups)
			index[attempt.UserID] = pos
			groups = append(groups, dto.StudentPendingReviewsResponse{
				StudentID:   attempt.UserID,
				StudentName: attempt.User.Username,
			})
		}
		groups[pos].PendingCount++
		groups[pos].Attempts = append(groups[pos].Attempts, pendingReviewToResponse(attempt))
		if attempt.SubmittedAt != nil {
			latest := groups[pos].LatestSubmittedAt
			if latest == nil || attempt.SubmittedAt.After(*latest) {
				groups[pos].LatestSubmittedAt = attempt.SubmittedAt
			}
		}
	}
	return groups, nil
}

// AttemptDetailForTeacher shows the full scored attempt with solutions
// revealed, for grading.
func (s *reviewService) AttemptDetailForTeacher(teacher *model.User, attemptID uint) (*dto.AttemptResultResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	if err := s.authorizeReviewer(teacher, attempt); err != nil {
		return nil, err
	}
	return s.renderForTeacher(attemptID, attempt.UserID)
}

// authorizeReviewer allows any teacher on free practice attempts, but
// assignment attempts only their creating teacher. Admins pass always.
func (s *reviewService) authorizeReviewer(teacher *model.User, attempt *model.PracticeAttempt) error {
	if teacher.Role == model.RoleAdmin || attempt.AssignmentID == nil {
		return nil
	}
	assignment, err := s.assignmentRepo.FindByID(*attempt.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if assignment.CreatedByID != teacher.ID {
		return ErrForbidden
	}
	return nil
}

func (s *reviewService) renderForTeacher(attemptID, studentID uint) (*dto.AttemptResultResponse, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, err
	}
	items, err := s.attemptRepo.ListItems(s.db, attempt.ID)
	if err != nil {
		return nil, err
	}
	wrongIDs, err := s.wrongBookRepo.QuestionIDsForUser(studentID, itemQuestionIDs(items))
	if err != nil {
		return nil, err
	}
	return &dto.AttemptResultResponse{
		Attempt: attemptToResponse(attempt),
		Items:   itemsToResponses(attempt, items, wrongIDs, true),
	}, nil
}

// applyReviewScores mutates matched subjective items in place and returns
// the changed subset. Entries targeting objective items or other attempts
// are dropped.
func applyReviewScores(items []model.PracticeAttemptItem, scores []dto.ReviewItemScore) (changed []model.PracticeAttemptItem, matched int, hasSubjective bool) {
	byItem := make(map[uint]int, len(scores))
	for _, s := range scores {
		byItem[s.ItemID] = s.AwardedScore
	}
	for i := range items {
		item := &items[i]
		if item.Question.QuestionType != model.QuestionTypeSubjective {
			continue
		}
		hasSubjective = true
		score, ok := byItem[item.ID]
		if !ok {
			continue
		}
		matched++
		item.AwardedScore = clampScore(score, itemMaxScore(item))
		changed = append(changed, *item)
	}
	return changed, matched, hasSubjective
}

// tallyScores recomputes the attempt aggregates from its items. The total is
// rebuilt from item maxima so legacy rows with a zero total heal on review,
// and the obtained sum is clamped into [0, total].
func tallyScores(items []model.PracticeAttemptItem) (obtained, total int) {
	for i := range items {
		total += itemMaxScore(&items[i])
		obtained += items[i].AwardedScore
	}
	obtained = clampScore(obtained, total)
	return obtained, total
}

func clampScore(score, max int) int {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}
