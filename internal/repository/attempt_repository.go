package repository

import (
	"github.com/quizace/quizace-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptHistoryFilter narrows the history listing. A zero Status keeps
// every terminal attempt and excludes ongoing ones.
type AttemptHistoryFilter struct {
	SubjectID    *uint
	QuestionType string
	Status       string
	Mode         string
	Page         int
	PageSize     int
}

// PendingReviewFilter narrows the teacher review queue. AssignmentID of
// "practice" keeps only unassigned attempts; a numeric value keeps one
// assignment's attempts.
type PendingReviewFilter struct {
	AssignmentID string
	StudentID    *uint
}

type AttemptRepository interface {
	// Create persists the attempt together with its items; callers wrap it
	// in a transaction so partial papers are never observable.
	Create(tx *gorm.DB, attempt *model.PracticeAttempt) error

	FindByIDAndUser(id, userID uint) (*model.PracticeAttempt, error)
	FindByID(id uint) (*model.PracticeAttempt, error)

	// FindForUpdate takes the per-attempt exclusive row lock inside tx.
	// userID narrows ownership when non-nil. Terminal-state guards must be
	// re-checked on the returned row, not on any earlier read.
	FindForUpdate(tx *gorm.DB, id uint, userID *uint) (*model.PracticeAttempt, error)

	UpdateFields(tx *gorm.DB, attempt *model.PracticeAttempt, fields ...string) error

	ListItems(tx *gorm.DB, attemptID uint) ([]model.PracticeAttemptItem, error)
	FindItemForUser(itemID, userID uint) (*model.PracticeAttemptItem, error)
	UpdateItemAnswers(tx *gorm.DB, items []model.PracticeAttemptItem) error
	UpdateItemResults(tx *gorm.DB, items []model.PracticeAttemptItem) error
	UpdateItemScores(tx *gorm.DB, items []model.PracticeAttemptItem) error

	ListByUser(userID uint, filter AttemptHistoryFilter) ([]model.PracticeAttempt, int64, error)
	ListOngoingByUser(userID uint, mode string) ([]model.PracticeAttempt, error)
	ListPendingReviewByUser(userID uint, mode string) ([]model.PracticeAttempt, error)
	ListPendingReviewForTeacher(teacherID uint, filter PendingReviewFilter) ([]model.PracticeAttempt, error)
	LatestByAssignmentAndUser(assignmentID, userID uint) (*model.PracticeAttempt, error)
	ListByAssignment(assignmentID uint) ([]model.PracticeAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(tx *gorm.DB, attempt *model.PracticeAttempt) error {
	return tx.Create(attempt).Error
}

func (r *attemptRepository) FindByIDAndUser(id, userID uint) (*model.PracticeAttempt, error) {
	var attempt model.PracticeAttempt
	err := r.db.
		Preload("Subject").
		Preload("Assignment").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByID(id uint) (*model.PracticeAttempt, error) {
	var attempt model.PracticeAttempt
	err := r.db.
		Preload("User").
		Preload("Subject").
		Preload("Assignment").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindForUpdate(tx *gorm.DB, id uint, userID *uint) (*model.PracticeAttempt, error) {
	var attempt model.PracticeAttempt
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) UpdateFields(tx *gorm.DB, attempt *model.PracticeAttempt, fields ...string) error {
	return tx.Model(attempt).Select(fields).Updates(attempt).Error
}

func (r *attemptRepository) ListItems(tx *gorm.DB, attemptID uint) ([]model.PracticeAttemptItem, error) {
	var items []model.PracticeAttemptItem
	err := tx.
		Preload("Question").
		Preload("Question.Subject").
		Where("attempt_id = ?", attemptID).
		Order(`"order" ASC, id ASC`).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *attemptRepository) FindItemForUser(itemID, userID uint) (*model.PracticeAttemptItem, error) {
	var item model.PracticeAttemptItem
	err := r.db.
		Preload("Question").
		Preload("Question.Subject").
		Joins("JOIN practice_attempts ON practice_attempts.id = practice_attempt_items.attempt_id").
		Where("practice_attempt_items.id = ? AND practice_attempts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *attemptRepository) UpdateItemAnswers(tx *gorm.DB, items []model.PracticeAttemptItem) error {
	return r.updateItems(tx, items, "user_answer")
}

func (r *attemptRepository) UpdateItemResults(tx *gorm.DB, items []model.PracticeAttemptItem) error {
	return r.updateItems(tx, items, "user_answer", "is_correct", "awarded_score")
}

func (r *attemptRepository) UpdateItemScores(tx *gorm.DB, items []model.PracticeAttemptItem) error {
	return r.updateItems(tx, items, "awarded_score")
}

func (r *attemptRepository) updateItems(tx *gorm.DB, items []model.PracticeAttemptItem, fields ...string) error {
	for i := range items {
		err := tx.Model(&model.PracticeAttemptItem{}).
			Where("id = ?", items[i].ID).
			Select(fields).
			Updates(&items[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *attemptRepository) ListByUser(userID uint, filter AttemptHistoryFilter) ([]model.PracticeAttempt, int64, error) {
	query := r.db.Model(&model.PracticeAttempt{}).Where("user_id = ?", userID)
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if model.ValidPaperType(filter.QuestionType) {
		query = query.Where("question_type = ?", filter.QuestionType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else {
		query = query.Where("status <> ?", model.AttemptStatusOngoing)
	}
	if filter.Mode == model.AttemptModePractice || filter.Mode == model.AttemptModeExam {
		query = query.Where("mode = ?", filter.Mode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.PracticeAttempt
	err := query.
		Preload("Subject").
		Preload("Assignment").
		Order("started_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *attemptRepository) ListOngoingByUser(userID uint, mode string) ([]model.PracticeAttempt, error) {
	query := r.db.
		Preload("Subject").
		Preload("Assignment").
		Where("user_id = ? AND status = ?", userID, model.AttemptStatusOngoing)
	if mode == model.AttemptModePractice || mode == model.AttemptModeExam {
		query = query.Where("mode = ?", mode)
	}
	var attempts []model.PracticeAttempt
	if err := query.Order("started_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListPendingReviewByUser(userID uint, mode string) ([]model.PracticeAttempt, error) {
	query := r.db.
		Preload("Subject").
		Preload("Assignment").
		Where("user_id = ? AND is_review_required = ? AND status IN ?",
			userID, true, []string{model.AttemptStatusCompleted, model.AttemptStatusExpired})
	if mode == model.AttemptModePractice || mode == model.AttemptModeExam {
		query = query.Where("mode = ?", mode)
	}
	var attempts []model.PracticeAttempt
	if err := query.Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) ListPendingReviewForTeacher(teacherID uint, filter PendingReviewFilter) ([]model.PracticeAttempt, error) {
	query := r.db.
		Preload("User").
		Preload("Subject").
		Preload("Assignment").
		Joins("LEFT JOIN exam_assignments ON exam_assignments.id = practice_attempts.assignment_id").
		Where("practice_attempts.is_review_required = ? AND practice_attempts.status IN ?",
			true, []string{model.AttemptStatusCompleted, model.AttemptStatusExpired}).
		Where("exam_assignments.id IS NULL OR exam_assignments.created_by_id = ?", teacherID)

	switch {
	case filter.AssignmentID == "practice":
		query = query.Where("practice_attempts.assignment_id IS NULL")
	case filter.AssignmentID != "":
		query = query.Where("practice_attempts.assignment_id = ?", filter.AssignmentID)
	}
	if filter.StudentID != nil {
		query = query.Where("practice_attempts.user_id = ?", *filter.StudentID)
	}

	var attempts []model.PracticeAttempt
	if err := query.Order("practice_attempts.submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) LatestByAssignmentAndUser(assignmentID, userID uint) (*model.PracticeAttempt, error) {
	var attempt model.PracticeAttempt
	err := r.db.
		Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) ListByAssignment(assignmentID uint) ([]model.PracticeAttempt, error) {
	var attempts []model.PracticeAttempt
	err := r.db.
		Preload("User").
		Preload("Subject").
		Where("assignment_id = ?", assignmentID).
		Order("started_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
