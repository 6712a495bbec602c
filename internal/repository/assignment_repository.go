package repository

import (
	"github.com/quizace/quizace-backend/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.ExamAssignment) error
	FindByID(id uint) (*model.ExamAssignment, error)
	ListByCreator(teacherID uint) ([]model.ExamAssignment, error)
	ListPublished() ([]model.ExamAssignment, error)
	CountAttempts(assignmentID uint) (int64, error)
	CountPendingReviews(assignmentID uint) (int64, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.ExamAssignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id uint) (*model.ExamAssignment, error) {
	var assignment model.ExamAssignment
	err := r.db.
		Preload("Subject").
		Preload("CreatedBy").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) ListByCreator(teacherID uint) ([]model.ExamAssignment, error) {
	var assignments []model.ExamAssignment
	err := r.db.
		Preload("Subject").
		Preload("CreatedBy").
		Where("created_by_id = ?", teacherID).
		Order("start_time DESC, id DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) ListPublished() ([]model.ExamAssignment, error) {
	var assignments []model.ExamAssignment
	err := r.db.
		Preload("Subject").
		Preload("CreatedBy").
		Where("status = ?", model.AssignmentStatusPublished).
		Order("start_time ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) CountAttempts(assignmentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PracticeAttempt{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepository) CountPendingReviews(assignmentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.PracticeAttempt{}).
		Where("assignment_id = ? AND is_review_required = ?", assignmentID, true).
		Count(&count).Error
	return count, err
}
