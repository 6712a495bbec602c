package repository

import (
	"github.com/quizace/quizace-backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	Update(question *model.Question) error
	// FindReadyBySubjectAndType returns the selection pool: every ready
	// question matching subject and type, subject preloaded.
	FindReadyBySubjectAndType(subjectID uint, questionType string) ([]model.Question, error)
	// FindByIDsOrdered loads the given questions and returns them in the
	// order the ids were supplied (fixed mixed papers).
	FindByIDsOrdered(ids []uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Preload("Subject").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) FindReadyBySubjectAndType(subjectID uint, questionType string) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Subject").
		Where("subject_id = ? AND question_type = ? AND status = ?", subjectID, questionType, model.QuestionStatusReady).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindByIDsOrdered(ids []uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Preload("Subject").Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}
