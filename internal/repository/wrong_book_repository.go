package repository

import (
	"github.com/quizace/quizace-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubjectCount is one row of the wrong-book per-subject summary.
type SubjectCount struct {
	SubjectID   uint
	SubjectName string
	Total       int64
}

type WrongBookRepository interface {
	// QuestionIDsForUser returns which of the given questions already sit
	// in the user's wrong book.
	QuestionIDsForUser(userID uint, questionIDs []uint) (map[uint]struct{}, error)
	FindByUserAndQuestion(userID, questionID uint) (*model.WrongBookEntry, error)
	// Upsert inserts the entry or, when the (user, question) row already
	// exists, bumps its counter and replaces the back-references in one
	// statement. Safe under concurrent registers for the same pair.
	Upsert(entry *model.WrongBookEntry) error
	ListByUser(userID uint, subjectID *uint, page, pageSize int) ([]model.WrongBookEntry, int64, error)
	SubjectSummary(userID uint) ([]SubjectCount, error)
	FindByIDAndUser(id, userID uint) (*model.WrongBookEntry, error)
	Delete(entry *model.WrongBookEntry) error
}

type wrongBookRepository struct {
	db *gorm.DB
}

func NewWrongBookRepository(db *gorm.DB) WrongBookRepository {
	return &wrongBookRepository{db: db}
}

func (r *wrongBookRepository) QuestionIDsForUser(userID uint, questionIDs []uint) (map[uint]struct{}, error) {
	result := make(map[uint]struct{})
	if len(questionIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&model.WrongBookEntry{}).
		Where("user_id = ? AND question_id IN ?", userID, questionIDs).
		Pluck("question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

func (r *wrongBookRepository) FindByUserAndQuestion(userID, questionID uint) (*model.WrongBookEntry, error) {
	var entry model.WrongBookEntry
	err := r.db.Where("user_id = ? AND question_id = ?", userID, questionID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wrongBookRepository) Upsert(entry *model.WrongBookEntry) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"wrong_times":          gorm.Expr("wrong_book_entries.wrong_times + 1"),
			"last_attempt_id":      entry.LastAttemptID,
			"last_attempt_item_id": entry.LastAttemptItemID,
			"last_user_answer":     entry.LastUserAnswer,
			"last_wrong_at":        entry.LastWrongAt,
		}),
	}).Create(entry).Error
}

func (r *wrongBookRepository) ListByUser(userID uint, subjectID *uint, page, pageSize int) ([]model.WrongBookEntry, int64, error) {
	query := r.db.Model(&model.WrongBookEntry{}).Where("user_id = ?", userID)
	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.WrongBookEntry
	err := query.
		Preload("Subject").
		Preload("Question").
		Preload("Question.Subject").
		Order("last_wrong_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *wrongBookRepository) SubjectSummary(userID uint) ([]SubjectCount, error) {
	var rows []SubjectCount
	err := r.db.Model(&model.WrongBookEntry{}).
		Select("wrong_book_entries.subject_id AS subject_id, subjects.name AS subject_name, COUNT(wrong_book_entries.id) AS total").
		Joins("JOIN subjects ON subjects.id = wrong_book_entries.subject_id").
		Where("wrong_book_entries.user_id = ?", userID).
		Group("wrong_book_entries.subject_id, subjects.name").
		Order("subjects.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *wrongBookRepository) FindByIDAndUser(id, userID uint) (*model.WrongBookEntry, error) {
	var entry model.WrongBookEntry
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wrongBookRepository) Delete(entry *model.WrongBookEntry) error {
	return r.db.Delete(entry).Error
}
