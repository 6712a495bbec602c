package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionTypeObjective  = "objective"
	QuestionTypeSubjective = "subjective"
	// QuestionTypeMixed is only valid on attempts/assignments, never on a
	// single question.
	QuestionTypeMixed = "mixed"
)

const (
	QuestionStatusDraft    = "draft"
	QuestionStatusReady    = "ready"
	QuestionStatusArchived = "archived"
)

// Question supports objective (option based, auto scored) and subjective
// (free text, teacher reviewed) items. Only status=ready questions are
// eligible for paper selection.
type Question struct {
	ID           uint              `gorm:"primarykey" json:"id"`
	SubjectID    uint              `json:"subject_id" gorm:"not null;index"`
	Subject      Subject           `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	QuestionType string            `json:"question_type" gorm:"size:16;not null;default:'objective';index"`
	Status       string            `json:"status" gorm:"size:16;not null;default:'ready';index"`
	Content      string            `json:"content" gorm:"type:text;not null"`
	Options      datatypes.JSONMap `json:"options,omitempty"` // label -> text, objective only
	Answer       string            `json:"answer" gorm:"type:text;not null"`
	Analysis     string            `json:"analysis,omitempty" gorm:"type:text"`
	Score        int               `json:"score" gorm:"not null;default:0"`
	MediaURL     *string           `json:"media_url,omitempty"`
	CreatedByID  *uint             `json:"created_by,omitempty" gorm:"index"`
	Metadata     datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ValidQuestionType reports whether t names a concrete question type.
func ValidQuestionType(t string) bool {
	return t == QuestionTypeObjective || t == QuestionTypeSubjective
}

// ValidPaperType additionally allows mixed, which is legal for attempts and
// assignments.
func ValidPaperType(t string) bool {
	return ValidQuestionType(t) || t == QuestionTypeMixed
}
