package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
	AssignmentStatusClosed    = "closed"
)

const (
	AssignmentPhaseUpcoming = "upcoming"
	AssignmentPhaseOngoing  = "ongoing"
	AssignmentPhaseEnded    = "ended"
)

// ExamAssignment is a teacher-published exam. Mixed papers carry a fixed
// ordered question list plus optional per-question score overrides; other
// papers are drawn randomly at start time.
type ExamAssignment struct {
	ID              uint                             `gorm:"primarykey" json:"id"`
	Title           string                           `json:"title" gorm:"size:128;not null"`
	SubjectID       uint                             `json:"subject_id" gorm:"not null;index"`
	Subject         Subject                          `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	QuestionType    string                           `json:"question_type" gorm:"size:16;not null"`
	QuestionCount   int                              `json:"question_count" gorm:"not null;default:10"`
	DurationSeconds int                              `json:"duration_seconds" gorm:"not null;default:1800"`
	StartTime       time.Time                        `json:"start_time" gorm:"not null"`
	EndTime         time.Time                        `json:"end_time" gorm:"not null"`
	Status          string                           `json:"status" gorm:"size:16;not null;default:'published'"`
	Description     string                           `json:"description,omitempty" gorm:"type:text"`
	QuestionIDs     datatypes.JSONSlice[uint]        `json:"question_ids,omitempty"`
	ScoreOverrides  datatypes.JSONType[map[uint]int] `json:"score_overrides,omitempty"`
	CreatedByID     uint                             `json:"created_by" gorm:"not null;index"`
	CreatedBy       User                             `json:"-" gorm:"foreignKey:CreatedByID"`
	CreatedAt       time.Time                        `json:"created_at"`
	UpdatedAt       time.Time                        `json:"updated_at"`
}

// Phase derives the time-window state at now. It is recomputed on every
// read, never persisted.
func (a *ExamAssignment) Phase(now time.Time) string {
	switch {
	case now.Before(a.StartTime):
		return AssignmentPhaseUpcoming
	case now.After(a.EndTime):
		return AssignmentPhaseEnded
	default:
		return AssignmentPhaseOngoing
	}
}
