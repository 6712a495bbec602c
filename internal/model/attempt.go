package model

import "time"

const (
	AttemptStatusOngoing   = "ongoing"
	AttemptStatusCompleted = "completed"
	AttemptStatusExpired   = "expired"
)

const (
	AttemptModePractice = "practice"
	AttemptModeExam     = "exam"
)

// PracticeAttempt is one timed instance of a student answering a question
// set, either self-started practice or an exam assignment run.
//
// State machine: ongoing -> completed (submit before expiry) or
// ongoing -> expired (wall clock passes started_at + duration). Both
// terminal states absorb every later submit/expire.
type PracticeAttempt struct {
	ID               uint                  `gorm:"primarykey" json:"id"`
	UserID           uint                  `json:"user_id" gorm:"not null;index"`
	User             User                  `json:"-" gorm:"foreignKey:UserID"`
	SubjectID        uint                  `json:"subject_id" gorm:"not null;index"`
	Subject          Subject               `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	QuestionType     string                `json:"question_type" gorm:"size:16;not null"`
	DurationSeconds  int                   `json:"duration_seconds" gorm:"not null;default:1800"`
	TotalQuestions   int                   `json:"total_questions" gorm:"not null;default:0"`
	CorrectCount     int                   `json:"correct_count" gorm:"not null;default:0"`
	TotalScore       int                   `json:"total_score" gorm:"not null;default:0"`
	ObtainedScore    int                   `json:"obtained_score" gorm:"not null;default:0"`
	Status           string                `json:"status" gorm:"size:16;not null;default:'ongoing';index"`
	IsReviewRequired bool                  `json:"is_review_required" gorm:"not null;default:false"`
	StartedAt        time.Time             `json:"started_at" gorm:"not null"`
	SubmittedAt      *time.Time            `json:"submitted_at,omitempty"`
	Mode             string                `json:"mode" gorm:"size:16;not null;default:'practice'"`
	AssignmentID     *uint                 `json:"assignment_id,omitempty" gorm:"index"`
	Assignment       *ExamAssignment       `json:"-" gorm:"foreignKey:AssignmentID"`
	ReviewComment    *string               `json:"review_comment,omitempty" gorm:"type:text"`
	ReviewedByID     *uint                 `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time            `json:"reviewed_at,omitempty"`
	Items            []PracticeAttemptItem `json:"items,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ExpiresAt is pure wall-clock arithmetic; the attempt timer is never a
// scheduled callback.
func (a *PracticeAttempt) ExpiresAt() time.Time {
	return a.StartedAt.Add(time.Duration(a.DurationSeconds) * time.Second)
}

// DeadlinePassed reports whether now is strictly past the expiry instant.
// The comparison is on instants, not truncated seconds, so an attempt is
// never treated as expired while still inside its final second.
func (a *PracticeAttempt) DeadlinePassed(now time.Time) bool {
	return now.After(a.ExpiresAt())
}

// RemainingSeconds clamps at zero once the window has elapsed. It truncates
// to whole seconds and is for display; expiry decisions use DeadlinePassed.
func (a *PracticeAttempt) RemainingSeconds(now time.Time) int {
	remaining := int(a.ExpiresAt().Sub(now).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (a *PracticeAttempt) IsTerminal() bool {
	return a.Status == AttemptStatusCompleted || a.Status == AttemptStatusExpired
}
