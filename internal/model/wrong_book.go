package model

import "time"

// WrongBookEntry is the per-(student, question) ledger of wrong answers.
// The unique pair is upserted: first wrong answer creates the entry, later
// ones bump the counter and replace the back-references.
type WrongBookEntry struct {
	ID                uint                 `gorm:"primarykey" json:"id"`
	UserID            uint                 `json:"user_id" gorm:"not null;uniqueIndex:idx_wrong_user_question"`
	QuestionID        uint                 `json:"question_id" gorm:"not null;uniqueIndex:idx_wrong_user_question"`
	Question          Question             `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:RESTRICT"`
	SubjectID         uint                 `json:"subject_id" gorm:"not null;index"`
	Subject           Subject              `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	LastAttemptID     *uint                `json:"last_attempt_id,omitempty"`
	LastAttempt       *PracticeAttempt     `json:"-" gorm:"foreignKey:LastAttemptID;constraint:OnDelete:SET NULL"`
	LastAttemptItemID *uint                `json:"last_attempt_item_id,omitempty"`
	LastAttemptItem   *PracticeAttemptItem `json:"-" gorm:"foreignKey:LastAttemptItemID;constraint:OnDelete:SET NULL"`
	LastUserAnswer    string               `json:"last_user_answer" gorm:"type:text"`
	WrongTimes        int                  `json:"wrong_times" gorm:"not null;default:1"`
	LastWrongAt       time.Time            `json:"last_wrong_at" gorm:"not null"`
	CreatedAt         time.Time            `json:"created_at"`
}
