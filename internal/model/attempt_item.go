package model

// PracticeAttemptItem is one question's slot within an attempt.
//
// ExpectedScore freezes the question's effective point value at attempt
// creation so later edits to the Question row never corrupt in-flight or
// historical attempts. Legacy rows created before the column existed carry
// zero and fall back to the score resolver.
type PracticeAttemptItem struct {
	ID            uint     `gorm:"primarykey" json:"id"`
	AttemptID     uint     `json:"attempt_id" gorm:"not null;index;uniqueIndex:idx_attempt_item_order"`
	QuestionID    uint     `json:"question_id" gorm:"not null;index"`
	Question      Question `json:"question,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:RESTRICT"`
	Order         int      `json:"order" gorm:"not null;default:1;uniqueIndex:idx_attempt_item_order"`
	UserAnswer    string   `json:"user_answer" gorm:"type:text"`
	IsCorrect     *bool    `json:"is_correct"` // nil until scored; always nil for subjective
	AwardedScore  int      `json:"awarded_score" gorm:"not null;default:0"`
	ExpectedScore int      `json:"expected_score" gorm:"not null;default:0"`
}
