package dto

import "time"

// StartPracticeRequest begins a self-service practice attempt.
type StartPracticeRequest struct {
	SubjectID       uint   `json:"subject_id" binding:"required"`
	QuestionType    string `json:"question_type" binding:"omitempty,oneof=objective subjective"`
	Size            int    `json:"size" binding:"omitempty,min=1"`
	DurationSeconds int    `json:"duration_seconds" binding:"omitempty,min=1"`
}

// AnswerInput carries one question's submitted answer text.
type AnswerInput struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer"`
}

// SubmitAttemptRequest is the complete intended answer set: questions not
// listed are treated as unanswered on evaluation.
type SubmitAttemptRequest struct {
	Answers []AnswerInput `json:"answers" binding:"dive"`
}

// SaveAnswersRequest stores draft answers without scoring.
type SaveAnswersRequest struct {
	Answers []AnswerInput `json:"answers" binding:"dive"`
}

// ReviewItemScore assigns a score to one subjective item.
type ReviewItemScore struct {
	ItemID       uint `json:"id" binding:"required"`
	AwardedScore int  `json:"awarded_score"`
}

// ReviewAttemptRequest is the teacher's manual scoring payload.
type ReviewAttemptRequest struct {
	Items         []ReviewItemScore `json:"items" binding:"dive"`
	ReviewComment string            `json:"review_comment"`
}

// AddWrongBookRequest registers a finalized attempt item into the caller's
// wrong book.
type AddWrongBookRequest struct {
	AttemptItemID uint `json:"attempt_item_id" binding:"required"`
}

// CreateAssignmentRequest publishes an exam. Mixed papers must supply
// QuestionIDs; ScoreOverrides optionally replaces the resolved score per
// question id.
type CreateAssignmentRequest struct {
	Title           string       `json:"title" binding:"required"`
	SubjectID       uint         `json:"subject_id" binding:"required"`
	QuestionType    string       `json:"question_type" binding:"required,oneof=objective subjective mixed"`
	QuestionCount   int          `json:"question_count" binding:"omitempty,min=1"`
	DurationSeconds int          `json:"duration_seconds" binding:"omitempty,min=1"`
	StartTime       time.Time    `json:"start_time" binding:"required"`
	EndTime         time.Time    `json:"end_time" binding:"required"`
	Status          string       `json:"status" binding:"omitempty,oneof=draft published closed"`
	Description     string       `json:"description"`
	QuestionIDs     []uint       `json:"question_ids"`
	ScoreOverrides  map[uint]int `json:"score_overrides"`
}

// CreateQuestionRequest authors a new question (teacher only).
type CreateQuestionRequest struct {
	SubjectID    uint              `json:"subject_id" binding:"required"`
	QuestionType string            `json:"question_type" binding:"required,oneof=objective subjective"`
	Status       string            `json:"status" binding:"omitempty,oneof=draft ready archived"`
	Content      string            `json:"content" binding:"required"`
	Options      map[string]string `json:"options"`
	Answer       string            `json:"answer" binding:"required"`
	Analysis     string            `json:"analysis"`
	Score        int               `json:"score" binding:"omitempty,min=0"`
	MediaURL     *string           `json:"media_url"`
}

// UpdateQuestionRequest corrects an existing question. Nil fields keep the
// stored value.
type UpdateQuestionRequest struct {
	Status   *string            `json:"status" binding:"omitempty,oneof=draft ready archived"`
	Content  *string            `json:"content"`
	Options  *map[string]string `json:"options"`
	Answer   *string            `json:"answer"`
	Analysis *string            `json:"analysis"`
	Score    *int               `json:"score" binding:"omitempty,min=0"`
}
