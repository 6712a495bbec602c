package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// QuestionResponse is the teacher/wrong-book view carrying the solution.
type QuestionResponse struct {
	ID           uint              `json:"id"`
	SubjectID    uint              `json:"subject_id"`
	SubjectName  string            `json:"subject_name,omitempty"`
	QuestionType string            `json:"question_type"`
	Status       string            `json:"status"`
	Content      string            `json:"content"`
	Options      map[string]any    `json:"options,omitempty"`
	Answer       string            `json:"answer"`
	Analysis     string            `json:"analysis,omitempty"`
	Score        int               `json:"score"`
	MediaURL     *string           `json:"media_url,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// PracticeQuestionResponse is the student-facing payload while an attempt
// is live: no reference answer, no analysis, resolved effective score.
type PracticeQuestionResponse struct {
	ID           uint           `json:"id"`
	QuestionType string         `json:"question_type"`
	Content      string         `json:"content"`
	Options      map[string]any `json:"options,omitempty"`
	Score        int            `json:"score"`
	Order        int            `json:"order"`
	SubjectName  string         `json:"subject_name,omitempty"`
	MediaURL     *string        `json:"media_url,omitempty"`
}

type AssignmentResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	SubjectID       uint      `json:"subject_id"`
	SubjectName     string    `json:"subject_name,omitempty"`
	QuestionType    string    `json:"question_type"`
	QuestionCount   int       `json:"question_count"`
	DurationSeconds int       `json:"duration_seconds"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	Phase           string    `json:"phase"`
	Description     string    `json:"description,omitempty"`
	QuestionIDs     []uint    `json:"question_ids,omitempty"`
	CreatedByID     uint      `json:"created_by"`
	CreatedByName   string    `json:"created_by_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Teacher listings only.
	TotalAttempts  *int64 `json:"total_attempts,omitempty"`
	PendingReviews *int64 `json:"pending_reviews,omitempty"`

	// Student availability listing only.
	AttemptID     *uint   `json:"attempt_id,omitempty"`
	AttemptStatus *string `json:"attempt_status,omitempty"`
	AttemptMode   *string `json:"attempt_mode,omitempty"`
}

type WrongBookSubjectSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type WrongBookEntryResponse struct {
	ID             uint             `json:"id"`
	SubjectID      uint             `json:"subject_id"`
	SubjectName    string           `json:"subject_name,omitempty"`
	Question       QuestionResponse `json:"question"`
	LastUserAnswer string           `json:"last_user_answer"`
	WrongTimes     int              `json:"wrong_times"`
	LastWrongAt    time.Time        `json:"last_wrong_at"`
	CreatedAt      time.Time        `json:"created_at"`
}

type WrongBookListResponse struct {
	Results  []WrongBookEntryResponse  `json:"results"`
	Total    int64                     `json:"total"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
	Subjects []WrongBookSubjectSummary `json:"subjects"`
}
