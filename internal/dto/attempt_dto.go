package dto

import "time"

// AttemptQuestionView is the per-item question rendering. Answer and
// Analysis are populated only when the solution visibility policy allows.
type AttemptQuestionView struct {
	ID           uint           `json:"id"`
	QuestionType string         `json:"question_type"`
	Content      string         `json:"content"`
	Options      map[string]any `json:"options,omitempty"`
	Score        int            `json:"score"`
	SubjectName  string         `json:"subject_name,omitempty"`
	MediaURL     *string        `json:"media_url,omitempty"`
	Answer       *string        `json:"answer,omitempty"`
	Analysis     *string        `json:"analysis,omitempty"`
}

type AttemptItemResponse struct {
	ID            uint                `json:"id"`
	Order         int                 `json:"order"`
	Question      AttemptQuestionView `json:"question"`
	UserAnswer    string              `json:"user_answer"`
	IsCorrect     *bool               `json:"is_correct"`
	AwardedScore  int                 `json:"awarded_score"`
	ExpectedScore int                 `json:"expected_score"`
	InWrongBook   bool                `json:"in_wrong_book"`
}

type AttemptResponse struct {
	ID               uint       `json:"id"`
	Mode             string     `json:"mode"`
	SubjectID        uint       `json:"subject_id"`
	SubjectName      string     `json:"subject_name,omitempty"`
	QuestionType     string     `json:"question_type"`
	DurationSeconds  int        `json:"duration_seconds"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectCount     int        `json:"correct_count"`
	TotalScore       int        `json:"total_score"`
	ObtainedScore    int        `json:"obtained_score"`
	Status           string     `json:"status"`
	IsReviewRequired bool       `json:"is_review_required"`
	StartedAt        time.Time  `json:"started_at"`
	SubmittedAt      *time.Time `json:"submitted_at,omitempty"`
	AssignmentID     *uint      `json:"assignment_id,omitempty"`
	AssignmentTitle  string     `json:"assignment_title,omitempty"`
	UserID           uint       `json:"user_id"`
	UserName         string     `json:"user_name,omitempty"`
	ReviewComment    *string    `json:"review_comment,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
}

type StartAttemptResponse struct {
	AttemptID        uint                       `json:"attempt_id"`
	Subject          SubjectResponse            `json:"subject"`
	QuestionType     string                     `json:"question_type"`
	DurationSeconds  int                        `json:"duration_seconds"`
	StartedAt        time.Time                  `json:"started_at"`
	ExpiresAt        time.Time                  `json:"expires_at"`
	RemainingSeconds int                        `json:"remaining_seconds"`
	Mode             string                     `json:"mode"`
	Questions        []PracticeQuestionResponse `json:"questions"`
	Assignment       *AssignmentResponse        `json:"assignment,omitempty"`
	Resumed          bool                       `json:"resumed,omitempty"`
}

type AttemptResultResponse struct {
	Attempt AttemptResponse       `json:"attempt"`
	Items   []AttemptItemResponse `json:"items"`
}

type AttemptDetailResponse struct {
	Attempt          AttemptResponse       `json:"attempt"`
	Items            []AttemptItemResponse `json:"items"`
	ExpiresAt        time.Time             `json:"expires_at"`
	RemainingSeconds int                   `json:"remaining_seconds"`
}

type SaveAnswersResponse struct {
	RemainingSeconds int       `json:"remaining_seconds"`
	ExpiresAt        time.Time `json:"expires_at"`
}

type AttemptHistoryResponse struct {
	Results  []AttemptResponse `json:"results"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type OngoingAttemptResponse struct {
	ID               uint      `json:"id"`
	SubjectID        uint      `json:"subject_id"`
	SubjectName      string    `json:"subject_name"`
	QuestionType     string    `json:"question_type"`
	TotalQuestions   int       `json:"total_questions"`
	StartedAt        time.Time `json:"started_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	RemainingSeconds int       `json:"remaining_seconds"`
	Mode             string    `json:"mode"`
	AssignmentID     *uint     `json:"assignment_id,omitempty"`
	AssignmentTitle  string    `json:"assignment_title,omitempty"`
}

type PendingReviewAttemptResponse struct {
	ID              uint       `json:"id"`
	StudentID       uint       `json:"student_id,omitempty"`
	StudentName     string     `json:"student_name,omitempty"`
	SubjectID       uint       `json:"subject_id"`
	SubjectName     string     `json:"subject_name"`
	AssignmentID    *uint      `json:"assignment_id,omitempty"`
	AssignmentTitle string     `json:"assignment_title,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	Status          string     `json:"status"`
	Mode            string     `json:"mode"`
	QuestionType    string     `json:"question_type"`
	TotalQuestions  int        `json:"total_questions"`
}

type StudentPendingReviewsResponse struct {
	StudentID         uint                           `json:"student_id"`
	StudentName       string                         `json:"student_name"`
	PendingCount      int                            `json:"pending_count"`
	LatestSubmittedAt *time.Time                     `json:"latest_submitted_at,omitempty"`
	Attempts          []PendingReviewAttemptResponse `json:"attempts"`
}

type AssignmentSubmissionsResponse struct {
	Assignment AssignmentResponse `json:"assignment"`
	Attempts   []AttemptResponse  `json:"attempts"`
}
