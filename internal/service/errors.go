package service

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors returned by the services. Controllers map these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrEmptyPool           = errors.New("no eligible questions for this subject and type")
	ErrEmptyPaper          = errors.New("mixed paper requires a fixed question list")

	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptNotOngoing   = errors.New("attempt is no longer ongoing")
	ErrAttemptItemNotFound = errors.New("attempt item not found")

	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentNotPublished = errors.New("assignment is not published")
	ErrAssignmentNotStarted   = errors.New("assignment has not started yet")
	ErrAssignmentEnded        = errors.New("assignment has already ended")
	ErrAssignmentAlreadyTaken = errors.New("assignment already completed by this student")
	ErrInvalidTimeWindow      = errors.New("end time must be after start time")

	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrReviewNotRequired = errors.New("attempt does not require review")
	ErrNoSubjectiveItems = errors.New("attempt has no subjective items")
	ErrNoScoresProvided  = errors.New("no item scores provided")

	ErrAttemptOngoing = errors.New("attempt is still ongoing")
	ErrPendingReview  = errors.New("attempt is pending teacher review")
	ErrNotWrong       = errors.New("item is not judged wrong")
	ErrEntryNotFound  = errors.New("wrong book entry not found")
)

// attemptLookupErr translates a missing attempt row into the sentinel the
// controllers map to 404; other errors pass through unchanged.
func attemptLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAttemptNotFound
	}
	return err
}
