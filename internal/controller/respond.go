package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// Error maps service sentinel errors onto HTTP statuses. Anything unmapped
// is logged and reported as a 500 without leaking internals.
func Error(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// BadRequest reports a binding or parsing failure.
func BadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: []string{err.Error()}})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrAttemptItemNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuestionType),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, service.ErrEmptyPaper),
		errors.Is(err, service.ErrEmptyPool),
		errors.Is(err, service.ErrNoScoresProvided):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAttemptNotOngoing),
		errors.Is(err, service.ErrAttemptOngoing),
		errors.Is(err, service.ErrPendingReview),
		errors.Is(err, service.ErrReviewNotRequired),
		errors.Is(err, service.ErrNoSubjectiveItems),
		errors.Is(err, service.ErrNotWrong),
		errors.Is(err, service.ErrAssignmentNotPublished),
		errors.Is(err, service.ErrAssignmentNotStarted),
		errors.Is(err, service.ErrAssignmentEnded),
		errors.Is(err, service.ErrAssignmentAlreadyTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
