package teacher

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/repository"
	"github.com/quizace/quizace-backend/internal/service"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(rs service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: rs}
}

// PendingReviews godoc
// @Summary List attempts awaiting review
// @Description Free practice attempts are visible to every teacher; assignment attempts only to their creating teacher.
// @Tags Teacher - Reviews
// @Produce json
// @Param assignment_id query string false "Numeric assignment id, or 'practice' for unassigned attempts"
// @Param student_id query int false "Filter by student"
// @Success 200 {array} dto.PendingReviewAttemptResponse
// @Security BearerAuth
// @Router /teacher/reviews/pending [get]
func (c *ReviewController) PendingReviews(ctx *gin.Context) {
	filter, ok := reviewFilter(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.reviewService.PendingForTeacher(user.ID, filter)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PendingReviewsByStudent godoc
// @Summary Review queue grouped per student
// @Tags Teacher - Reviews
// @Produce json
// @Param assignment_id query string false "Numeric assignment id, or 'practice' for unassigned attempts"
// @Success 200 {array} dto.StudentPendingReviewsResponse
// @Security BearerAuth
// @Router /teacher/reviews/pending/by-student [get]
func (c *ReviewController) PendingReviewsByStudent(ctx *gin.Context) {
	filter, ok := reviewFilter(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.reviewService.PendingByStudent(user.ID, filter)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AttemptDetail godoc
// @Summary Get one attempt for grading
// @Description Full scored attempt with reference answers revealed.
// @Tags Teacher - Reviews
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /teacher/reviews/attempts/{attempt_id} [get]
func (c *ReviewController) AttemptDetail(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.reviewService.AttemptDetailForTeacher(user, attemptID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ReviewAttempt godoc
// @Summary Score an attempt's subjective items
// @Description Applies clamped scores, recomputes the attempt totals and clears the pending-review flag.
// @Tags Teacher - Reviews
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.ReviewAttemptRequest true "Per-item scores and optional comment"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt does not require review"
// @Security BearerAuth
// @Router /teacher/reviews/attempts/{attempt_id} [post]
func (c *ReviewController) ReviewAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.ReviewAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.reviewService.Review(user, attemptID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func reviewFilter(ctx *gin.Context) (repository.PendingReviewFilter, bool) {
	filter := repository.PendingReviewFilter{AssignmentID: ctx.Query("assignment_id")}
	if raw := ctx.Query("student_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid student_id"})
			return filter, false
		}
		id := uint(val)
		filter.StudentID = &id
	}
	return filter, true
}
