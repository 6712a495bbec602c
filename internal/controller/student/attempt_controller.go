package student

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

type AttemptController struct {
	attemptService    service.AttemptService
	submissionService service.SubmissionService
}

func NewAttemptController(as service.AttemptService, ss service.SubmissionService) *AttemptController {
	return &AttemptController{attemptService: as, submissionService: ss}
}

// StartPractice godoc
// @Summary Start a self-service practice attempt
// @Description Draws a random paper for the subject and question type and opens a timed attempt.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param request body dto.StartPracticeRequest true "Practice parameters"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /attempts/practice [post]
func (c *AttemptController) StartPractice(ctx *gin.Context) {
	var req dto.StartPracticeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.StartPractice(user.ID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetAttemptDetail godoc
// @Summary Get one attempt
// @Description Live paper while ongoing, scored result once terminal. Expired attempts are finalized on first read.
// @Tags Student - Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttemptDetail(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.GetAttemptDetail(user.ID, attemptID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit an attempt
// @Description Scores the submitted answers and finalizes the attempt. Resubmitting a finalized attempt returns the stored result unchanged.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.SubmitAttemptRequest true "Complete answer set"
// @Success 200 {object} dto.AttemptResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.submissionService.Submit(user.ID, attemptID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SaveAnswers godoc
// @Summary Save draft answers
// @Description Stores partial answers without scoring. Rejected once the attempt is no longer ongoing.
// @Tags Student - Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param request body dto.SaveAnswersRequest true "Draft answers"
// @Success 200 {object} dto.SaveAnswersResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt already finalized"
// @Security BearerAuth
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SaveAnswers(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}
	var req dto.SaveAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.submissionService.SaveDraftAnswers(user.ID, attemptID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary List finished attempts
// @Tags Student - Attempts
// @Produce json
// @Param subject_id query int false "Filter by subject"
// @Param question_type query string false "objective, subjective or mixed"
// @Param status query string false "completed or expired"
// @Param mode query string false "practice or exam"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.AttemptHistoryResponse
// @Security BearerAuth
// @Router /attempts [get]
func (c *AttemptController) History(ctx *gin.Context) {
	filter := repository.AttemptHistoryFilter{
		QuestionType: ctx.Query("question_type"),
		Status:       ctx.Query("status"),
		Mode:         ctx.Query("mode"),
	}
	if raw := ctx.Query("subject_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject_id"})
			return
		}
		id := uint(val)
		filter.SubjectID = &id
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.History(user.ID, filter)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Ongoing godoc
// @Summary List attempts whose window is still open
// @Tags Student - Attempts
// @Produce json
// @Param mode query string false "practice or exam"
// @Success 200 {array} dto.OngoingAttemptResponse
// @Security BearerAuth
// @Router /attempts/ongoing [get]
func (c *AttemptController) Ongoing(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.Ongoing(user.ID, ctx.Query("mode"))
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PendingReviews godoc
// @Summary List own attempts awaiting teacher review
// @Tags Student - Attempts
// @Produce json
// @Param mode query string false "practice or exam"
// @Success 200 {array} dto.PendingReviewAttemptResponse
// @Security BearerAuth
// @Router /attempts/pending-review [get]
func (c *AttemptController) PendingReviews(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	resp, err := c.attemptService.PendingReviews(user.ID, ctx.Query("mode"))
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name})
		return 0, false
	}
	return uint(val), true
}
