package teacher

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(qs service.QuestionService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// CreateQuestion godoc
// @Summary Author a question
// @Tags Teacher - Questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question definition"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /teacher/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.questionService.Create(user, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateQuestion godoc
// @Summary Edit a question
// @Description Only the creating teacher or an admin may edit. Scores frozen into existing attempts are not affected.
// @Tags Teacher - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /teacher/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.questionService.Update(user, questionID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetQuestion godoc
// @Summary Get a question with its solution
// @Tags Teacher - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /teacher/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	resp, err := c.questionService.Get(questionID)
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
