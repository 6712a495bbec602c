package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/service"
)

type SubjectController struct {
	subjectService  service.SubjectService
	questionService service.QuestionService
}

func NewSubjectController(ss service.SubjectService, qs service.QuestionService) *SubjectController {
	return &SubjectController{subjectService: ss, questionService: qs}
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Student - Subjects
// @Produce json
// @Success 200 {array} dto.SubjectResponse
// @Security BearerAuth
// @Router /subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	resp, err := c.subjectService.List()
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// BrowseQuestions godoc
// @Summary Browse random questions with solutions
// @Description Untimed self-study draw; solutions are included and no attempt is recorded.
// @Tags Student - Subjects
// @Produce json
// @Param subject_id path int true "Subject ID"
// @Param question_type query string false "objective or subjective"
// @Param size query int false "Number of questions"
// @Success 200 {array} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /subjects/{subject_id}/questions [get]
func (c *SubjectController) BrowseQuestions(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "subject_id")
	if !ok {
		return
	}
	size, _ := strconv.Atoi(ctx.Query("size"))
	resp, err := c.questionService.BrowseRandom(subjectID, ctx.Query("question_type"), size)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
