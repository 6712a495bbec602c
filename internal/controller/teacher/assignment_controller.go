package teacher

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/service"
)

type AssignmentController struct {
	assignmentService service.AssignmentService
}

func NewAssignmentController(as service.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: as}
}

// CreateAssignment godoc
// @Summary Publish an exam assignment
// @Description Mixed papers must carry a fixed question list; per-question score overrides are optional.
// @Tags Teacher - Assignments
// @Accept json
// @Produce json
// @Param request body dto.CreateAssignmentRequest true "Assignment definition"
// @Success 201 {object} dto.AssignmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid window or missing question list"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Security BearerAuth
// @Router /teacher/assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.assignmentService.Create(user.ID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListAssignments godoc
// @Summary List own assignments with attempt counters
// @Tags Teacher - Assignments
// @Produce json
// @Success 200 {array} dto.AssignmentResponse
// @Security BearerAuth
// @Router /teacher/assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	resp, err := c.assignmentService.ListForTeacher(user.ID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSubmissions godoc
// @Summary List every attempt of one assignment
// @Tags Teacher - Assignments
// @Produce json
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} dto.AssignmentSubmissionsResponse
// @Failure 403 {object} dto.ErrorResponse "Not the creating teacher"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /teacher/assignments/{assignment_id}/attempts [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	assignmentID, ok := pathID(ctx, "assignment_id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.assignmentService.Submissions(user, assignmentID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
