package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/service"
)

type AssignmentController struct {
	assignmentService service.AssignmentService
}

func NewAssignmentController(as service.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: as}
}

// ListAssignments godoc
// @Summary List published exam assignments
// @Description Includes the caller's latest attempt per assignment so the client can offer resume or result links.
// @Tags Student - Assignments
// @Produce json
// @Success 200 {array} dto.AssignmentResponse
// @Security BearerAuth
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	resp, err := c.assignmentService.ListAvailable(user.ID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartAssignment godoc
// @Summary Start or resume an exam assignment attempt
// @Description One run per student. An ongoing run inside the window is resumed with its remaining time.
// @Tags Student - Assignments
// @Produce json
// @Param assignment_id path int true "Assignment ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Outside window or already taken"
// @Security BearerAuth
// @Router /assignments/{assignment_id}/attempts [post]
func (c *AssignmentController) StartAssignment(ctx *gin.Context) {
	assignmentID, ok := pathID(ctx, "assignment_id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.assignmentService.Start(user.ID, assignmentID)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	status := http.StatusCreated
	if resp.Resumed {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}
