package student

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizace/quizace-backend/internal/controller"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/middleware"
	"github.com/quizace/quizace-backend/internal/service"
)

type WrongBookController struct {
	wrongBookService service.WrongBookService
}

func NewWrongBookController(ws service.WrongBookService) *WrongBookController {
	return &WrongBookController{wrongBookService: ws}
}

// AddEntry godoc
// @Summary Add a wrongly answered question to the wrong book
// @Description The attempt item must belong to a finalized, fully scored attempt and be judged wrong.
// @Tags Student - Wrong Book
// @Accept json
// @Produce json
// @Param request body dto.AddWrongBookRequest true "Attempt item reference"
// @Success 201 {object} dto.WrongBookEntryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not finalized or item not wrong"
// @Security BearerAuth
// @Router /wrong-book [post]
func (c *WrongBookController) AddEntry(ctx *gin.Context) {
	var req dto.AddWrongBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	user := middleware.CurrentUser(ctx)
	resp, err := c.wrongBookService.Register(user.ID, req)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListEntries godoc
// @Summary List wrong book entries
// @Tags Student - Wrong Book
// @Produce json
// @Param subject_id query int false "Filter by subject"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.WrongBookListResponse
// @Security BearerAuth
// @Router /wrong-book [get]
func (c *WrongBookController) ListEntries(ctx *gin.Context) {
	var subjectID *uint
	if raw := ctx.Query("subject_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject_id"})
			return
		}
		id := uint(val)
		subjectID = &id
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))

	user := middleware.CurrentUser(ctx)
	resp, err := c.wrongBookService.List(user.ID, subjectID, page, pageSize)
	if err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RemoveEntry godoc
// @Summary Remove a wrong book entry
// @Tags Student - Wrong Book
// @Produce json
// @Param entry_id path int true "Entry ID"
// @Success 204 "Removed"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /wrong-book/{entry_id} [delete]
func (c *WrongBookController) RemoveEntry(ctx *gin.Context) {
	entryID, ok := pathID(ctx, "entry_id")
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)
	if err := c.wrongBookService.Remove(user.ID, entryID); err != nil {
		controller.Error(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
