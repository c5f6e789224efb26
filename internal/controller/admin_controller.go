package controller

import (
	"muni_assess_backend/internal/service"
	"muni_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Service *service.AdminService
}

func NewAdminController(svc *service.AdminService) *AdminController {
	return &AdminController{Service: svc}
}

// @Summary List submissions across municipalities
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param status query string false "in_progress or completed"
// @Success 200 {object} util.Response
// @Router /api/admin/submissions [get]
func (c *AdminController) ListSubmissions(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), util.DefaultPage)
	limit := util.ParsePositiveInt(ctx.Query("limit"), util.DefaultLimit)
	status := ctx.Query("status")

	rows, total, err := c.Service.ListSubmissions(page, limit, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Aggregate statistics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/summary [get]
func (c *AdminController) GetSummary(ctx *gin.Context) {
	summary, err := c.Service.Summary()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Export finalized submissions as CSV
// @Tags admin
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "csv"
// @Router /api/admin/export [get]
func (c *AdminController) ExportCSV(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="submissions.csv"`)

	if err := c.Service.ExportCSV(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}
