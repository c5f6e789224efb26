package controller

import (
	"errors"
	"muni_assess_backend/internal/service"
	"muni_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Service *service.CatalogService
}

func NewCatalogController(svc *service.CatalogService) *CatalogController {
	return &CatalogController{Service: svc}
}

// @Summary List questionnaire sections with their questions
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/sections [get]
func (c *CatalogController) ListSections(ctx *gin.Context) {
	sections, err := c.Service.AllSections()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// @Summary Get one section with its ordered questions
// @Tags catalog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [get]
func (c *CatalogController) GetSection(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	section, err := c.Service.SectionByID(id)
	if err != nil {
		if errors.Is(err, util.ErrSectionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, section)
}
