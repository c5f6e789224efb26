package controller

import (
	"errors"
	"muni_assess_backend/internal/scoring"
	"muni_assess_backend/internal/service"
	"muni_assess_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Validation and precondition failures are 400, lifecycle conflicts 409,
// missing references 404.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrInvalidAnswer):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrIncompleteSection), errors.Is(err, util.ErrIncompleteSubmission):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSectionLocked), errors.Is(err, util.ErrSubmissionFinalized):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrSectionNotFound), errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrSubmissionNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Active submission with per-module progress
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/assessment [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.Service.GetOrCreateActive(user.UserID); err != nil && !errors.Is(err, util.ErrSubmissionFinalized) {
		respondError(ctx, err)
		return
	}

	overview, err := c.Service.Overview(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

type SaveAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

// @Summary Save one answer
// @Description Scores and upserts a raw answer value. Rejected once the
// @Description section is completed or the submission finalized.
// @Tags assessment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SaveAnswerRequest true "answer"
// @Success 200 {object} util.Response
// @Router /api/assessment/answers [put]
func (c *AssessmentController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.Service.SaveAnswer(user.UserID, req.QuestionID, req.Value)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// @Summary Complete a section
// @Description Locks the section once every question in it has an answer.
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{id}/complete [post]
func (c *AssessmentController) CompleteSection(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	sub, err := c.Service.CompleteSection(user.UserID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary Finalize the submission
// @Description Computes and freezes the global score once all sections are
// @Description completed. Terminal: answers and sections lock afterwards.
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/assessment/finalize [post]
func (c *AssessmentController) Finalize(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.Service.Finalize(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// @Summary Final result with traffic-light feedback
// @Tags assessment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/assessment/result [get]
func (c *AssessmentController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Result(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
