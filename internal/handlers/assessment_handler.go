package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	*BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(base *BaseHandler, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       base,
		assessmentService: assessmentService,
	}
}

func (h *AssessmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assessments := rg.Group("/assessments")
	{
		assessments.POST("", h.Create)
		assessments.GET("", h.List)
		assessments.GET("/:id", h.Get)
		assessments.PATCH("/:id", h.Update)
		assessments.DELETE("/:id", h.Delete)

		assessments.PUT("/:id/scores", h.UpsertScore)
		assessments.GET("/:id/scores", h.ListScores)
	}
}

func (h *AssessmentHandler) Create(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateAssessmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	assessment, err := h.assessmentService.Create(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assessment)
}

func (h *AssessmentHandler) List(c *gin.Context) {
	var query dto.ListAssessmentsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	assessments, err := h.assessmentService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessments)
}

func (h *AssessmentHandler) Get(c *gin.Context) {
	assessment, err := h.assessmentService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) Update(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateAssessmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	assessment, err := h.assessmentService.Update(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) Delete(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.assessmentService.Delete(user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AssessmentHandler) UpsertScore(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpsertScoreRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	score, err := h.assessmentService.UpsertScore(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (h *AssessmentHandler) ListScores(c *gin.Context) {
	scores, err := h.assessmentService.ListScores(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scores)
}
