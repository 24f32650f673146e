package handlers

import (
	"fmt"
	"net/http"

	"markbook_backend/internal/services"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ExportHandler renders report downloads. Routes are gated behind the
// EXPORT_REPORTS feature by the route layer.
type ExportHandler struct {
	*BaseHandler
	assessmentService services.AssessmentService
}

func NewExportHandler(base *BaseHandler, assessmentService services.AssessmentService) *ExportHandler {
	return &ExportHandler{
		BaseHandler:       base,
		assessmentService: assessmentService,
	}
}

func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup, featureRequired gin.HandlerFunc) {
	export := rg.Group("/export")
	export.Use(featureRequired)
	{
		export.GET("/assessments.csv", h.AssessmentScoresCSV)
	}
}

func (h *ExportHandler) AssessmentScoresCSV(c *gin.Context) {
	grade := c.Query("grade")
	if grade == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Query parameter grade is required"))
		return
	}

	data, err := h.assessmentService.ExportScoresCSV(grade)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=scores-%s.csv", grade))
	c.Data(http.StatusOK, "text/csv", data)
}
