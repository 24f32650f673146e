package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/services"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type EvidenceHandler struct {
	*BaseHandler
	evidenceService services.EvidenceService
}

func NewEvidenceHandler(base *BaseHandler, evidenceService services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{
		BaseHandler:     base,
		evidenceService: evidenceService,
	}
}

func (h *EvidenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	evidence := rg.Group("/evidence")
	{
		evidence.POST("", h.Upload)
		evidence.GET("", h.List)
		evidence.GET("/:id", h.Get)
		evidence.DELETE("/:id", h.Delete)
	}
}

func (h *EvidenceHandler) Upload(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file in multipart form"))
		return
	}

	var form dto.UploadEvidenceForm
	if err := c.ShouldBind(&form); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid form fields: "+err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer file.Close()

	evidence, err := h.evidenceService.Upload(
		c.Request.Context(),
		user,
		&form,
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, evidence)
}

func (h *EvidenceHandler) List(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	records, err := h.evidenceService.List(user, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *EvidenceHandler) Get(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	evidence, err := h.evidenceService.GetByID(user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evidence)
}

func (h *EvidenceHandler) Delete(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.evidenceService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
