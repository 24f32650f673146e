package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/services"
	"markbook_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct {
	*BaseHandler
	registerService services.RegisterService
}

func NewRegisterHandler(base *BaseHandler, registerService services.RegisterService) *RegisterHandler {
	return &RegisterHandler{
		BaseHandler:     base,
		registerService: registerService,
	}
}

func (h *RegisterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	register := rg.Group("/register")
	{
		register.POST("", h.Upsert)
		register.GET("", h.List)
		register.DELETE("/:id", h.Delete)
	}
}

func (h *RegisterHandler) Upsert(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpsertRegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.registerService.Upsert(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// List returns attendance either for a whole day or for one student over a
// date range, depending on which query params are present.
func (h *RegisterHandler) List(c *gin.Context) {
	var query dto.ListRegisterQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	switch {
	case query.StudentID != "":
		records, err := h.registerService.ListByStudent(query.StudentID, query.From, query.To)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	case query.Date != "":
		records, err := h.registerService.ListByDate(query.Date)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, records)
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Either date or student_id is required"))
	}
}

func (h *RegisterHandler) Delete(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.registerService.Delete(user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
