package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	*BaseHandler
	classService services.ClassService
}

func NewClassHandler(base *BaseHandler, classService services.ClassService) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  base,
		classService: classService,
	}
}

func (h *ClassHandler) RegisterRoutes(rg *gin.RouterGroup) {
	classes := rg.Group("/classes")
	{
		classes.POST("", h.Create)
		classes.GET("", h.List)
		classes.GET("/:id", h.Get)
		classes.PATCH("/:id", h.Update)
		classes.DELETE("/:id", h.Delete)

		classes.POST("/:id/students", h.EnrollStudent)
		classes.DELETE("/:id/students/:studentId", h.UnenrollStudent)
	}
}

func (h *ClassHandler) Create(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	class, err := h.classService.Create(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *ClassHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	classes, err := h.classService.List(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Update(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	class, err := h.classService.Update(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.classService.Delete(user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClassHandler) EnrollStudent(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.EnrollStudentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.classService.EnrollStudent(user, c.Param("id"), req.StudentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrolled": true})
}

func (h *ClassHandler) UnenrollStudent(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.classService.UnenrollStudent(user, c.Param("id"), c.Param("studentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
