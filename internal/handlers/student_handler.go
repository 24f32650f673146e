package handlers

import (
	"net/http"

	"markbook_backend/internal/dto"
	"markbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	*BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(base *BaseHandler, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    base,
		studentService: studentService,
	}
}

func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.POST("", h.Create)
		students.GET("", h.List)
		students.GET("/:id", h.Get)
		students.PATCH("/:id", h.Update)
		students.DELETE("/:id", h.Delete)
	}
}

func (h *StudentHandler) Create(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateStudentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	student, err := h.studentService.Create(user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *StudentHandler) List(c *gin.Context) {
	var query dto.ListStudentsQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	students, err := h.studentService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentService.GetByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	student, err := h.studentService.Update(user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	user, ok := h.GetCurrentUser(c)
	if !ok {
		return
	}

	if err := h.studentService.Delete(user, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
