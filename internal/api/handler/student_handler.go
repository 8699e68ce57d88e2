package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/university/admin-system/internal/api/metrics"
	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

// StudentHandler handles HTTP requests for student records.
type StudentHandler struct {
	service ports.StudentService
}

func NewStudentHandler(service ports.StudentService) *StudentHandler {
	return &StudentHandler{service: service}
}

type studentRequest struct {
	LastName  string `json:"nom" validate:"required"`
	FirstName string `json:"prenom" validate:"required"`
	CIN       string `json:"cin" validate:"required,len=8,numeric"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"telephone" validate:"required,len=8,numeric"`
	Level     string `json:"niveau" validate:"required"`
	Gender    string `json:"genre" validate:"required,oneof=Masculin Féminin"`
	BirthDate string `json:"dateDeNaissance" validate:"required"`
}

func (r studentRequest) toInput() ports.StudentInput {
	return ports.StudentInput{
		LastName:  r.LastName,
		FirstName: r.FirstName,
		CIN:       r.CIN,
		Email:     r.Email,
		Phone:     r.Phone,
		Level:     r.Level,
		Gender:    r.Gender,
		BirthDate: r.BirthDate,
	}
}

// List handles GET /api/students.
//
// @Summary      List all students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Student
// @Failure      500  {object}  map[string]string
// @Router       /api/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	students, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, students)
}

// Get handles GET /api/students/:id.
//
// @Summary      Get a student by id
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  domain.Student
// @Failure      404  {object}  map[string]string
// @Router       /api/students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	student, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// GetByCIN handles GET /api/students/cin/:cin.
//
// @Summary      Get a student by CIN
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        cin  path      string  true  "Student CIN"
// @Success      200  {object}  domain.Student
// @Failure      404  {object}  map[string]string
// @Router       /api/students/cin/{cin} [get]
func (h *StudentHandler) GetByCIN(c echo.Context) error {
	student, err := h.service.GetByCIN(c.Request().Context(), c.Param("cin"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// Create handles POST /api/students.
//
// @Summary      Create a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  domain.Student
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.Create(c.Request().Context(), username, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("students", domain.AuditActionCreate).Inc()
	return c.JSON(http.StatusOK, student)
}

// Update handles PUT /api/students/:id.
//
// @Summary      Update a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Student id"
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  domain.Student
// @Failure      404   {object}  map[string]string
// @Router       /api/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.Update(c.Request().Context(), username, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("students", domain.AuditActionUpdate).Inc()
	return c.JSON(http.StatusOK, student)
}

// UpdateByCIN handles PUT /api/students/cin/:cin.
//
// @Summary      Update a student by CIN
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        cin   path      string          true  "Student CIN"
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  domain.Student
// @Failure      404   {object}  map[string]string
// @Router       /api/students/cin/{cin} [put]
func (h *StudentHandler) UpdateByCIN(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.service.UpdateByCIN(c.Request().Context(), username, c.Param("cin"), req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("students", domain.AuditActionUpdate).Inc()
	return c.JSON(http.StatusOK, student)
}

// Delete handles DELETE /api/students/:id.
//
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Student id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), username, c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("students", domain.AuditActionDelete).Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "Student deleted successfully"})
}

// DeleteByCIN handles DELETE /api/students/cin/:cin.
//
// @Summary      Delete a student by CIN
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        cin  path      string  true  "Student CIN"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/students/cin/{cin} [delete]
func (h *StudentHandler) DeleteByCIN(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteByCIN(c.Request().Context(), username, c.Param("cin")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("students", domain.AuditActionDelete).Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "Student deleted successfully"})
}
