package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/university/admin-system/internal/api/metrics"
	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

// CourseHandler handles HTTP requests for course records.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

type courseRequest struct {
	Name       string `json:"nomCours" validate:"required"`
	Room       string `json:"salle" validate:"required"`
	Instructor string `json:"professeur" validate:"required"`
	Day        string `json:"jour" validate:"required"`
	StartTime  string `json:"heureDebut" validate:"required"`
	EndTime    string `json:"heureFin" validate:"required"`
}

func (r courseRequest) toInput() ports.CourseInput {
	return ports.CourseInput{
		Name:       r.Name,
		Room:       r.Room,
		Instructor: r.Instructor,
		Day:        r.Day,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}

// List handles GET /api/courses.
//
// @Summary      List all courses
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Course
// @Failure      500  {object}  map[string]string
// @Router       /api/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	courses, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get handles GET /api/courses/:id.
//
// @Summary      Get a course by id
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  domain.Course
// @Failure      404  {object}  map[string]string
// @Router       /api/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /api/courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      courseRequest  true  "Course details"
// @Success      200   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Router       /api/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.service.Create(c.Request().Context(), username, req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("courses", domain.AuditActionCreate).Inc()
	return c.JSON(http.StatusOK, course)
}

// Update handles PUT /api/courses/:id.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Course id"
// @Param        body  body      courseRequest  true  "Course details"
// @Success      200   {object}  domain.Course
// @Failure      404   {object}  map[string]string
// @Router       /api/courses/{id} [put]
func (h *CourseHandler) Update(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req courseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.service.Update(c.Request().Context(), username, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("courses", domain.AuditActionUpdate).Inc()
	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /api/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Course id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), username, c.Param("id")); err != nil {
		return err
	}

	metrics.ResourceMutationsTotal.WithLabelValues("courses", domain.AuditActionDelete).Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "Course deleted successfully"})
}
