package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

// CourseHandler handles course and stage endpoints
type CourseHandler struct {
	courseService service.CourseService
	logger        *zap.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(courseService service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{courseService: courseService, logger: logger}
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.courseService.CreateCourse(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetCourse handles GET /courses/:courseId
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := parsePathUUID(c, "courseId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.courseService.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	result, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// AddStage handles POST /courses/:courseId/stages
func (h *CourseHandler) AddStage(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	courseID, err := parsePathUUID(c, "courseId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.AddStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.courseService.AddStage(c.Request.Context(), courseID, userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// PublishCourse handles POST /courses/:courseId/publish
func (h *CourseHandler) PublishCourse(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	courseID, err := parsePathUUID(c, "courseId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.courseService.PublishCourse(c.Request.Context(), courseID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
