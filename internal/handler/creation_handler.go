package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

// maxImageSize caps uploaded showcase images at 10 MB
const maxImageSize = 10 << 20

// CreationHandler handles creation showcase endpoints
type CreationHandler struct {
	creationService service.CreationService
	likeService     service.LikeService
	logger          *zap.Logger
}

// NewCreationHandler creates a new CreationHandler
func NewCreationHandler(creationService service.CreationService, likeService service.LikeService, logger *zap.Logger) *CreationHandler {
	return &CreationHandler{
		creationService: creationService,
		likeService:     likeService,
		logger:          logger,
	}
}

// CreateCreation handles POST /creations (multipart form)
func (h *CreationHandler) CreateCreation(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateCreationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	var image io.Reader
	fileName := ""
	contentType := ""
	fileHeader, err := c.FormFile("image")
	if err == nil {
		if fileHeader.Size > maxImageSize {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Image exceeds the size limit")
			return
		}
		var file multipart.File
		file, err = fileHeader.Open()
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read image")
			return
		}
		defer file.Close()
		image = file
		fileName = fileHeader.Filename
		contentType = fileHeader.Header.Get("Content-Type")
	}

	result, err := h.creationService.CreateCreation(c.Request.Context(), userID, &req, image, fileName, contentType)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetCreation handles GET /creations/:creationId
func (h *CreationHandler) GetCreation(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	creationID, err := parsePathUUID(c, "creationId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.creationService.GetCreation(c.Request.Context(), creationID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ListCreations handles GET /creations
func (h *CreationHandler) ListCreations(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.creationService.ListCreations(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// AddComment handles POST /creations/:creationId/comments
func (h *CreationHandler) AddComment(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	creationID, err := parsePathUUID(c, "creationId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateCreationCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.creationService.AddComment(c.Request.Context(), creationID, userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// ToggleCreationLike handles POST /creations/creation/:creationId/like
func (h *CreationHandler) ToggleCreationLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeEntityCreation, "creationId")
}

// ToggleCommentLike handles POST /creations/comment/:commentId/like
func (h *CreationHandler) ToggleCommentLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeEntityCreationComment, "commentId")
}

func (h *CreationHandler) toggleLike(c *gin.Context, entityType domain.LikeEntityType, param string) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	entityID, err := parsePathUUID(c, param)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.likeService.ToggleLike(c.Request.Context(), entityType, entityID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
