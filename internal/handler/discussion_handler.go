package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

// DiscussionHandler handles discussion, reply, resolution and like endpoints
type DiscussionHandler struct {
	discussionService service.DiscussionService
	resolutionService service.ResolutionService
	likeService       service.LikeService
	logger            *zap.Logger
}

// NewDiscussionHandler creates a new DiscussionHandler
func NewDiscussionHandler(
	discussionService service.DiscussionService,
	resolutionService service.ResolutionService,
	likeService service.LikeService,
	logger *zap.Logger,
) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
		resolutionService: resolutionService,
		likeService:       likeService,
		logger:            logger,
	}
}

// CreateDiscussion handles POST /discussions
func (h *DiscussionHandler) CreateDiscussion(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateDiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.discussionService.CreateDiscussion(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetDiscussion handles GET /discussions/:discussionId
func (h *DiscussionHandler) GetDiscussion(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	discussionID, err := parsePathUUID(c, "discussionId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.discussionService.GetDiscussion(c.Request.Context(), discussionID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetDiscussionsByStage handles GET /stages/:stageId/discussions
func (h *DiscussionHandler) GetDiscussionsByStage(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	stageID, err := parsePathUUID(c, "stageId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.discussionService.GetDiscussionsByStage(c.Request.Context(), stageID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// CreateReply handles POST /discussions/:discussionId/replies
func (h *DiscussionHandler) CreateReply(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	discussionID, err := parsePathUUID(c, "discussionId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.discussionService.CreateReply(c.Request.Context(), discussionID, userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// DeleteReply handles DELETE /discussions/replies/:replyId
func (h *DiscussionHandler) DeleteReply(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	replyID, err := parsePathUUID(c, "replyId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if err := h.discussionService.DeleteReply(c.Request.Context(), replyID, userID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// ResolveReply handles POST /discussions/:discussionId/resolve/:replyId
func (h *DiscussionHandler) ResolveReply(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	discussionID, err := parsePathUUID(c, "discussionId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	replyID, err := parsePathUUID(c, "replyId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.resolutionService.Resolve(c.Request.Context(), discussionID, replyID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ToggleDiscussionLike handles POST /discussions/discussion/:discussionId/like
func (h *DiscussionHandler) ToggleDiscussionLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeEntityDiscussion, "discussionId")
}

// ToggleReplyLike handles POST /discussions/reply/:replyId/like
func (h *DiscussionHandler) ToggleReplyLike(c *gin.Context) {
	h.toggleLike(c, domain.LikeEntityReply, "replyId")
}

func (h *DiscussionHandler) toggleLike(c *gin.Context, entityType domain.LikeEntityType, param string) {
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
