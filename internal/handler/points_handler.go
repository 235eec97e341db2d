package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

const defaultLeaderboardSize = 10

// PointsHandler handles point total and leaderboard endpoints
type PointsHandler struct {
	pointsService service.PointsService
	logger        *zap.Logger
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsService service.PointsService, logger *zap.Logger) *PointsHandler {
	return &PointsHandler{pointsService: pointsService, logger: logger}
}

// GetMyPoints handles GET /points/me
func (h *PointsHandler) GetMyPoints(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.pointsService.GetUserPoints(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetLeaderboard handles GET /points/leaderboard
func (h *PointsHandler) GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	result, err := h.pointsService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
