package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

// SquadHandler handles squad endpoints
type SquadHandler struct {
	squadService service.SquadService
	logger       *zap.Logger
}

// NewSquadHandler creates a new SquadHandler
func NewSquadHandler(squadService service.SquadService, logger *zap.Logger) *SquadHandler {
	return &SquadHandler{squadService: squadService, logger: logger}
}

// CreateSquad handles POST /squads
func (h *SquadHandler) CreateSquad(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateSquadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.squadService.CreateSquad(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetSquad handles GET /squads/:squadId
func (h *SquadHandler) GetSquad(c *gin.Context) {
	squadID, err := parsePathUUID(c, "squadId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.squadService.GetSquadByID(c.Request.Context(), squadID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// ListSquads handles GET /squads
func (h *SquadHandler) ListSquads(c *gin.Context) {
	result, err := h.squadService.ListSquads(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// JoinSquad handles POST /squads/:squadId/join
func (h *SquadHandler) JoinSquad(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	squadID, err := parsePathUUID(c, "squadId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.squadService.JoinSquad(c.Request.Context(), squadID, userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// LeaveSquad handles POST /squads/:squadId/leave
func (h *SquadHandler) LeaveSquad(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	squadID, err := parsePathUUID(c, "squadId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	if err := h.squadService.LeaveSquad(c.Request.Context(), squadID, userID); err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"left": true})
}
