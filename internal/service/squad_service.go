package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// SquadService defines the interface for squad business logic
type SquadService interface {
	CreateSquad(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSquadRequest) (*dto.SquadResponse, error)
	GetSquadByID(ctx context.Context, squadID uuid.UUID) (*dto.SquadDetailResponse, error)
	ListSquads(ctx context.Context) ([]*dto.SquadResponse, error)
	JoinSquad(ctx context.Context, squadID, userID uuid.UUID) (*dto.SquadMemberResponse, error)
	LeaveSquad(ctx context.Context, squadID, userID uuid.UUID) error
}

// squadServiceImpl is the implementation of SquadService
type squadServiceImpl struct {
	squadRepo repository.SquadRepository
	logger    *zap.Logger
}

// NewSquadService creates a new instance of SquadService
func NewSquadService(squadRepo repository.SquadRepository, logger *zap.Logger) SquadService {
	return &squadServiceImpl{squadRepo: squadRepo, logger: logger}
}

// CreateSquad creates a squad with the creator as its owner member
func (s *squadServiceImpl) CreateSquad(ctx context.Context, ownerID uuid.UUID, req *dto.CreateSquadRequest) (*dto.SquadResponse, error) {
	var path datatypes.JSON
	if req.LearningPath != nil {
		raw, err := json.Marshal(req.LearningPath)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeValidation, "Invalid learning path", err.Error())
		}
		path = raw
	}

	squad := &domain.Squad{
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		LearningPath: path,
		MaxMembers:   req.MaxMembers,
	}
	if err := s.squadRepo.Create(ctx, squad); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create squad", err.Error())
	}

	member := &domain.SquadMember{
		SquadID:  squad.ID,
		UserID:   ownerID,
		RoleName: domain.SquadRoleOwner,
		JoinedAt: time.Now(),
	}
	if err := s.squadRepo.CreateMember(ctx, member); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to add squad owner", err.Error())
	}

	return s.toSquadResponse(squad, 1), nil
}

// GetSquadByID returns a squad with its member list
func (s *squadServiceImpl) GetSquadByID(ctx context.Context, squadID uuid.UUID) (*dto.SquadDetailResponse, error) {
	squad, err := s.squadRepo.FindByIDWithMembers(ctx, squadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Squad not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch squad", err.Error())
	}

	members := make([]dto.SquadMemberResponse, len(squad.Members))
	for i, member := range squad.Members {
		members[i] = dto.SquadMemberResponse{
			UserID:   member.UserID,
			RoleName: string(member.RoleName),
			JoinedAt: member.JoinedAt,
		}
	}

	return &dto.SquadDetailResponse{
		SquadResponse: *s.toSquadResponse(squad, len(members)),
		Members:       members,
	}, nil
}

// ListSquads lists all squads with member counts
func (s *squadServiceImpl) ListSquads(ctx context.Context) ([]*dto.SquadResponse, error) {
	squads, err := s.squadRepo.FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch squads", err.Error())
	}

	responses := make([]*dto.SquadResponse, len(squads))
	for i, squad := range squads {
		count, err := s.squadRepo.CountMembers(ctx, squad.ID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count squad members", err.Error())
		}
		responses[i] = s.toSquadResponse(squad, int(count))
	}
	return responses, nil
}

// JoinSquad adds the user as a member. The unique index on
// (squad_id, user_id) rejects a concurrent double join.
func (s *squadServiceImpl) JoinSquad(ctx context.Context, squadID, userID uuid.UUID) (*dto.SquadMemberResponse, error) {
	squad, err := s.squadRepo.FindByID(ctx, squadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Squad not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch squad", err.Error())
	}

	if squad.MaxMembers > 0 {
		count, err := s.squadRepo.CountMembers(ctx, squadID)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count squad members", err.Error())
		}
		if count >= int64(squad.MaxMembers) {
			return nil, response.NewAppError(response.ErrCodeValidation, "Squad is full", "")
		}
	}

	member := &domain.SquadMember{
		SquadID:  squadID,
		UserID:   userID,
		RoleName: domain.SquadRoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.squadRepo.CreateMember(ctx, member); err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Already a member of this squad", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to join squad", err.Error())
	}

	return &dto.SquadMemberResponse{
		UserID:   member.UserID,
		RoleName: string(member.RoleName),
		JoinedAt: member.JoinedAt,
	}, nil
}

// LeaveSquad removes the user's membership. The owner cannot leave.
func (s *squadServiceImpl) LeaveSquad(ctx context.Context, squadID, userID uuid.UUID) error {
	squad, err := s.squadRepo.FindByID(ctx, squadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Squad not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch squad", err.Error())
	}
	if squad.OwnerID == userID {
		return response.NewAppError(response.ErrCodeValidation, "The squad owner cannot leave the squad", "")
	}

	if _, err := s.squadRepo.FindMember(ctx, squadID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Not a member of this squad", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to fetch membership", err.Error())
	}

	if err := s.squadRepo.DeleteMember(ctx, squadID, userID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to leave squad", err.Error())
	}
	return nil
}

// toSquadResponse converts domain.Squad to dto.SquadResponse
func (s *squadServiceImpl) toSquadResponse(squad *domain.Squad, memberCount int) *dto.SquadResponse {
	var path map[string]interface{}
	if len(squad.LearningPath) > 0 {
		if err := json.Unmarshal(squad.LearningPath, &path); err != nil {
			s.logger.Warn("Failed to decode learning path",
				zap.String("squad_id", squad.ID.String()),
				zap.Error(err))
		}
	}
	return &dto.SquadResponse{
		SquadID:      squad.ID,
		OwnerID:      squad.OwnerID,
		Name:         squad.Name,
		Description:  squad.Description,
		LearningPath: path,
		MaxMembers:   squad.MaxMembers,
		MemberCount:  memberCount,
		CreatedAt:    squad.CreatedAt,
		UpdatedAt:    squad.UpdatedAt,
	}
}
