package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"learning-community-api/internal/client"
	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/repository"
)

// newTestMetrics returns metrics backed by a throwaway registry so tests
// never collide on the global one
func newTestMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
}

// mockDiscussionRepository is a mock with overridable functions
type mockDiscussionRepository struct {
	CreateFunc              func(ctx context.Context, discussion *domain.Discussion) error
	FindByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	FindByIDWithRepliesFunc func(ctx context.Context, id uuid.UUID) (*domain.Discussion, error)
	FindByStageIDFunc       func(ctx context.Context, stageID uuid.UUID) ([]*domain.Discussion, error)
	ResolveReplyFunc        func(ctx context.Context, discussionID, replyID uuid.UUID) (bool, error)
}

func (m *mockDiscussionRepository) Create(ctx context.Context, discussion *domain.Discussion) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, discussion)
	}
	return nil
}

func (m *mockDiscussionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscussionRepository) FindByIDWithReplies(ctx context.Context, id uuid.UUID) (*domain.Discussion, error) {
	if m.FindByIDWithRepliesFunc != nil {
		return m.FindByIDWithRepliesFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiscussionRepository) FindByStageID(ctx context.Context, stageID uuid.UUID) ([]*domain.Discussion, error) {
	if m.FindByStageIDFunc != nil {
		return m.FindByStageIDFunc(ctx, stageID)
	}
	return nil, nil
}

func (m *mockDiscussionRepository) ResolveReply(ctx context.Context, discussionID, replyID uuid.UUID) (bool, error) {
	if m.ResolveReplyFunc != nil {
		return m.ResolveReplyFunc(ctx, discussionID, replyID)
	}
	return true, nil
}

// mockReplyRepository is a mock with overridable functions
type mockReplyRepository struct {
	CreateFunc             func(ctx context.Context, reply *domain.Reply) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Reply, error)
	FindByDiscussionIDFunc func(ctx context.Context, discussionID uuid.UUID) ([]*domain.Reply, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockReplyRepository) Create(ctx context.Context, reply *domain.Reply) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reply)
	}
	return nil
}

func (m *mockReplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reply, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReplyRepository) FindByDiscussionID(ctx context.Context, discussionID uuid.UUID) ([]*domain.Reply, error) {
	if m.FindByDiscussionIDFunc != nil {
		return m.FindByDiscussionIDFunc(ctx, discussionID)
	}
	return nil, nil
}

func (m *mockReplyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockLikeRepository is a mock with overridable functions
type mockLikeRepository struct {
	CreateFunc                  func(ctx context.Context, like *domain.Like) error
	FindByUserAndEntityFunc     func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error)
	DeleteByUserAndEntityFunc   func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (bool, error)
	CountByEntityFunc           func(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error)
	CountByEntitiesFunc         func(ctx context.Context, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ExistsByUserAndEntitiesFunc func(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

func (m *mockLikeRepository) Create(ctx context.Context, like *domain.Like) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, like)
	}
	return nil
}

func (m *mockLikeRepository) FindByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (*domain.Like, error) {
	if m.FindByUserAndEntityFunc != nil {
		return m.FindByUserAndEntityFunc(ctx, userID, entityType, entityID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLikeRepository) DeleteByUserAndEntity(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityID uuid.UUID) (bool, error) {
	if m.DeleteByUserAndEntityFunc != nil {
		return m.DeleteByUserAndEntityFunc(ctx, userID, entityType, entityID)
	}
	return true, nil
}

func (m *mockLikeRepository) CountByEntity(ctx context.Context, entityType domain.LikeEntityType, entityID uuid.UUID) (int64, error) {
	if m.CountByEntityFunc != nil {
		return m.CountByEntityFunc(ctx, entityType, entityID)
	}
	return 0, nil
}

func (m *mockLikeRepository) CountByEntities(ctx context.Context, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountByEntitiesFunc != nil {
		return m.CountByEntitiesFunc(ctx, entityType, entityIDs)
	}
	return map[uuid.UUID]int64{}, nil
}

func (m *mockLikeRepository) ExistsByUserAndEntities(ctx context.Context, userID uuid.UUID, entityType domain.LikeEntityType, entityIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if m.ExistsByUserAndEntitiesFunc != nil {
		return m.ExistsByUserAndEntitiesFunc(ctx, userID, entityType, entityIDs)
	}
	return map[uuid.UUID]bool{}, nil
}

// mockBookingRepository is a mock with overridable functions
type mockBookingRepository struct {
	CreateFunc                          func(ctx context.Context, booking *domain.Booking) error
	FindByIDFunc                        func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByIDWithPaymentFunc             func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	FindByCustomerIDFunc                func(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error)
	FindByProviderIDFunc                func(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error)
	UpdateStatusIfCurrentFunc           func(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus) (bool, error)
	UpdateStatusAndPaymentIfCurrentFunc func(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus, payment *domain.Payment) (bool, error)
	FindStalePendingFunc                func(ctx context.Context, olderThan time.Time) ([]*domain.Booking, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepository) FindByIDWithPayment(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.FindByIDWithPaymentFunc != nil {
		return m.FindByIDWithPaymentFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.Booking, error) {
	if m.FindByCustomerIDFunc != nil {
		return m.FindByCustomerIDFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*domain.Booking, error) {
	if m.FindByProviderIDFunc != nil {
		return m.FindByProviderIDFunc(ctx, providerID)
	}
	return nil, nil
}

func (m *mockBookingRepository) UpdateStatusIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus) (bool, error) {
	if m.UpdateStatusIfCurrentFunc != nil {
		return m.UpdateStatusIfCurrentFunc(ctx, id, current, target)
	}
	return true, nil
}

func (m *mockBookingRepository) UpdateStatusAndPaymentIfCurrent(ctx context.Context, id uuid.UUID, current, target domain.BookingStatus, payment *domain.Payment) (bool, error) {
	if m.UpdateStatusAndPaymentIfCurrentFunc != nil {
		return m.UpdateStatusAndPaymentIfCurrentFunc(ctx, id, current, target, payment)
	}
	return true, nil
}

func (m *mockBookingRepository) FindStalePending(ctx context.Context, olderThan time.Time) ([]*domain.Booking, error) {
	if m.FindStalePendingFunc != nil {
		return m.FindStalePendingFunc(ctx, olderThan)
	}
	return nil, nil
}

// mockPaymentRepository is a mock with overridable functions
type mockPaymentRepository struct {
	CreateFunc          func(ctx context.Context, payment *domain.Payment) error
	FindByBookingIDFunc func(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error)
	UpdateFunc          func(ctx context.Context, payment *domain.Payment) error
}

func (m *mockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, payment)
	}
	return nil
}

func (m *mockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.Payment, error) {
	if m.FindByBookingIDFunc != nil {
		return m.FindByBookingIDFunc(ctx, bookingID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, payment)
	}
	return nil
}

// mockCourseRepository is a mock with overridable functions
type mockCourseRepository struct {
	CreateFunc             func(ctx context.Context, course *domain.Course) error
	UpdateFunc             func(ctx context.Context, course *domain.Course) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	FindByIDWithStagesFunc func(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	FindAllFunc            func(ctx context.Context) ([]*domain.Course, error)
	CreateStageFunc        func(ctx context.Context, stage *domain.CourseStage) error
	FindStageByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.CourseStage, error)
	NextStagePositionFunc  func(ctx context.Context, courseID uuid.UUID) (int, error)
}

func (m *mockCourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, course)
	}
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *domain.Course) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, course)
	}
	return nil
}

func (m *mockCourseRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepository) FindByIDWithStages(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	if m.FindByIDWithStagesFunc != nil {
		return m.FindByIDWithStagesFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepository) FindAll(ctx context.Context) ([]*domain.Course, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockCourseRepository) CreateStage(ctx context.Context, stage *domain.CourseStage) error {
	if m.CreateStageFunc != nil {
		return m.CreateStageFunc(ctx, stage)
	}
	return nil
}

func (m *mockCourseRepository) FindStageByID(ctx context.Context, id uuid.UUID) (*domain.CourseStage, error) {
	if m.FindStageByIDFunc != nil {
		return m.FindStageByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepository) NextStagePosition(ctx context.Context, courseID uuid.UUID) (int, error) {
	if m.NextStagePositionFunc != nil {
		return m.NextStagePositionFunc(ctx, courseID)
	}
	return 1, nil
}

// mockCreationRepository is a mock with overridable functions
type mockCreationRepository struct {
	CreateFunc               func(ctx context.Context, creation *domain.Creation) error
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Creation, error)
	FindByIDWithCommentsFunc func(ctx context.Context, id uuid.UUID) (*domain.Creation, error)
	FindAllFunc              func(ctx context.Context) ([]*domain.Creation, error)
	CreateCommentFunc        func(ctx context.Context, comment *domain.CreationComment) error
	FindCommentByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.CreationComment, error)
}

func (m *mockCreationRepository) Create(ctx context.Context, creation *domain.Creation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, creation)
	}
	return nil
}

func (m *mockCreationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Creation, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCreationRepository) FindByIDWithComments(ctx context.Context, id uuid.UUID) (*domain.Creation, error) {
	if m.FindByIDWithCommentsFunc != nil {
		return m.FindByIDWithCommentsFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCreationRepository) FindAll(ctx context.Context) ([]*domain.Creation, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockCreationRepository) CreateComment(ctx context.Context, comment *domain.CreationComment) error {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, comment)
	}
	return nil
}

func (m *mockCreationRepository) FindCommentByID(ctx context.Context, id uuid.UUID) (*domain.CreationComment, error) {
	if m.FindCommentByIDFunc != nil {
		return m.FindCommentByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// mockPointRepository is a mock with overridable functions
type mockPointRepository struct {
	CreateFunc    func(ctx context.Context, entry *domain.PointEntry) error
	SumByUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	TopUsersFunc  func(ctx context.Context, limit int) ([]repository.UserPointTotal, error)
}

func (m *mockPointRepository) Create(ctx context.Context, entry *domain.PointEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *mockPointRepository) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.SumByUserFunc != nil {
		return m.SumByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockPointRepository) TopUsers(ctx context.Context, limit int) ([]repository.UserPointTotal, error) {
	if m.TopUsersFunc != nil {
		return m.TopUsersFunc(ctx, limit)
	}
	return nil, nil
}

// mockPointsService is a mock with overridable functions
type mockPointsService struct {
	AwardFunc          func(ctx context.Context, userID uuid.UUID, amount int, reason domain.PointReason, sourceType string, sourceID *uuid.UUID) error
	GetUserPointsFunc  func(ctx context.Context, userID uuid.UUID) (*dto.UserPointsResponse, error)
	GetLeaderboardFunc func(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

func (m *mockPointsService) Award(ctx context.Context, userID uuid.UUID, amount int, reason domain.PointReason, sourceType string, sourceID *uuid.UUID) error {
	if m.AwardFunc != nil {
		return m.AwardFunc(ctx, userID, amount, reason, sourceType, sourceID)
	}
	return nil
}

func (m *mockPointsService) GetUserPoints(ctx context.Context, userID uuid.UUID) (*dto.UserPointsResponse, error) {
	if m.GetUserPointsFunc != nil {
		return m.GetUserPointsFunc(ctx, userID)
	}
	return &dto.UserPointsResponse{UserID: userID}, nil
}

func (m *mockPointsService) GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, limit)
	}
	return &dto.LeaderboardResponse{}, nil
}

// mockNotifier records sent notifications
type mockNotifier struct {
	Events []client.NotificationEvent
	Err    error
}

func (m *mockNotifier) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, event)
	return nil
}
