package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"learning-community-api/internal/domain"
)

// newTestDB opens an isolated in-memory sqlite database with the schema
// migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Course{},
		&domain.CourseStage{},
		&domain.Discussion{},
		&domain.Reply{},
		&domain.Like{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.Squad{},
		&domain.SquadMember{},
		&domain.PointEntry{},
		&domain.Creation{},
		&domain.CreationComment{},
	))
	return db
}

func seedDiscussionWithReplies(t *testing.T, db *gorm.DB) (*domain.Discussion, *domain.Reply, *domain.Reply) {
	t.Helper()

	discussion := &domain.Discussion{
		StageID:  uuid.New(),
		AuthorID: uuid.New(),
		Content:  "question",
	}
	require.NoError(t, db.Create(discussion).Error)

	replyA := &domain.Reply{DiscussionID: discussion.ID, AuthorID: uuid.New(), Content: "answer a"}
	replyB := &domain.Reply{DiscussionID: discussion.ID, AuthorID: uuid.New(), Content: "answer b"}
	require.NoError(t, db.Create(replyA).Error)
	require.NoError(t, db.Create(replyB).Error)

	return discussion, replyA, replyB
}

func TestDiscussionRepository_ResolveReplyGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewDiscussionRepository(db)
	ctx := context.Background()

	discussion, replyA, replyB := seedDiscussionWithReplies(t, db)

	ok, err := repo.ResolveReply(ctx, discussion.ID, replyA.ID)
	require.NoError(t, err)
	assert.True(t, ok, "first resolution must win")

	ok, err = repo.ResolveReply(ctx, discussion.ID, replyB.ID)
	require.NoError(t, err)
	assert.False(t, ok, "a different reply must not displace the accepted one")

	ok, err = repo.ResolveReply(ctx, discussion.ID, replyA.ID)
	require.NoError(t, err)
	assert.True(t, ok, "re-resolving the same reply passes the guard")

	reloaded, err := repo.FindByID(ctx, discussion.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Resolved)
	require.NotNil(t, reloaded.ResolvedReplyID)
	assert.Equal(t, replyA.ID, *reloaded.ResolvedReplyID)
}

func TestLikeRepository_UniqueIndexRejectsDoubleInsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	entityID := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Like{
		UserID: userID, EntityType: domain.LikeEntityDiscussion, EntityID: entityID,
	}))

	err := repo.Create(ctx, &domain.Like{
		UserID: userID, EntityType: domain.LikeEntityDiscussion, EntityID: entityID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")

	// Same entity id under a different type is a distinct like
	require.NoError(t, repo.Create(ctx, &domain.Like{
		UserID: userID, EntityType: domain.LikeEntityReply, EntityID: entityID,
	}))

	count, err := repo.CountByEntity(ctx, domain.LikeEntityDiscussion, entityID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_DeleteByUserAndEntity(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	entityID := uuid.New()
	require.NoError(t, repo.Create(ctx, &domain.Like{
		UserID: userID, EntityType: domain.LikeEntityDiscussion, EntityID: entityID,
	}))

	deleted, err := repo.DeleteByUserAndEntity(ctx, userID, domain.LikeEntityDiscussion, entityID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByUserAndEntity(ctx, userID, domain.LikeEntityDiscussion, entityID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}

func TestLikeRepository_BatchLookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	viewer := uuid.New()
	other := uuid.New()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, repo.Create(ctx, &domain.Like{UserID: viewer, EntityType: domain.LikeEntityReply, EntityID: first}))
	require.NoError(t, repo.Create(ctx, &domain.Like{UserID: other, EntityType: domain.LikeEntityReply, EntityID: first}))
	require.NoError(t, repo.Create(ctx, &domain.Like{UserID: other, EntityType: domain.LikeEntityReply, EntityID: second}))

	counts, err := repo.CountByEntities(ctx, domain.LikeEntityReply, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[first])
	assert.Equal(t, int64(1), counts[second])

	liked, err := repo.ExistsByUserAndEntities(ctx, viewer, domain.LikeEntityReply, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.True(t, liked[first])
	assert.False(t, liked[second])
}

func TestBookingRepository_UpdateStatusIfCurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ServiceID:   uuid.New(),
		ProviderID:  uuid.New(),
		CustomerID:  uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
		DurationMin: 60,
		Status:      domain.BookingPending,
	}
	require.NoError(t, repo.Create(ctx, booking))

	ok, err := repo.UpdateStatusIfCurrent(ctx, booking.ID, domain.BookingPending, domain.BookingAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	// The stale writer loses: the row is no longer pending
	ok, err = repo.UpdateStatusIfCurrent(ctx, booking.ID, domain.BookingPending, domain.BookingCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, reloaded.Status)
}

func TestBookingRepository_UpdateStatusAndPaymentIfCurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	paymentRepo := NewPaymentRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ServiceID:   uuid.New(),
		ProviderID:  uuid.New(),
		CustomerID:  uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
		DurationMin: 60,
		Status:      domain.BookingWaitingVerification,
		Payment: &domain.Payment{
			Amount: 10000,
			Status: domain.PaymentWaitingVerification,
		},
	}
	require.NoError(t, repo.Create(ctx, booking))

	// A writer holding a stale status touches neither row
	stale := &domain.Payment{BaseModel: booking.Payment.BaseModel, BookingID: booking.ID,
		Amount: booking.Payment.Amount, Status: domain.PaymentFailed}
	ok, err := repo.UpdateStatusAndPaymentIfCurrent(ctx, booking.ID, domain.BookingPending, domain.BookingCancelled, stale)
	require.NoError(t, err)
	assert.False(t, ok)

	payment, err := paymentRepo.FindByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentWaitingVerification, payment.Status)

	// The guarded writer lands both rows together
	payment.Status = domain.PaymentCompleted
	ok, err = repo.UpdateStatusAndPaymentIfCurrent(ctx, booking.ID, domain.BookingWaitingVerification, domain.BookingAccepted, payment)
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.FindByIDWithPayment(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingAccepted, reloaded.Status)
	assert.Equal(t, domain.PaymentCompleted, reloaded.Payment.Status)
}

func TestBookingRepository_CreateCascadesPayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	booking := &domain.Booking{
		ServiceID:   uuid.New(),
		ProviderID:  uuid.New(),
		CustomerID:  uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
		DurationMin: 30,
		Status:      domain.BookingPending,
		Payment: &domain.Payment{
			Amount: 10000,
			Status: domain.PaymentPending,
		},
	}
	require.NoError(t, repo.Create(ctx, booking))

	reloaded, err := repo.FindByIDWithPayment(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Payment)
	assert.Equal(t, booking.ID, reloaded.Payment.BookingID)
	assert.Equal(t, domain.PaymentPending, reloaded.Payment.Status)
}

func TestBookingRepository_FindStalePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	stale := &domain.Booking{
		ServiceID: uuid.New(), ProviderID: uuid.New(), CustomerID: uuid.New(),
		ScheduledAt: time.Now(), DurationMin: 30, Status: domain.BookingPending,
	}
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, db.Model(stale).Update("created_at", time.Now().Add(-48*time.Hour)).Error)

	fresh := &domain.Booking{
		ServiceID: uuid.New(), ProviderID: uuid.New(), CustomerID: uuid.New(),
		ScheduledAt: time.Now(), DurationMin: 30, Status: domain.BookingPending,
	}
	require.NoError(t, repo.Create(ctx, fresh))

	found, err := repo.FindStalePending(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stale.ID, found[0].ID)
}

func TestPointRepository_Aggregates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPointRepository(db)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for _, entry := range []*domain.PointEntry{
		{UserID: alice, Amount: 50, Reason: domain.PointReasonReplyResolved},
		{UserID: alice, Amount: 50, Reason: domain.PointReasonReplyResolved},
		{UserID: bob, Amount: 50, Reason: domain.PointReasonReplyResolved},
	} {
		require.NoError(t, repo.Create(ctx, entry))
	}

	sum, err := repo.SumByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(100), sum)

	top, err := repo.TopUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, alice, top[0].UserID)
	assert.Equal(t, int64(100), top[0].Total)
	assert.Equal(t, bob, top[1].UserID)
}

func TestSquadRepository_MemberUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewSquadRepository(db)
	ctx := context.Background()

	squad := &domain.Squad{OwnerID: uuid.New(), Name: "gophers"}
	require.NoError(t, repo.Create(ctx, squad))

	userID := uuid.New()
	require.NoError(t, repo.CreateMember(ctx, &domain.SquadMember{
		SquadID: squad.ID, UserID: userID, RoleName: domain.SquadRoleMember, JoinedAt: time.Now(),
	}))

	err := repo.CreateMember(ctx, &domain.SquadMember{
		SquadID: squad.ID, UserID: userID, RoleName: domain.SquadRoleMember, JoinedAt: time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")

	count, err := repo.CountMembers(ctx, squad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
