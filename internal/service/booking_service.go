package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"learning-community-api/internal/client"
	"learning-community-api/internal/domain"
	"learning-community-api/internal/dto"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/repository"
	"learning-community-api/internal/response"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error)
	GetBookingsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*dto.BookingResponse, error)
	GetBookingsByProvider(ctx context.Context, providerID uuid.UUID) ([]*dto.BookingResponse, error)
	Transition(ctx context.Context, bookingID, actingUserID uuid.UUID, targetStatus string) (*dto.BookingResponse, error)
	UploadPaymentProof(ctx context.Context, bookingID, actingUserID uuid.UUID, proof io.Reader, fileName, contentType, method string) (*dto.PaymentResponse, error)
	VerifyPayment(ctx context.Context, bookingID, verifierID uuid.UUID, decision string) (*dto.PaymentResponse, error)
	ExpireStalePending(ctx context.Context, pendingTTL time.Duration) (int, error)
}

// bookingServiceImpl is the implementation of BookingService
type bookingServiceImpl struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	s3Client    client.S3ClientInterface
	notifier    client.NotificationClient
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewBookingService creates a new instance of BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	s3Client client.S3ClientInterface,
	notifier client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) BookingService {
	return &bookingServiceImpl{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		s3Client:    s3Client,
		notifier:    notifier,
		metrics:     m,
		logger:      logger,
	}
}

// CreateBooking creates a pending booking paired with a pending payment
func (s *bookingServiceImpl) CreateBooking(ctx context.Context, customerID uuid.UUID, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if req.ProviderID == customerID {
		return nil, response.NewAppError(response.ErrCodeValidation, "Cannot book your own service", "")
	}

	booking := &domain.Booking{
		ServiceID:   req.ServiceID,
		ProviderID:  req.ProviderID,
		CustomerID:  customerID,
		ScheduledAt: req.ScheduledAt,
		DurationMin: req.DurationMin,
		Status:      domain.BookingPending,
		Payment: &domain.Payment{
			Amount: req.Amount,
			Status: domain.PaymentPending,
		},
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create booking", err.Error())
	}

	return s.toBookingResponse(booking), nil
}

// GetBooking retrieves a booking with its payment
func (s *bookingServiceImpl) GetBooking(ctx context.Context, bookingID uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByIDWithPayment(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Booking not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch booking", err.Error())
	}
	return s.toBookingResponse(booking), nil
}

// GetBookingsByCustomer lists a customer's bookings
func (s *bookingServiceImpl) GetBookingsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*dto.BookingResponse, error) {
	bookings, err := s.bookingRepo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch bookings", err.Error())
	}
	responses := make([]*dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.toBookingResponse(booking)
	}
	return responses, nil
}

// GetBookingsByProvider lists a provider's bookings
func (s *bookingServiceImpl) GetBookingsByProvider(ctx context.Context, providerID uuid.UUID) ([]*dto.BookingResponse, error) {
	bookings, err := s.bookingRepo.FindByProviderID(ctx, providerID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch bookings", err.Error())
	}
	responses := make([]*dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = s.toBookingResponse(booking)
	}
	return responses, nil
}

// Transition moves a booking to a new status, enforcing the role-gated
// transition table. The write is a compare-and-set on the current status,
// so two concurrent calls for the same booking cannot both win.
func (s *bookingServiceImpl) Transition(ctx context.Context, bookingID, actingUserID uuid.UUID, targetStatus string) (*dto.BookingResponse, error) {
	booking, err := s.bookingRepo.FindByIDWithPayment(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Booking not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch booking", err.Error())
	}

	role, isParty := booking.RoleOf(actingUserID)
	if !isParty {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the booking's provider or customer may change its status", "")
	}

	target := domain.BookingStatus(targetStatus)
	if !target.IsValid() {
		return nil, response.NewAppError(response.ErrCodeValidation, "Unknown booking status", targetStatus)
	}

	current := booking.Status
	if !current.CanTransition(role, target) {
		if s.metrics != nil {
			s.metrics.IncrementInvalidTransition()
		}
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot transition from %s to %s", current, target), string(role))
	}

	ok, err := s.bookingRepo.UpdateStatusIfCurrent(ctx, bookingID, current, target)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update booking status", err.Error())
	}
	if !ok {
		// Another writer moved the booking between our read and the
		// guarded write.
		if s.metrics != nil {
			s.metrics.IncrementInvalidTransition()
		}
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot transition from %s to %s", current, target), "status changed concurrently")
	}

	if s.metrics != nil {
		s.metrics.IncrementBookingTransition(string(current), string(target))
	}

	s.notifyStatusChange(ctx, booking, actingUserID, target)

	booking.Status = target
	return s.toBookingResponse(booking), nil
}

// UploadPaymentProof stores a proof-of-payment image and moves both the
// payment and the booking into waiting_verification
func (s *bookingServiceImpl) UploadPaymentProof(ctx context.Context, bookingID, actingUserID uuid.UUID, proof io.Reader, fileName, contentType, method string) (*dto.PaymentResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Booking not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch booking", err.Error())
	}

	if booking.CustomerID != actingUserID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Only the booking's customer may upload a payment proof", "")
	}
	if booking.Status.IsTerminal() {
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot transition from %s to %s", booking.Status, domain.BookingWaitingVerification), "")
	}

	payment, err := s.paymentRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Payment not found for booking", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch payment", err.Error())
	}

	key, err := s.s3Client.GenerateFileKey("payment-proofs", fileName)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid proof file", err.Error())
	}
	if _, err := s.s3Client.UploadFile(ctx, key, proof, contentType); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store payment proof", err.Error())
	}

	payment.Status = domain.PaymentWaitingVerification
	payment.ProofKey = key
	payment.Method = method

	if booking.Status == domain.BookingWaitingVerification {
		// Re-upload: only the payment row changes.
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update payment", err.Error())
		}
	} else {
		ok, err := s.bookingRepo.UpdateStatusAndPaymentIfCurrent(ctx, bookingID, booking.Status, domain.BookingWaitingVerification, payment)
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update payment", err.Error())
		}
		if !ok {
			return nil, response.NewAppError(response.ErrCodeInvalidTransition,
				fmt.Sprintf("Cannot transition from %s to %s", booking.Status, domain.BookingWaitingVerification), "status changed concurrently")
		}
	}

	return s.toPaymentResponse(payment), nil
}

// VerifyPayment applies the admin decision on an uploaded proof. This is
// the only path out of waiting_verification: accepted moves the booking
// to accepted with a completed payment, rejected cancels it.
func (s *bookingServiceImpl) VerifyPayment(ctx context.Context, bookingID, verifierID uuid.UUID, decision string) (*dto.PaymentResponse, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Booking not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch booking", err.Error())
	}

	if booking.Status != domain.BookingWaitingVerification {
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot verify payment for a booking in status %s", booking.Status), "")
	}

	payment, err := s.paymentRepo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Payment not found for booking", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch payment", err.Error())
	}

	var paymentStatus domain.PaymentStatus
	var bookingStatus domain.BookingStatus
	switch decision {
	case "accepted":
		paymentStatus = domain.PaymentCompleted
		bookingStatus = domain.BookingAccepted
	case "rejected":
		paymentStatus = domain.PaymentFailed
		bookingStatus = domain.BookingCancelled
	default:
		return nil, response.NewAppError(response.ErrCodeValidation, "Decision must be accepted or rejected", decision)
	}

	// One transaction: the booking must never leave waiting_verification
	// without the payment decision landing with it.
	payment.Status = paymentStatus
	ok, err := s.bookingRepo.UpdateStatusAndPaymentIfCurrent(ctx, bookingID, domain.BookingWaitingVerification, bookingStatus, payment)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record payment decision", err.Error())
	}
	if !ok {
		return nil, response.NewAppError(response.ErrCodeInvalidTransition,
			fmt.Sprintf("Cannot verify payment for a booking in status %s", booking.Status), "status changed concurrently")
	}

	if s.metrics != nil {
		s.metrics.IncrementPaymentVerified(decision)
	}

	if s.notifier != nil {
		if err := s.notifier.SendNotification(ctx, client.NotificationEvent{
			Type:         client.NotificationPaymentVerified,
			ActorID:      verifierID,
			TargetUserID: booking.CustomerID,
			ResourceType: "payment",
			ResourceID:   payment.ID,
			Metadata: map[string]interface{}{
				"decision": decision,
				"status":   string(paymentStatus),
			},
		}); err != nil {
			s.logger.Warn("Failed to send payment notification", zap.Error(err))
		}
	}
	s.notifyStatusChange(ctx, booking, booking.ProviderID, bookingStatus)

	return s.toPaymentResponse(payment), nil
}

// ExpireStalePending cancels bookings left pending past the TTL. Used by
// the expiry job. Returns the number of bookings cancelled.
func (s *bookingServiceImpl) ExpireStalePending(ctx context.Context, pendingTTL time.Duration) (int, error) {
	cutoff := time.Now().Add(-pendingTTL)
	stale, err := s.bookingRepo.FindStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, booking := range stale {
		ok, err := s.bookingRepo.UpdateStatusIfCurrent(ctx, booking.ID, domain.BookingPending, domain.BookingCancelled)
		if err != nil {
			s.logger.Warn("Failed to expire stale booking",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(err))
			continue
		}
		if ok {
			expired++
			s.notifyStatusChange(ctx, booking, booking.ProviderID, domain.BookingCancelled)
		}
	}

	if expired > 0 && s.metrics != nil {
		s.metrics.IncrementBookingsExpired(expired)
	}

	return expired, nil
}

// notifyStatusChange informs the counterpart of the actor about a status change
func (s *bookingServiceImpl) notifyStatusChange(ctx context.Context, booking *domain.Booking, actorID uuid.UUID, newStatus domain.BookingStatus) {
	if s.notifier == nil {
		return
	}

	target := booking.CustomerID
	if actorID == booking.CustomerID {
		target = booking.ProviderID
	}

	if err := s.notifier.SendNotification(ctx, client.NotificationEvent{
		Type:         client.NotificationBookingStatusChanged,
		ActorID:      actorID,
		TargetUserID: target,
		ResourceType: "booking",
		ResourceID:   booking.ID,
		Metadata: map[string]interface{}{
			"status": string(newStatus),
		},
	}); err != nil {
		s.logger.Warn("Failed to send booking notification", zap.Error(err))
	}
}

// toBookingResponse converts domain.Booking to dto.BookingResponse
func (s *bookingServiceImpl) toBookingResponse(booking *domain.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		BookingID:   booking.ID,
		ServiceID:   booking.ServiceID,
		ProviderID:  booking.ProviderID,
		CustomerID:  booking.CustomerID,
		ScheduledAt: booking.ScheduledAt,
		DurationMin: booking.DurationMin,
		Status:      string(booking.Status),
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
	if booking.Payment != nil {
		resp.Payment = s.toPaymentResponse(booking.Payment)
	}
	return resp
}

// toPaymentResponse converts domain.Payment to dto.PaymentResponse
func (s *bookingServiceImpl) toPaymentResponse(payment *domain.Payment) *dto.PaymentResponse {
	proofURL := ""
	if payment.ProofKey != "" && s.s3Client != nil {
		proofURL = s.s3Client.GetFileURL(payment.ProofKey)
	}
	return &dto.PaymentResponse{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Status:    string(payment.Status),
		ProofURL:  proofURL,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}
