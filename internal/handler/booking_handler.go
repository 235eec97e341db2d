package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"learning-community-api/internal/dto"
	"learning-community-api/internal/response"
	"learning-community-api/internal/service"
)

// maxProofSize caps uploaded payment proof images at 10 MB
const maxProofSize = 10 << 20

// BookingHandler handles booking and payment endpoints
type BookingHandler struct {
	bookingService service.BookingService
	logger         *zap.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusCreated, result)
}

// GetBooking handles GET /bookings/:bookingId
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := parsePathUUID(c, "bookingId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetMyBookings handles GET /bookings/customer
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.bookingService.GetBookingsByCustomer(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// GetProviderBookings handles GET /bookings/provider
func (h *BookingHandler) GetProviderBookings(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	result, err := h.bookingService.GetBookingsByProvider(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// TransitionBooking handles POST /bookings/:bookingId/status
func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	bookingID, err := parsePathUUID(c, "bookingId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.TransitionBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.bookingService.Transition(c.Request.Context(), bookingID, userID, req.Status)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// UploadPaymentProof handles POST /bookings/:bookingId/payment-proof
func (h *BookingHandler) UploadPaymentProof(c *gin.Context) {
	userID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	bookingID, err := parsePathUUID(c, "bookingId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Proof file is required")
		return
	}
	if fileHeader.Size > maxProofSize {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Proof file exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Failed to read proof file")
		return
	}
	defer file.Close()

	method := c.PostForm("paymentMethod")

	result, err := h.bookingService.UploadPaymentProof(
		c.Request.Context(), bookingID, userID,
		file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), method,
	)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}

// VerifyPayment handles POST /bookings/:bookingId/verify (admin only)
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	verifierID, err := extractUserID(c)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	bookingID, err := parsePathUUID(c, "bookingId")
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}

	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	result, err := h.bookingService.VerifyPayment(c.Request.Context(), bookingID, verifierID, req.Status)
	if err != nil {
		handleServiceError(c, err, h.logger)
		return
	}
	response.SendSuccess(c, http.StatusOK, result)
}
