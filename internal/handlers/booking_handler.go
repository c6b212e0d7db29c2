package handlers

import (
	"tutorlink/internal/models"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"
	"tutorlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking opens a new booking in pending state
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request validators.BookingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	bookingType := models.BookingType(request.BookingType)
	if request.BookingType == "" {
		bookingType = models.BookingTypeClassRoom
	}

	booking := &models.Booking{
		TeacherID:    request.TeacherID,
		StudentID:    request.StudentID,
		ParentID:     request.ParentID,
		BatchID:      request.BatchID,
		BookingType:  bookingType,
		ClassDays:    request.ClassDays,
		ClassTimings: request.ClassTimings,
		Subjects:     request.Subjects,
		StartingDate: request.StartingDate,
		Fees:         request.Fees,
	}

	created, err := h.bookingService.Create(c.Request.Context(), booking)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", created)
}

// GetBooking retrieves a single booking
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// ListBookings lists bookings with pagination
func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.List(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(bookings),
	}
	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, meta)
}

// StageTwo records the payment frequency and terms acceptance
func (h *BookingHandler) StageTwo(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request validators.BookingStageTwoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingStageTwo(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	booking, err := h.bookingService.AdvanceStageTwo(c.Request.Context(), bookingID,
		models.BookingFrequency(request.Frequency), request.AcceptTNC)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking updated successfully", booking)
}

// StageThree records the payment details and finalizes the booking status
func (h *BookingHandler) StageThree(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request validators.BookingStageThreeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookingStageThree(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	booking, err := h.bookingService.AdvanceStageThree(c.Request.Context(), bookingID,
		request.PaymentDetails, models.BookingStatus(request.Status))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking updated successfully", booking)
}

// CancelBooking marks the booking cancelled, releasing its seat if it was paid
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", booking)
}

// DeleteBooking removes a booking entirely
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), bookingID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking deleted successfully", nil)
}
