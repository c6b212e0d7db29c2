package handlers

import (
	"errors"
	"net/http"

	"tutorlink/internal/services"
	"tutorlink/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondDomainError maps a service error onto the API error envelope. Unknown
// errors fall through to a 500 without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBatchNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeBatchNotFound, err.Error())
	case errors.Is(err, services.ErrBatchInactive):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBatchInactive, err.Error())
	case errors.Is(err, services.ErrBatchFull):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeBatchFull, err.Error())

	case errors.Is(err, services.ErrBookingNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeBookingNotFound, err.Error())
	case errors.Is(err, services.ErrBookingFinal):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeBookingFinal, err.Error())

	case errors.Is(err, services.ErrTeacherNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrParentNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeNotFound, err.Error())

	case errors.Is(err, services.ErrCouponNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeCouponNotFound, err.Error())
	case errors.Is(err, services.ErrCouponInactive):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeCouponInactive, err.Error())
	case errors.Is(err, services.ErrCouponExpired):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeCouponExpired, err.Error())
	case errors.Is(err, services.ErrUsageLimitReached):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeUsageLimitReached, err.Error())
	case errors.Is(err, services.ErrPerUserLimitReached):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodePerUserLimitReached, err.Error())
	case errors.Is(err, services.ErrOrderTooSmall):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeOrderTooSmall, err.Error())
	case errors.Is(err, services.ErrCouponNotApplicable):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeCouponNotApplicable, err.Error())
	case errors.Is(err, services.ErrCouponCodeExists):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeCouponCodeExists, err.Error())
	case errors.Is(err, services.ErrCouponConflict):
		utils.ErrorResponse(c, http.StatusConflict, utils.CodeConflict, err.Error())

	case errors.Is(err, services.ErrInvalidDateRange):
		utils.ErrorResponse(c, http.StatusBadRequest, utils.CodeValidationError, err.Error())

	default:
		utils.InternalServerErrorResponse(c)
	}
}
