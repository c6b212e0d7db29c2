package services

import "errors"

// Domain errors shared by services and repositories. Handlers translate these
// into HTTP responses; repositories surface them when a conditional update
// matched no document.
var (
	ErrBatchNotFound   = errors.New("class batch not found")
	ErrBatchInactive   = errors.New("class batch is not active")
	ErrBatchFull       = errors.New("class batch is already full")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingFinal    = errors.New("booking is already cancelled")

	ErrTeacherNotFound = errors.New("teacher not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrParentNotFound  = errors.New("parent not found")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon is outside its validity window")
	ErrUsageLimitReached   = errors.New("coupon has reached its maximum usage limit")
	ErrPerUserLimitReached = errors.New("coupon per-user limit reached")
	ErrOrderTooSmall       = errors.New("order amount is below the coupon minimum")
	ErrCouponNotApplicable = errors.New("coupon cannot be applied to this order")
	ErrCouponCodeExists    = errors.New("a coupon with this code already exists")
	ErrCouponConflict      = errors.New("coupon redemption lost a concurrent update")

	ErrInvalidDateRange = errors.New("end date must be after start date")
)
