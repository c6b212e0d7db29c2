package utils

import "time"

// Application Constants
const (
	AppName    = "TutorLink"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Batch constraints
	MinBatchFee         = 100.0
	MaxBatchFee         = 25000.0
	MinStudentsPerBatch = 1
	MaxStudentsPerBatch = 2

	// Cache TTLs
	CouponCacheTTL = 30 * time.Minute
	BatchCacheTTL  = 10 * time.Minute

	// Schedule recompute
	ScheduleRefreshTimeout = 10 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes returned in the API error envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"

	CodeBatchNotFound = "BATCH_NOT_FOUND"
	CodeBatchInactive = "BATCH_INACTIVE"
	CodeBatchFull     = "BATCH_FULL"

	CodeBookingNotFound = "BOOKING_NOT_FOUND"
	CodeBookingFinal    = "BOOKING_CANCELLED"

	CodeCouponNotFound      = "COUPON_NOT_FOUND"
	CodeCouponInactive      = "COUPON_INACTIVE"
	CodeCouponExpired       = "COUPON_EXPIRED"
	CodeUsageLimitReached   = "USAGE_LIMIT_REACHED"
	CodePerUserLimitReached = "PER_USER_LIMIT_REACHED"
	CodeOrderTooSmall       = "ORDER_TOO_SMALL"
	CodeCouponNotApplicable = "COUPON_NOT_APPLICABLE"
	CodeCouponCodeExists    = "COUPON_CODE_EXISTS"
)

// Error Messages
const (
	ErrValidationFailed = "validation failed"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
)

// Cache Keys
const (
	CacheCouponPrefix  = "coupon:"
	CacheBatchPrefix   = "batch:"
	CacheTeacherPrefix = "teacher:"
)
