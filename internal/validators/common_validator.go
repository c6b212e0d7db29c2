package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("coupon_code", validateCouponCode)
	validate.RegisterValidation("future_date", validateFutureDate)
	validate.RegisterValidation("batch_fee", validateBatchFee)
	validate.RegisterValidation("week_day", validateWeekDay)
}

// Common validation errors
var (
	ErrInvalidObjectID   = errors.New("invalid object ID format")
	ErrInvalidCouponCode = errors.New("invalid coupon code format")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidFee        = errors.New("fee out of allowed range")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ToDetails flattens the errors into the field->message map the API error
// envelope carries.
func (v ValidationErrors) ToDetails() map[string]string {
	details := make(map[string]string, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return details
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "object_id":
		return ErrInvalidObjectID.Error()
	case "coupon_code":
		return ErrInvalidCouponCode.Error()
	case "future_date":
		return "date must be in the future"
	case "batch_fee":
		return ErrInvalidFee.Error()
	case "week_day":
		return "must be a valid day of the week"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case primitive.ObjectID:
		return !v.IsZero()
	case string:
		_, err := primitive.ObjectIDFromHex(v)
		return err == nil
	}
	return false
}

// Coupon codes are 3-20 uppercase letters, digits, hyphens or underscores.
// Lowercase input is accepted; storage normalizes to uppercase.
func validateCouponCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(fl.Field().String())
	if len(code) < 3 || len(code) > 20 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

func validateBatchFee(fl validator.FieldLevel) bool {
	fee := fl.Field().Float()
	return fee >= 100 && fee <= 25000
}

var weekDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func validateWeekDay(fl validator.FieldLevel) bool {
	return weekDays[strings.ToLower(fl.Field().String())]
}
