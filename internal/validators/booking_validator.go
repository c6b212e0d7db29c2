package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingCreateRequest struct {
	TeacherID    primitive.ObjectID `json:"teacher_id" validate:"required,object_id"`
	StudentID    primitive.ObjectID `json:"student_id" validate:"required,object_id"`
	ParentID     primitive.ObjectID `json:"parent_id" validate:"required,object_id"`
	BatchID      primitive.ObjectID `json:"batch_id" validate:"required,object_id"`
	BookingType  string             `json:"booking_type" validate:"omitempty,oneof=classRoom exam courseMaterials"`
	ClassDays    []string           `json:"class_days" validate:"required,min=1,dive,week_day"`
	ClassTimings []string           `json:"class_timings" validate:"required,min=1,dive,min=1"`
	Subjects     []string           `json:"subjects" validate:"required,min=1,dive,min=1"`
	StartingDate time.Time          `json:"starting_date" validate:"required"`
	Fees         float64            `json:"fees" validate:"required,gt=0"`
}

type BookingStageTwoRequest struct {
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly monthly quarterly yearly"`
	AcceptTNC bool   `json:"accept_tnc"`
}

type BookingStageThreeRequest struct {
	PaymentDetails map[string]interface{} `json:"payment_details" validate:"required"`
	Status         string                 `json:"status" validate:"omitempty,oneof=pending confirmed paid"`
}

func ValidateBookingCreate(req *BookingCreateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateBookingStageTwo(req *BookingStageTwoRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if !req.AcceptTNC {
		errors = append(errors, ValidationError{
			Field:   "accept_tnc",
			Message: "Terms and conditions must be accepted",
		})
	}

	return errors
}

func ValidateBookingStageThree(req *BookingStageThreeRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if len(req.PaymentDetails) == 0 {
		errors = append(errors, ValidationError{
			Field:   "payment_details",
			Message: "payment_details must not be empty",
		})
	}

	return errors
}
