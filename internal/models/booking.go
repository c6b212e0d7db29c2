package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type BookingType string
type BookingFrequency string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"

	BookingTypeClassRoom       BookingType = "classRoom"
	BookingTypeExam            BookingType = "exam"
	BookingTypeCourseMaterials BookingType = "courseMaterials"

	FrequencyDaily     BookingFrequency = "daily"
	FrequencyWeekly    BookingFrequency = "weekly"
	FrequencyMonthly   BookingFrequency = "monthly"
	FrequencyQuarterly BookingFrequency = "quarterly"
	FrequencyYearly    BookingFrequency = "yearly"
)

type Booking struct {
	ID             primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	TeacherID      primitive.ObjectID     `json:"teacher_id" bson:"teacher_id" validate:"required"`
	StudentID      primitive.ObjectID     `json:"student_id" bson:"student_id" validate:"required"`
	ParentID       primitive.ObjectID     `json:"parent_id" bson:"parent_id" validate:"required"`
	BatchID        primitive.ObjectID     `json:"batch_id" bson:"batch_id" validate:"required"`
	Status         BookingStatus          `json:"status" bson:"status"`
	BookingType    BookingType            `json:"booking_type" bson:"booking_type"`
	ClassDays      []string               `json:"class_days" bson:"class_days" validate:"required,min=1"`
	ClassTimings   []string               `json:"class_timings" bson:"class_timings" validate:"required,min=1"`
	Subjects       []string               `json:"subjects" bson:"subjects" validate:"required,min=1"`
	StartingDate   time.Time              `json:"starting_date" bson:"starting_date" validate:"required"`
	Fees           float64                `json:"fees" bson:"fees" validate:"required,gt=0"`
	Frequency      BookingFrequency       `json:"frequency" bson:"frequency"`
	AcceptTNC      bool                   `json:"accept_tnc" bson:"accept_tnc"`
	PaymentDetails map[string]interface{} `json:"payment_details" bson:"payment_details"`
	IsActive       bool                   `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at" bson:"updated_at"`
}

// IsTerminal reports whether the booking can no longer move to another state.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled
}

func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusPaid, BookingStatusCancelled:
		return true
	}
	return false
}

func ValidBookingFrequency(s string) bool {
	switch BookingFrequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}
