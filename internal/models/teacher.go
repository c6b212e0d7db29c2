package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Teacher struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" validate:"required"`
	Email          string             `json:"email" bson:"email" validate:"required,email"`
	Phone          string             `json:"phone" bson:"phone"`
	Qualifications []string           `json:"qualifications" bson:"qualifications"`
	Experience     int                `json:"experience" bson:"experience"`
	Subjects       []string           `json:"subjects" bson:"subjects"`
	Boards         []string           `json:"boards" bson:"boards"`

	// Derived view over all of the teacher's batches, refreshed best-effort
	// after batch mutations.
	DaysOfWeek []string `json:"days_of_week" bson:"days_of_week"`
	TimeOfDay  []string `json:"time_of_day" bson:"time_of_day"`

	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
