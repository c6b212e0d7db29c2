package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassBatch struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TeacherID       primitive.ObjectID `json:"teacher_id" bson:"teacher_id" validate:"required"`
	Name            string             `json:"name" bson:"name" validate:"required"`
	BatchInfo       string             `json:"batch_info" bson:"batch_info"`
	Subjects        []string           `json:"subjects" bson:"subjects" validate:"required,min=1"`
	Boards          []string           `json:"boards" bson:"boards" validate:"required,min=1"`
	Classes         []string           `json:"classes" bson:"classes" validate:"required,min=1"`
	Days            []string           `json:"days" bson:"days" validate:"required,min=1"`
	Time            []string           `json:"time" bson:"time" validate:"required,min=1"`
	Fees            float64            `json:"fees" bson:"fees" validate:"required,min=100,max=25000"`
	MaximumStudents int                `json:"maximum_students" bson:"maximum_students" validate:"required,min=1,max=2"`
	CurrentStudents int                `json:"current_students" bson:"current_students"`
	BatchStartDate  time.Time          `json:"batch_start_date" bson:"batch_start_date" validate:"required"`
	LastEnrolDate   time.Time          `json:"last_enrol_date" bson:"last_enrol_date" validate:"required"`
	IsActive        bool               `json:"is_active" bson:"is_active"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsFull reports whether every seat in the batch is taken.
func (b *ClassBatch) IsFull() bool {
	return b.CurrentStudents >= b.MaximumStudents
}

// IsEnrollmentOpen reports whether new students can still enrol.
func (b *ClassBatch) IsEnrollmentOpen(now time.Time) bool {
	return b.IsActive && !now.After(b.LastEnrolDate) && !b.IsFull()
}

// BatchFilter is the typed query surface for listing batches. Each populated
// field is an independent AND condition; slice fields match any-of.
type BatchFilter struct {
	TeacherID *primitive.ObjectID
	Subjects  []string
	Boards    []string
	Classes   []string
	IsActive  *bool
}
