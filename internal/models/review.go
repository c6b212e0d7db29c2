package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a student's rating of a teacher.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TeacherID primitive.ObjectID `json:"teacher_id" bson:"teacher_id" validate:"required"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Name      string             `json:"name" bson:"name"`
	Rating    float64            `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Review    string             `json:"review" bson:"review"`
	Tags      []string           `json:"tags" bson:"tags"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
