package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Student struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ParentID  primitive.ObjectID `json:"parent_id" bson:"parent_id"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Age       int                `json:"age" bson:"age"`
	Grade     string             `json:"grade" bson:"grade"`
	School    string             `json:"school" bson:"school"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
