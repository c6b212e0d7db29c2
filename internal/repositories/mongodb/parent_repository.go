package mongodb

import (
	"context"
	"fmt"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type parentRepository struct {
	collection *mongo.Collection
}

func NewParentRepository(db *mongo.Database) interfaces.ParentRepository {
	return &parentRepository{
		collection: db.Collection("parents"),
	}
}

func (r *parentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Parent, error) {
	var parent models.Parent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&parent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrParentNotFound
		}
		return nil, fmt.Errorf("failed to get parent: %w", err)
	}

	return &parent, nil
}
