package interfaces

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByTeacher(ctx context.Context, teacherID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	GetAverageRating(ctx context.Context, teacherID primitive.ObjectID) (float64, int64, error)
}
