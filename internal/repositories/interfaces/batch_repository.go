package interfaces

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BatchRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, batch *models.ClassBatch) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ClassBatch, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Deactivate(ctx context.Context, id primitive.ObjectID) error

	// Listing
	List(ctx context.Context, filter *models.BatchFilter, params *utils.PaginationParams) ([]*models.ClassBatch, int64, error)
	GetByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]*models.ClassBatch, error)

	// Capacity ledger. TryReserveSeat performs a single conditional
	// increment of current_students and reports failure as
	// ErrBatchNotFound, ErrBatchInactive or ErrBatchFull. ReleaseSeat
	// decrements, floored at zero.
	TryReserveSeat(ctx context.Context, id primitive.ObjectID) error
	ReleaseSeat(ctx context.Context, id primitive.ObjectID) error
}
