package interfaces

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Listing
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStudent(ctx context.Context, studentID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByBatch(ctx context.Context, batchID primitive.ObjectID) ([]*models.Booking, error)

	// MarkCancelled transitions a booking to cancelled unless it already is,
	// returning the document as it was before the update so the caller can
	// decide whether a seat has to be released.
	MarkCancelled(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
}
