package interfaces

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)

	// IncrementUsage atomically bumps usage_count, guarded by usage_limit.
	// Returns false when the guard matched no document (limit reached or a
	// concurrent redemption took the last slot).
	IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error)

	// Per-user redemption tracking
	RecordUsage(ctx context.Context, usage *models.CouponUsage) error
	CountUsageByUser(ctx context.Context, couponID, userID primitive.ObjectID) (int64, error)
}
