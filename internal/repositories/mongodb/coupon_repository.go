package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type couponRepository struct {
	collection *mongo.Collection
	usages     *mongo.Collection
	cache      services.CacheService
}

func NewCouponRepository(db *mongo.Database, cache services.CacheService) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
		usages:     db.Collection("coupon_usages"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	// Coupon codes are stored uppercase; lookups normalize the same way.
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	coupon.UsageCount = 0

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrCouponCodeExists
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	cacheKey := utils.CacheCouponPrefix + code
	if r.cache != nil {
		var coupon models.Coupon
		if err := r.cache.Get(ctx, cacheKey, &coupon); err == nil {
			return &coupon, nil
		}
	}

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	// Only active coupons are worth caching; usage counters make the cached
	// copy advisory, so redemption always re-reads through IncrementUsage.
	if r.cache != nil && coupon.IsActive {
		r.cache.Set(ctx, cacheKey, coupon, utils.CouponCacheTTL)
	}

	return &coupon, nil
}

func (r *couponRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	if code, exists := updates["code"]; exists {
		if codeStr, ok := code.(string); ok {
			updates["code"] = strings.ToUpper(strings.TrimSpace(codeStr))
		}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrCouponNotFound
	}

	r.invalidateCouponCache(ctx, id)

	return nil
}

func (r *couponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	coupon, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheCouponPrefix+coupon.Code)
	}

	return nil
}

func (r *couponRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	for cursor.Next(ctx) {
		var coupon models.Coupon
		if err := cursor.Decode(&coupon); err != nil {
			return nil, 0, fmt.Errorf("failed to decode coupon: %w", err)
		}
		coupons = append(coupons, &coupon)
	}

	return coupons, total, nil
}

// IncrementUsage bumps usage_count behind a usage_limit guard, all in one
// conditional update. Concurrent redemptions racing for the last slot resolve
// in the storage engine; the loser sees no modified document.
func (r *couponRepository) IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id": id,
			"$or": []bson.M{
				{"usage_limit": nil},
				{"$expr": bson.M{"$lt": bson.A{"$usage_count", "$usage_limit"}}},
			},
		},
		bson.M{
			"$inc": bson.M{"usage_count": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	if result.ModifiedCount > 0 {
		r.invalidateCouponCache(ctx, id)
		return true, nil
	}

	return false, nil
}

// Per-user redemption tracking
func (r *couponRepository) RecordUsage(ctx context.Context, usage *models.CouponUsage) error {
	usage.ID = primitive.NewObjectID()
	if usage.UsedAt.IsZero() {
		usage.UsedAt = time.Now()
	}

	_, err := r.usages.InsertOne(ctx, usage)
	if err != nil {
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}

	return nil
}

func (r *couponRepository) CountUsageByUser(ctx context.Context, couponID, userID primitive.ObjectID) (int64, error) {
	count, err := r.usages.CountDocuments(ctx, bson.M{
		"coupon_id": couponID,
		"user_id":   userID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count coupon usage: %w", err)
	}

	return count, nil
}

func (r *couponRepository) invalidateCouponCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}

	var coupon models.Coupon
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon); err == nil {
		r.cache.Delete(ctx, utils.CacheCouponPrefix+coupon.Code)
	}
}
