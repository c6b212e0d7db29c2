package mongodb

import (
	"context"
	"fmt"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type batchRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewBatchRepository(db *mongo.Database, cache services.CacheService) interfaces.BatchRepository {
	return &batchRepository{
		collection: db.Collection("class_batches"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *batchRepository) Create(ctx context.Context, batch *models.ClassBatch) error {
	batch.ID = primitive.NewObjectID()
	batch.CreatedAt = time.Now()
	batch.UpdatedAt = time.Now()

	if batch.MaximumStudents == 0 {
		batch.MaximumStudents = utils.MaxStudentsPerBatch
	}
	batch.CurrentStudents = 0

	_, err := r.collection.InsertOne(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to create class batch: %w", err)
	}

	return nil
}

func (r *batchRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ClassBatch, error) {
	if batch := r.getBatchFromCache(ctx, id.Hex()); batch != nil {
		return batch, nil
	}

	var batch models.ClassBatch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&batch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get class batch: %w", err)
	}

	if batch.IsActive {
		r.cacheBatch(ctx, &batch)
	}

	return &batch, nil
}

func (r *batchRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update class batch: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrBatchNotFound
	}

	r.invalidateBatchCache(ctx, id.Hex())

	return nil
}

// Deactivate soft-deletes a batch. Batches are never hard-deleted so paid
// bookings keep a resolvable reference.
func (r *batchRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{"is_active": false})
}

// Listing
func (r *batchRepository) List(ctx context.Context, filter *models.BatchFilter, params *utils.PaginationParams) ([]*models.ClassBatch, int64, error) {
	query := buildBatchQuery(filter)

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count class batches: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find class batches: %w", err)
	}
	defer cursor.Close(ctx)

	var batches []*models.ClassBatch
	for cursor.Next(ctx) {
		var batch models.ClassBatch
		if err := cursor.Decode(&batch); err != nil {
			return nil, 0, fmt.Errorf("failed to decode class batch: %w", err)
		}
		batches = append(batches, &batch)
	}

	return batches, total, nil
}

func (r *batchRepository) GetByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]*models.ClassBatch, error) {
	opts := options.Find().SetSort(bson.D{{Key: "batch_start_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"teacher_id": teacherID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find teacher batches: %w", err)
	}
	defer cursor.Close(ctx)

	var batches []*models.ClassBatch
	for cursor.Next(ctx) {
		var batch models.ClassBatch
		if err := cursor.Decode(&batch); err != nil {
			return nil, fmt.Errorf("failed to decode class batch: %w", err)
		}
		batches = append(batches, &batch)
	}

	return batches, nil
}

// TryReserveSeat claims one seat with a single conditional update. The filter
// carries the full invariant (active, below capacity) so two concurrent
// callers racing for the last seat resolve inside the storage engine: exactly
// one update matches.
func (r *batchRepository) TryReserveSeat(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":       id,
			"is_active": true,
			"$expr":     bson.M{"$lt": bson.A{"$current_students", "$maximum_students"}},
		},
		bson.M{
			"$inc": bson.M{"current_students": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve seat: %w", err)
	}

	if result.ModifiedCount == 0 {
		return r.diagnoseReserveFailure(ctx, id)
	}

	r.invalidateBatchCache(ctx, id.Hex())

	return nil
}

// ReleaseSeat returns one seat to the batch, floored at zero. A release that
// matches no document is not an error, so repeated releases are harmless.
func (r *batchRepository) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":              id,
			"current_students": bson.M{"$gt": 0},
		},
		bson.M{
			"$inc": bson.M{"current_students": -1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release seat: %w", err)
	}

	r.invalidateBatchCache(ctx, id.Hex())

	return nil
}

// diagnoseReserveFailure re-reads the batch to turn "no document matched"
// into a specific reason. The read is only for the error message; the
// reservation decision was already made by the conditional update.
func (r *batchRepository) diagnoseReserveFailure(ctx context.Context, id primitive.ObjectID) error {
	var batch models.ClassBatch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&batch)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return services.ErrBatchNotFound
		}
		return fmt.Errorf("failed to diagnose reservation failure: %w", err)
	}

	if !batch.IsActive {
		return services.ErrBatchInactive
	}
	return services.ErrBatchFull
}

func buildBatchQuery(filter *models.BatchFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}

	if filter.TeacherID != nil {
		query["teacher_id"] = *filter.TeacherID
	}
	if len(filter.Subjects) > 0 {
		query["subjects"] = bson.M{"$in": filter.Subjects}
	}
	if len(filter.Boards) > 0 {
		query["boards"] = bson.M{"$in": filter.Boards}
	}
	if len(filter.Classes) > 0 {
		query["classes"] = bson.M{"$in": filter.Classes}
	}
	if filter.IsActive != nil {
		query["is_active"] = *filter.IsActive
	}

	return query
}

// Cache operations
func (r *batchRepository) cacheBatch(ctx context.Context, batch *models.ClassBatch) {
	if r.cache != nil {
		cacheKey := utils.CacheBatchPrefix + batch.ID.Hex()
		r.cache.Set(ctx, cacheKey, batch, utils.BatchCacheTTL)
	}
}

func (r *batchRepository) getBatchFromCache(ctx context.Context, batchID string) *models.ClassBatch {
	if r.cache == nil {
		return nil
	}

	var batch models.ClassBatch
	if err := r.cache.Get(ctx, utils.CacheBatchPrefix+batchID, &batch); err != nil {
		return nil
	}
	return &batch
}

func (r *batchRepository) invalidateBatchCache(ctx context.Context, batchID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheBatchPrefix+batchID)
	}
}
