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
)

type teacherRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewTeacherRepository(db *mongo.Database, cache services.CacheService) interfaces.TeacherRepository {
	return &teacherRepository{
		collection: db.Collection("teachers"),
		cache:      cache,
	}
}

func (r *teacherRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Teacher, error) {
	cacheKey := utils.CacheTeacherPrefix + id.Hex()
	if r.cache != nil {
		var teacher models.Teacher
		if err := r.cache.Get(ctx, cacheKey, &teacher); err == nil {
			return &teacher, nil
		}
	}

	var teacher models.Teacher
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&teacher)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, teacher, utils.BatchCacheTTL)
	}

	return &teacher, nil
}

func (r *teacherRepository) UpdateSchedule(ctx context.Context, id primitive.ObjectID, daysOfWeek, timeOfDay []string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"days_of_week": daysOfWeek,
			"time_of_day":  timeOfDay,
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update teacher schedule: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrTeacherNotFound
	}

	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheTeacherPrefix+id.Hex())
	}

	return nil
}
