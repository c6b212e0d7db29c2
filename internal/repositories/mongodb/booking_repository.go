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

type bookingRepository struct {
	collection *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
	}
}

// Basic CRUD operations
func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}
	if booking.BookingType == "" {
		booking.BookingType = models.BookingTypeClassRoom
	}
	if booking.Frequency == "" {
		booking.Frequency = models.FrequencyMonthly
	}
	if booking.PaymentDetails == nil {
		booking.PaymentDetails = map[string]interface{}{}
	}
	booking.IsActive = true

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrBookingNotFound
	}

	return nil
}

// Listing
func (r *bookingRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{}, params)
}

func (r *bookingRepository) GetByStudent(ctx context.Context, studentID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{"student_id": studentID}, params)
}

func (r *bookingRepository) GetByBatch(ctx context.Context, batchID primitive.ObjectID) ([]*models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"batch_id": batchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find batch bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

// MarkCancelled flips the status to cancelled and returns the pre-update
// document. The status guard makes a second cancel match nothing, which is
// what keeps the seat release idempotent.
func (r *bookingRepository) MarkCancelled(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var prior models.Booking
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{
			"_id":    id,
			"status": bson.M{"$ne": models.BookingStatusCancelled},
		},
		bson.M{"$set": bson.M{
			"status":     models.BookingStatusCancelled,
			"is_active":  false,
			"updated_at": time.Now(),
		}},
		opts,
	).Decode(&prior)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Either absent or already cancelled; look once more to say which.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, services.ErrBookingFinal
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	return &prior, nil
}

func (r *bookingRepository) findBookingsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var booking models.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}
