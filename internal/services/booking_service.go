package services

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/utils"
	"tutorlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	AdvanceStageTwo(ctx context.Context, id primitive.ObjectID, frequency models.BookingFrequency, acceptTNC bool) (*models.Booking, error)
	AdvanceStageThree(ctx context.Context, id primitive.ObjectID, paymentDetails map[string]interface{}, status models.BookingStatus) (*models.Booking, error)
	Cancel(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// bookingService drives the booking state machine:
// pending -> confirmed -> paid, with cancelled reachable from any state.
// Seats are not held before payment; the batch capacity is claimed only when
// a booking transitions to paid, and released when a paid booking is
// cancelled or deleted.
type bookingService struct {
	bookings interfaces.BookingRepository
	batches  interfaces.BatchRepository
	teachers interfaces.TeacherRepository
	students interfaces.StudentRepository
	parents  interfaces.ParentRepository
	tx       TxRunner
	log      *logger.Logger
}

func NewBookingService(
	bookings interfaces.BookingRepository,
	batches interfaces.BatchRepository,
	teachers interfaces.TeacherRepository,
	students interfaces.StudentRepository,
	parents interfaces.ParentRepository,
	tx TxRunner,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		batches:  batches,
		teachers: teachers,
		students: students,
		parents:  parents,
		tx:       tx,
		log:      log,
	}
}

// Create opens a booking in pending state. The target batch must exist and be
// active, but no seat is reserved here: capacity is only claimed at payment
// confirmation.
func (s *bookingService) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if _, err := s.teachers.GetByID(ctx, booking.TeacherID); err != nil {
		return nil, err
	}
	if _, err := s.students.GetByID(ctx, booking.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.parents.GetByID(ctx, booking.ParentID); err != nil {
		return nil, err
	}

	batch, err := s.batches.GetByID(ctx, booking.BatchID)
	if err != nil {
		return nil, err
	}
	if !batch.IsActive {
		return nil, ErrBatchInactive
	}

	booking.Status = models.BookingStatusPending
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.LogBookingEvent(booking.ID, "booking_created", map[string]interface{}{
		"batch_id":   booking.BatchID.Hex(),
		"student_id": booking.StudentID.Hex(),
	})

	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookings.List(ctx, params)
}

// AdvanceStageTwo records the payment frequency and terms acceptance. A pure
// field update with no effect on batch or coupon state.
func (s *bookingService) AdvanceStageTwo(ctx context.Context, id primitive.ObjectID, frequency models.BookingFrequency, acceptTNC bool) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, ErrBookingFinal
	}

	err = s.bookings.Update(ctx, id, map[string]interface{}{
		"frequency":  frequency,
		"accept_tnc": acceptTNC,
		"status":     models.BookingStatusConfirmed,
	})
	if err != nil {
		return nil, err
	}

	return s.bookings.GetByID(ctx, id)
}

// AdvanceStageThree stores the payment details and moves the booking to the
// requested status. The paid transition claims a seat through the capacity
// ledger; reservation and status change commit as one transaction, so a
// booking is never marked paid without a seat or vice versa. On reservation
// failure the booking keeps its prior status.
func (s *bookingService) AdvanceStageThree(ctx context.Context, id primitive.ObjectID, paymentDetails map[string]interface{}, status models.BookingStatus) (*models.Booking, error) {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		booking, err := s.bookings.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if booking.Status.IsTerminal() {
			return ErrBookingFinal
		}

		updates := map[string]interface{}{
			"payment_details": paymentDetails,
		}

		// A booking already paid keeps its seat; only the first paid
		// transition reserves.
		if status == models.BookingStatusPaid && booking.Status != models.BookingStatusPaid {
			if err := s.batches.TryReserveSeat(txCtx, booking.BatchID); err != nil {
				return err
			}
			updates["status"] = models.BookingStatusPaid
		} else if status != "" {
			updates["status"] = status
		}

		return s.bookings.Update(txCtx, id, updates)
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.LogBookingEvent(id, "booking_stage_three", map[string]interface{}{
		"status": string(booking.Status),
	})

	return booking, nil
}

// Cancel marks the booking cancelled and, when it had reached paid, returns
// its seat to the batch. The status flip and the release commit together;
// the pre-update status read inside MarkCancelled is what makes a repeated
// cancel a no-op instead of a double release.
func (s *bookingService) Cancel(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		prior, err := s.bookings.MarkCancelled(txCtx, id)
		if err != nil {
			return err
		}

		if prior.Status == models.BookingStatusPaid {
			return s.batches.ReleaseSeat(txCtx, prior.BatchID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.LogBookingEvent(id, "booking_cancelled", nil)

	return booking, nil
}

// Delete removes the booking record entirely, releasing its seat first when
// the booking was paid. Cancel is preferred where audit history matters;
// Delete remains for hard removal.
func (s *bookingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		booking, err := s.bookings.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if booking.Status == models.BookingStatusPaid {
			if err := s.batches.ReleaseSeat(txCtx, booking.BatchID); err != nil {
				return err
			}
		}

		return s.bookings.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.log.LogBookingEvent(id, "booking_deleted", nil)

	return nil
}
