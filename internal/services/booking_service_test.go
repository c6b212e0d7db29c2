package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBatchRepo struct {
	mu      sync.Mutex
	batches map[primitive.ObjectID]*models.ClassBatch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[primitive.ObjectID]*models.ClassBatch)}
}

func (r *fakeBatchRepo) put(b *models.ClassBatch) *models.ClassBatch {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[b.ID] = b
	return b
}

func (r *fakeBatchRepo) Create(ctx context.Context, batch *models.ClassBatch) error {
	r.put(batch)
	return nil
}

func (r *fakeBatchRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ClassBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return nil, ErrBatchNotFound
	}
	copied := *batch
	return &copied, nil
}

func (r *fakeBatchRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.batches[id]; !ok {
		return ErrBatchNotFound
	}
	return nil
}

func (r *fakeBatchRepo) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}
	batch.IsActive = false
	return nil
}

func (r *fakeBatchRepo) List(ctx context.Context, filter *models.BatchFilter, params *utils.PaginationParams) ([]*models.ClassBatch, int64, error) {
	return nil, 0, nil
}

func (r *fakeBatchRepo) GetByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]*models.ClassBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ClassBatch
	for _, batch := range r.batches {
		if batch.TeacherID == teacherID {
			copied := *batch
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBatchRepo) TryReserveSeat(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return ErrBatchNotFound
	}
	if !batch.IsActive {
		return ErrBatchInactive
	}
	if batch.CurrentStudents >= batch.MaximumStudents {
		return ErrBatchFull
	}
	batch.CurrentStudents++
	return nil
}

func (r *fakeBatchRepo) ReleaseSeat(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[id]
	if !ok {
		return nil
	}
	if batch.CurrentStudents > 0 {
		batch.CurrentStudents--
	}
	return nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if v, ok := updates["status"].(models.BookingStatus); ok {
		booking.Status = v
	}
	if v, ok := updates["frequency"].(models.BookingFrequency); ok {
		booking.Frequency = v
	}
	if v, ok := updates["accept_tnc"].(bool); ok {
		booking.AcceptTNC = v
	}
	if v, ok := updates["payment_details"].(map[string]interface{}); ok {
		booking.PaymentDetails = v
	}
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Booking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		copied := *booking
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) GetByStudent(ctx context.Context, studentID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookingRepo) GetByBatch(ctx context.Context, batchID primitive.ObjectID) ([]*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, booking := range r.bookings {
		if booking.BatchID == batchID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) MarkCancelled(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, ErrBookingFinal
	}
	prior := *booking
	booking.Status = models.BookingStatusCancelled
	return &prior, nil
}

type fakeTeacherRepo struct{ schedules sync.Map }

func (r *fakeTeacherRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Teacher, error) {
	return &models.Teacher{ID: id}, nil
}

func (r *fakeTeacherRepo) UpdateSchedule(ctx context.Context, id primitive.ObjectID, daysOfWeek, timeOfDay []string) error {
	r.schedules.Store(id, daysOfWeek)
	return nil
}

type fakeStudentRepo struct{}

func (fakeStudentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	return &models.Student{ID: id}, nil
}

type fakeParentRepo struct{}

func (fakeParentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Parent, error) {
	return &models.Parent{ID: id}, nil
}

func newTestBookingService(t *testing.T, batches *fakeBatchRepo, bookings *fakeBookingRepo) BookingService {
	t.Helper()
	return NewBookingService(bookings, batches, &fakeTeacherRepo{}, fakeStudentRepo{}, fakeParentRepo{}, fakeTxRunner{}, testLogger(t))
}

func testBatch(maxStudents int) *models.ClassBatch {
	return &models.ClassBatch{
		TeacherID:       primitive.NewObjectID(),
		Name:            "Morning Maths",
		Subjects:        []string{"maths"},
		Boards:          []string{"CBSE"},
		Classes:         []string{"10"},
		Days:            []string{"monday"},
		Time:            []string{"09:00"},
		Fees:            1500,
		MaximumStudents: maxStudents,
		BatchStartDate:  time.Now().Add(7 * 24 * time.Hour),
		LastEnrolDate:   time.Now().Add(5 * 24 * time.Hour),
		IsActive:        true,
	}
}

func testBooking(batch *models.ClassBatch) *models.Booking {
	return &models.Booking{
		TeacherID:    batch.TeacherID,
		StudentID:    primitive.NewObjectID(),
		ParentID:     primitive.NewObjectID(),
		BatchID:      batch.ID,
		ClassDays:    []string{"monday"},
		ClassTimings: []string{"09:00"},
		Subjects:     []string{"maths"},
		StartingDate: batch.BatchStartDate,
		Fees:         batch.Fees,
	}
}

func TestCreateBookingStartsPending(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)

	booking, err := svc.Create(context.Background(), testBooking(batch))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("Status = %v, want pending", booking.Status)
	}

	// No seat is held before payment.
	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 0 {
		t.Errorf("CurrentStudents = %d, want 0", stored.CurrentStudents)
	}
}

func TestCreateBookingRejectsInactiveBatch(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := testBatch(2)
	batch.IsActive = false
	batches.put(batch)

	svc := newTestBookingService(t, batches, bookings)

	_, err := svc.Create(context.Background(), testBooking(batch))
	if !errors.Is(err, ErrBatchInactive) {
		t.Errorf("Create error = %v, want ErrBatchInactive", err)
	}
}

func TestStageTwoSetsFrequencyAndConfirms(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))

	updated, err := svc.AdvanceStageTwo(context.Background(), booking.ID, models.FrequencyMonthly, true)
	if err != nil {
		t.Fatalf("AdvanceStageTwo: %v", err)
	}
	if updated.Status != models.BookingStatusConfirmed {
		t.Errorf("Status = %v, want confirmed", updated.Status)
	}
	if updated.Frequency != models.FrequencyMonthly {
		t.Errorf("Frequency = %v, want monthly", updated.Frequency)
	}
	if !updated.AcceptTNC {
		t.Error("AcceptTNC = false, want true")
	}
}

func TestStageThreePaidReservesSeat(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))

	payment := map[string]interface{}{"txn_id": "pay_123"}
	updated, err := svc.AdvanceStageThree(context.Background(), booking.ID, payment, models.BookingStatusPaid)
	if err != nil {
		t.Fatalf("AdvanceStageThree: %v", err)
	}
	if updated.Status != models.BookingStatusPaid {
		t.Errorf("Status = %v, want paid", updated.Status)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 1 {
		t.Errorf("CurrentStudents = %d, want 1", stored.CurrentStudents)
	}
}

func TestStageThreePaidIsIdempotent(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))

	payment := map[string]interface{}{"txn_id": "pay_123"}
	if _, err := svc.AdvanceStageThree(context.Background(), booking.ID, payment, models.BookingStatusPaid); err != nil {
		t.Fatalf("first AdvanceStageThree: %v", err)
	}
	if _, err := svc.AdvanceStageThree(context.Background(), booking.ID, payment, models.BookingStatusPaid); err != nil {
		t.Fatalf("second AdvanceStageThree: %v", err)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 1 {
		t.Errorf("CurrentStudents = %d, want 1 after repeated paid submission", stored.CurrentStudents)
	}
}

func TestConcurrentPaymentsNeverOversellBatch(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)

	const contenders = 10
	ids := make([]primitive.ObjectID, contenders)
	for i := range ids {
		booking, err := svc.Create(context.Background(), testBooking(batch))
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids[i] = booking.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for _, id := range ids {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			_, err := svc.AdvanceStageThree(context.Background(), id,
				map[string]interface{}{"txn_id": id.Hex()}, models.BookingStatusPaid)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var paid, full int
	for err := range results {
		switch {
		case err == nil:
			paid++
		case errors.Is(err, ErrBatchFull):
			full++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if paid != 2 {
		t.Errorf("paid = %d, want 2", paid)
	}
	if full != contenders-2 {
		t.Errorf("full = %d, want %d", full, contenders-2)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 2 {
		t.Errorf("CurrentStudents = %d, want 2", stored.CurrentStudents)
	}
}

func TestCancelPaidBookingReleasesSeat(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(1))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))
	if _, err := svc.AdvanceStageThree(context.Background(), booking.ID,
		map[string]interface{}{"txn_id": "pay_1"}, models.BookingStatusPaid); err != nil {
		t.Fatalf("AdvanceStageThree: %v", err)
	}

	cancelled, err := svc.Cancel(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Errorf("Status = %v, want cancelled", cancelled.Status)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 0 {
		t.Errorf("CurrentStudents = %d, want 0 after cancel", stored.CurrentStudents)
	}
}

func TestCancelUnpaidBookingKeepsCapacity(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(1))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))

	if _, err := svc.Cancel(context.Background(), booking.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 0 {
		t.Errorf("CurrentStudents = %d, want 0", stored.CurrentStudents)
	}
}

func TestRepeatedCancelDoesNotDoubleRelease(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)

	// Two paid bookings, then cancel one of them twice.
	first, _ := svc.Create(context.Background(), testBooking(batch))
	second, _ := svc.Create(context.Background(), testBooking(batch))
	for _, id := range []primitive.ObjectID{first.ID, second.ID} {
		if _, err := svc.AdvanceStageThree(context.Background(), id,
			map[string]interface{}{"txn_id": id.Hex()}, models.BookingStatusPaid); err != nil {
			t.Fatalf("AdvanceStageThree: %v", err)
		}
	}

	if _, err := svc.Cancel(context.Background(), first.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	_, err := svc.Cancel(context.Background(), first.ID)
	if !errors.Is(err, ErrBookingFinal) {
		t.Errorf("second Cancel error = %v, want ErrBookingFinal", err)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 1 {
		t.Errorf("CurrentStudents = %d, want 1 after repeated cancel", stored.CurrentStudents)
	}
}

func TestStageTransitionsRejectedAfterCancel(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(2))

	svc := newTestBookingService(t, batches, bookings)
	booking, _ := svc.Create(context.Background(), testBooking(batch))
	if _, err := svc.Cancel(context.Background(), booking.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if _, err := svc.AdvanceStageTwo(context.Background(), booking.ID, models.FrequencyWeekly, true); !errors.Is(err, ErrBookingFinal) {
		t.Errorf("AdvanceStageTwo error = %v, want ErrBookingFinal", err)
	}
	if _, err := svc.AdvanceStageThree(context.Background(), booking.ID,
		map[string]interface{}{"txn_id": "late"}, models.BookingStatusPaid); !errors.Is(err, ErrBookingFinal) {
		t.Errorf("AdvanceStageThree error = %v, want ErrBookingFinal", err)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 0 {
		t.Errorf("CurrentStudents = %d, want 0", stored.CurrentStudents)
	}
}

func TestDeletePaidBookingFreesSeatForWaitingStudent(t *testing.T) {
	batches := newFakeBatchRepo()
	bookings := newFakeBookingRepo()
	batch := batches.put(testBatch(1))

	svc := newTestBookingService(t, batches, bookings)

	// Student A takes the only seat.
	bookingA, _ := svc.Create(context.Background(), testBooking(batch))
	if _, err := svc.AdvanceStageThree(context.Background(), bookingA.ID,
		map[string]interface{}{"txn_id": "pay_a"}, models.BookingStatusPaid); err != nil {
		t.Fatalf("pay A: %v", err)
	}

	// Student B cannot pay while the batch is full.
	bookingB, _ := svc.Create(context.Background(), testBooking(batch))
	_, err := svc.AdvanceStageThree(context.Background(), bookingB.ID,
		map[string]interface{}{"txn_id": "pay_b"}, models.BookingStatusPaid)
	if !errors.Is(err, ErrBatchFull) {
		t.Fatalf("pay B error = %v, want ErrBatchFull", err)
	}

	// Deleting A's paid booking frees the seat; B's retry succeeds.
	if err := svc.Delete(context.Background(), bookingA.ID); err != nil {
		t.Fatalf("Delete A: %v", err)
	}
	if _, err := svc.AdvanceStageThree(context.Background(), bookingB.ID,
		map[string]interface{}{"txn_id": "pay_b2"}, models.BookingStatusPaid); err != nil {
		t.Fatalf("retry pay B: %v", err)
	}

	stored, _ := batches.GetByID(context.Background(), batch.ID)
	if stored.CurrentStudents != 1 {
		t.Errorf("CurrentStudents = %d, want 1", stored.CurrentStudents)
	}
}
