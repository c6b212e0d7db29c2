package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/utils"
	"tutorlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[primitive.ObjectID]*models.Coupon
	usages  []*models.CouponUsage
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[primitive.ObjectID]*models.Coupon)}
}

func (r *fakeCouponRepo) put(c *models.Coupon) *models.Coupon {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coupons[c.ID] = c
	return c
}

func (r *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.coupons {
		if existing.Code == coupon.Code {
			return ErrCouponCodeExists
		}
	}
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	r.coupons[coupon.ID] = coupon
	return nil
}

func (r *fakeCouponRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon, ok := r.coupons[id]
	if !ok {
		return nil, ErrCouponNotFound
	}
	copied := *coupon
	return &copied, nil
}

func (r *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, coupon := range r.coupons {
		if coupon.Code == code {
			copied := *coupon
			return &copied, nil
		}
	}
	return nil, ErrCouponNotFound
}

func (r *fakeCouponRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon, ok := r.coupons[id]
	if !ok {
		return ErrCouponNotFound
	}
	if v, ok := updates["is_active"].(bool); ok {
		coupon.IsActive = v
	}
	if v, ok := updates["discount_value"].(float64); ok {
		coupon.DiscountValue = v
	}
	return nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coupons[id]; !ok {
		return ErrCouponNotFound
	}
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		copied := *coupon
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCouponRepo) IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon, ok := r.coupons[id]
	if !ok {
		return false, nil
	}
	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return false, nil
	}
	coupon.UsageCount++
	return true, nil
}

func (r *fakeCouponRepo) RecordUsage(ctx context.Context, usage *models.CouponUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usages = append(r.usages, usage)
	return nil
}

func (r *fakeCouponRepo) CountUsageByUser(ctx context.Context, couponID, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, usage := range r.usages {
		if usage.CouponID == couponID && usage.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	return log
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func baseCoupon(code string) *models.Coupon {
	return &models.Coupon{
		Code:          code,
		Name:          "Test Coupon",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     time.Now().Add(-24 * time.Hour),
		EndDate:       time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestCalculateDiscount(t *testing.T) {
	tests := []struct {
		name        string
		orderAmount float64
		coupon      *models.Coupon
		want        float64
	}{
		{
			name:        "percentage",
			orderAmount: 1000,
			coupon: &models.Coupon{
				DiscountType:  models.DiscountTypePercentage,
				DiscountValue: 10,
			},
			want: 100,
		},
		{
			name:        "percentage capped by max discount",
			orderAmount: 1000,
			coupon: &models.Coupon{
				DiscountType:      models.DiscountTypePercentage,
				DiscountValue:     10,
				MaxDiscountAmount: floatPtr(50),
			},
			want: 50,
		},
		{
			name:        "flat",
			orderAmount: 500,
			coupon: &models.Coupon{
				DiscountType:  models.DiscountTypeFlat,
				DiscountValue: 100,
			},
			want: 100,
		},
		{
			name:        "flat larger than order is capped at order amount",
			orderAmount: 80,
			coupon: &models.Coupon{
				DiscountType:  models.DiscountTypeFlat,
				DiscountValue: 100,
			},
			want: 80,
		},
		{
			name:        "hundred percent",
			orderAmount: 250,
			coupon: &models.Coupon{
				DiscountType:  models.DiscountTypePercentage,
				DiscountValue: 100,
			},
			want: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDiscount(tt.orderAmount, tt.coupon)
			if got != tt.want {
				t.Errorf("CalculateDiscount(%v) = %v, want %v", tt.orderAmount, got, tt.want)
			}
		})
	}
}

func TestValidateOrderedChecks(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name     string
		mutate   func(c *models.Coupon)
		criteria models.OrderCriteria
		wantErr  error
	}{
		{
			name:     "inactive before expired",
			mutate:   func(c *models.Coupon) { c.IsActive = false; c.EndDate = time.Now().Add(-time.Hour) },
			criteria: models.OrderCriteria{OrderAmount: 1000},
			wantErr:  ErrCouponInactive,
		},
		{
			name:     "expired",
			mutate:   func(c *models.Coupon) { c.EndDate = time.Now().Add(-time.Hour) },
			criteria: models.OrderCriteria{OrderAmount: 1000},
			wantErr:  ErrCouponExpired,
		},
		{
			name:     "not yet started",
			mutate:   func(c *models.Coupon) { c.StartDate = time.Now().Add(time.Hour); c.EndDate = time.Now().Add(2 * time.Hour) },
			criteria: models.OrderCriteria{OrderAmount: 1000},
			wantErr:  ErrCouponExpired,
		},
		{
			name:     "usage exhausted",
			mutate:   func(c *models.Coupon) { c.UsageLimit = intPtr(5); c.UsageCount = 5 },
			criteria: models.OrderCriteria{OrderAmount: 1000},
			wantErr:  ErrUsageLimitReached,
		},
		{
			name:     "order below minimum",
			mutate:   func(c *models.Coupon) { c.MinOrderAmount = 500 },
			criteria: models.OrderCriteria{OrderAmount: 499},
			wantErr:  ErrOrderTooSmall,
		},
		{
			name:     "subject restriction not met",
			mutate:   func(c *models.Coupon) { c.AppliesTo.Subjects = []string{"maths"} },
			criteria: models.OrderCriteria{OrderAmount: 1000, Subject: "physics"},
			wantErr:  ErrCouponNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCouponRepo()
			coupon := baseCoupon("SAVE10")
			tt.mutate(coupon)
			repo.put(coupon)

			svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

			_, err := svc.Validate(context.Background(), "SAVE10", userID, tt.criteria)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuote(t *testing.T) {
	repo := newFakeCouponRepo()
	coupon := baseCoupon("SAVE10")
	coupon.MaxDiscountAmount = floatPtr(50)
	repo.put(coupon)

	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	quote, err := svc.Validate(context.Background(), "SAVE10", primitive.NewObjectID(), models.OrderCriteria{OrderAmount: 1000})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if quote.DiscountAmount != 50 {
		t.Errorf("DiscountAmount = %v, want 50", quote.DiscountAmount)
	}
	if quote.FinalAmount != 950 {
		t.Errorf("FinalAmount = %v, want 950", quote.FinalAmount)
	}

	// Validation must not consume usage.
	stored, _ := repo.GetByID(context.Background(), coupon.ID)
	if stored.UsageCount != 0 {
		t.Errorf("UsageCount after validate = %d, want 0", stored.UsageCount)
	}
}

func TestApplicabilityAllSetsMustMatch(t *testing.T) {
	teacherID := primitive.NewObjectID()
	batchID := primitive.NewObjectID()

	coupon := baseCoupon("COMBO")
	coupon.AppliesTo = models.CouponAppliesTo{
		Subjects: []string{"maths"},
		Boards:   []string{"CBSE"},
		Teachers: []primitive.ObjectID{teacherID},
	}

	criteria := models.OrderCriteria{
		OrderAmount: 1000,
		Subject:     "maths",
		Board:       "CBSE",
		TeacherID:   &teacherID,
		BatchID:     &batchID,
	}
	if !isApplicable(coupon, criteria) {
		t.Error("expected coupon to apply when every populated set matches")
	}

	criteria.Board = "ICSE"
	if isApplicable(coupon, criteria) {
		t.Error("expected coupon to be rejected when one populated set fails")
	}

	criteria.Board = ""
	if isApplicable(coupon, criteria) {
		t.Error("expected coupon to be rejected when the order lacks a restricted attribute")
	}
}

func TestApplyRecordsUsage(t *testing.T) {
	repo := newFakeCouponRepo()
	coupon := repo.put(baseCoupon("SAVE10"))

	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	userID := primitive.NewObjectID()
	orderID := primitive.NewObjectID()
	if err := svc.Apply(context.Background(), "SAVE10", userID, orderID); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), coupon.ID)
	if stored.UsageCount != 1 {
		t.Errorf("UsageCount = %d, want 1", stored.UsageCount)
	}
	used, _ := repo.CountUsageByUser(context.Background(), coupon.ID, userID)
	if used != 1 {
		t.Errorf("CountUsageByUser = %d, want 1", used)
	}
}

func TestApplyPerUserLimit(t *testing.T) {
	repo := newFakeCouponRepo()
	coupon := baseCoupon("ONCE")
	coupon.PerUserLimit = intPtr(1)
	repo.put(coupon)

	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	userID := primitive.NewObjectID()
	if err := svc.Apply(context.Background(), "ONCE", userID, primitive.NewObjectID()); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	err := svc.Apply(context.Background(), "ONCE", userID, primitive.NewObjectID())
	if !errors.Is(err, ErrPerUserLimitReached) {
		t.Errorf("second Apply error = %v, want ErrPerUserLimitReached", err)
	}

	// A different user is unaffected.
	if err := svc.Apply(context.Background(), "ONCE", primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
		t.Errorf("Apply for second user: %v", err)
	}
}

func TestConcurrentApplyNeverExceedsUsageLimit(t *testing.T) {
	repo := newFakeCouponRepo()
	coupon := baseCoupon("LIMITED")
	coupon.UsageLimit = intPtr(3)
	repo.put(coupon)

	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	const attempts = 20
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Apply(context.Background(), "LIMITED", primitive.NewObjectID(), primitive.NewObjectID())
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, limited int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrUsageLimitReached):
			limited++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if succeeded != 3 {
		t.Errorf("succeeded = %d, want 3", succeeded)
	}
	if limited != attempts-3 {
		t.Errorf("limited = %d, want %d", limited, attempts-3)
	}

	stored, _ := repo.GetByID(context.Background(), coupon.ID)
	if stored.UsageCount != 3 {
		t.Errorf("UsageCount = %d, want 3", stored.UsageCount)
	}
}

func TestCreateRejectsInvalidDateRange(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	coupon := baseCoupon("BACKWARDS")
	coupon.StartDate = time.Now().Add(48 * time.Hour)
	coupon.EndDate = time.Now().Add(24 * time.Hour)

	_, err := svc.Create(context.Background(), coupon)
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Create error = %v, want ErrInvalidDateRange", err)
	}
}

func TestToggleStatus(t *testing.T) {
	repo := newFakeCouponRepo()
	coupon := repo.put(baseCoupon("FLIP"))

	svc := NewCouponService(repo, fakeTxRunner{}, testLogger(t))

	toggled, err := svc.ToggleStatus(context.Background(), coupon.ID)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if toggled.IsActive {
		t.Error("expected coupon to be inactive after toggle")
	}

	toggled, err = svc.ToggleStatus(context.Background(), coupon.ID)
	if err != nil {
		t.Fatalf("ToggleStatus: %v", err)
	}
	if !toggled.IsActive {
		t.Error("expected coupon to be active after second toggle")
	}
}
