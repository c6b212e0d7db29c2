package services

import (
	"context"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/utils"
	"tutorlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponService interface {
	// Engine
	Validate(ctx context.Context, code string, userID primitive.ObjectID, criteria models.OrderCriteria) (*CouponQuote, error)
	Apply(ctx context.Context, code string, userID, orderID primitive.ObjectID) error

	// Admin
	Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Coupon, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
}

// CouponQuote is the outcome of a successful validation. Validation never
// mutates coupon state; a quote is a price preview, not a redemption.
type CouponQuote struct {
	Code           string              `json:"code"`
	Name           string              `json:"name"`
	DiscountType   models.DiscountType `json:"discount_type"`
	DiscountValue  float64             `json:"discount_value"`
	DiscountAmount float64             `json:"discount_amount"`
	FinalAmount    float64             `json:"final_amount"`
}

type couponService struct {
	coupons interfaces.CouponRepository
	tx      TxRunner
	log     *logger.Logger
	now     func() time.Time
}

func NewCouponService(coupons interfaces.CouponRepository, tx TxRunner, log *logger.Logger) CouponService {
	return &couponService{
		coupons: coupons,
		tx:      tx,
		log:     log,
		now:     time.Now,
	}
}

// Validate runs the eligibility checks in order, short-circuiting on the
// first failure, and computes the discount for the given order.
func (s *couponService) Validate(ctx context.Context, code string, userID primitive.ObjectID, criteria models.OrderCriteria) (*CouponQuote, error) {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}
	if now.Before(coupon.StartDate) || now.After(coupon.EndDate) {
		return nil, ErrCouponExpired
	}
	if coupon.UsageExhausted() {
		return nil, ErrUsageLimitReached
	}

	if coupon.PerUserLimit != nil {
		used, err := s.coupons.CountUsageByUser(ctx, coupon.ID, userID)
		if err != nil {
			return nil, err
		}
		if used >= int64(*coupon.PerUserLimit) {
			return nil, ErrPerUserLimitReached
		}
	}

	if criteria.OrderAmount < coupon.MinOrderAmount {
		return nil, ErrOrderTooSmall
	}

	if !isApplicable(coupon, criteria) {
		return nil, ErrCouponNotApplicable
	}

	discount := CalculateDiscount(criteria.OrderAmount, coupon)

	s.log.LogCouponEvent(coupon.Code, "coupon_validated", map[string]interface{}{
		"order_amount":    criteria.OrderAmount,
		"discount_amount": discount,
	})

	return &CouponQuote{
		Code:           coupon.Code,
		Name:           coupon.Name,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		DiscountAmount: discount,
		FinalAmount:    criteria.OrderAmount - discount,
	}, nil
}

// Apply redeems the coupon for a confirmed order: one guarded usage_count
// increment plus one CouponUsage record, committed together. Losing the
// conditional increment means another redemption took the last slot.
func (s *couponService) Apply(ctx context.Context, code string, userID, orderID primitive.ObjectID) error {
	coupon, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return err
	}

	if coupon.PerUserLimit != nil {
		used, err := s.coupons.CountUsageByUser(ctx, coupon.ID, userID)
		if err != nil {
			return err
		}
		if used >= int64(*coupon.PerUserLimit) {
			return ErrPerUserLimitReached
		}
	}

	err = s.tx.RunTransaction(ctx, func(txCtx context.Context) error {
		ok, err := s.coupons.IncrementUsage(txCtx, coupon.ID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUsageLimitReached
		}

		return s.coupons.RecordUsage(txCtx, &models.CouponUsage{
			CouponID: coupon.ID,
			UserID:   userID,
			OrderID:  orderID,
			UsedAt:   s.now(),
		})
	})
	if err != nil {
		return err
	}

	s.log.LogCouponEvent(coupon.Code, "coupon_applied", map[string]interface{}{
		"user_id":  userID.Hex(),
		"order_id": orderID.Hex(),
	})

	return nil
}

// CalculateDiscount computes the money taken off an order by a coupon.
// Percentage discounts respect the optional cap; no discount ever exceeds
// the order amount or goes negative.
func CalculateDiscount(orderAmount float64, coupon *models.Coupon) float64 {
	var discount float64

	switch coupon.DiscountType {
	case models.DiscountTypePercentage:
		discount = orderAmount * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	case models.DiscountTypeFlat:
		discount = coupon.DiscountValue
	}

	if discount < 0 {
		discount = 0
	}
	if discount > orderAmount {
		discount = orderAmount
	}

	return discount
}

// isApplicable checks the coupon's restriction sets against the order. Each
// populated set is an independent AND filter; an empty set is unrestricted.
func isApplicable(coupon *models.Coupon, criteria models.OrderCriteria) bool {
	if len(coupon.AppliesTo.Subjects) > 0 && !containsString(coupon.AppliesTo.Subjects, criteria.Subject) {
		return false
	}
	if len(coupon.AppliesTo.Boards) > 0 && !containsString(coupon.AppliesTo.Boards, criteria.Board) {
		return false
	}
	if len(coupon.AppliesTo.Classes) > 0 && !containsString(coupon.AppliesTo.Classes, criteria.Class) {
		return false
	}
	if len(coupon.AppliesTo.Teachers) > 0 && !containsObjectID(coupon.AppliesTo.Teachers, criteria.TeacherID) {
		return false
	}
	if len(coupon.AppliesTo.Batches) > 0 && !containsObjectID(coupon.AppliesTo.Batches, criteria.BatchID) {
		return false
	}
	return true
}

func containsString(set []string, value string) bool {
	if value == "" {
		return false
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

func containsObjectID(set []primitive.ObjectID, value *primitive.ObjectID) bool {
	if value == nil {
		return false
	}
	for _, id := range set {
		if id == *value {
			return true
		}
	}
	return false
}

// Admin operations

func (s *couponService) Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if coupon.StartDate.After(coupon.EndDate) {
		return nil, ErrInvalidDateRange
	}

	if err := s.coupons.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.log.LogCouponEvent(coupon.Code, "coupon_created", nil)

	return coupon, nil
}

func (s *couponService) Get(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	return s.coupons.GetByID(ctx, id)
}

func (s *couponService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	return s.coupons.List(ctx, params)
}

func (s *couponService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.Coupon, error) {
	start, hasStart := updates["start_date"].(time.Time)
	end, hasEnd := updates["end_date"].(time.Time)
	if hasStart && hasEnd && start.After(end) {
		return nil, ErrInvalidDateRange
	}

	if err := s.coupons.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	return s.coupons.GetByID(ctx, id)
}

func (s *couponService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.coupons.Delete(ctx, id)
}

func (s *couponService) ToggleStatus(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.coupons.Update(ctx, id, map[string]interface{}{"is_active": !coupon.IsActive})
	if err != nil {
		return nil, err
	}

	return s.coupons.GetByID(ctx, id)
}
