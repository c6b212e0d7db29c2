package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFlat       DiscountType = "FLAT"
)

// CouponAppliesTo restricts a coupon to specific order attributes. An empty
// set imposes no restriction; each populated set is an independent AND filter.
type CouponAppliesTo struct {
	Subjects []string             `json:"subjects" bson:"subjects"`
	Boards   []string             `json:"boards" bson:"boards"`
	Classes  []string             `json:"classes" bson:"classes"`
	Teachers []primitive.ObjectID `json:"teachers" bson:"teachers"`
	Batches  []primitive.ObjectID `json:"batches" bson:"batches"`
}

type Coupon struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code              string             `json:"code" bson:"code" validate:"required"`
	Name              string             `json:"name" bson:"name" validate:"required"`
	Description       string             `json:"description" bson:"description"`
	DiscountType      DiscountType       `json:"discount_type" bson:"discount_type" validate:"required,oneof=PERCENTAGE FLAT"`
	DiscountValue     float64            `json:"discount_value" bson:"discount_value" validate:"required,gte=0"`
	MaxDiscountAmount *float64           `json:"max_discount_amount" bson:"max_discount_amount"`
	MinOrderAmount    float64            `json:"min_order_amount" bson:"min_order_amount"`
	StartDate         time.Time          `json:"start_date" bson:"start_date" validate:"required"`
	EndDate           time.Time          `json:"end_date" bson:"end_date" validate:"required"`
	IsActive          bool               `json:"is_active" bson:"is_active"`
	UsageLimit        *int               `json:"usage_limit" bson:"usage_limit"`
	UsageCount        int                `json:"usage_count" bson:"usage_count"`
	PerUserLimit      *int               `json:"per_user_limit" bson:"per_user_limit"`
	AppliesTo         CouponAppliesTo    `json:"applies_to" bson:"applies_to"`
	CreatedBy         primitive.ObjectID `json:"created_by" bson:"created_by"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsCurrentlyValid reports whether the coupon is active and inside its window.
func (c *Coupon) IsCurrentlyValid(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// UsageExhausted reports whether the global usage cap has been reached.
// A nil UsageLimit means unlimited.
func (c *Coupon) UsageExhausted() bool {
	return c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit
}

// OrderCriteria carries the attributes of an order a coupon's applicability
// rules are matched against.
type OrderCriteria struct {
	OrderAmount float64
	Subject     string
	Board       string
	Class       string
	TeacherID   *primitive.ObjectID
	BatchID     *primitive.ObjectID
}
