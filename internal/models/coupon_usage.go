package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponUsage records one confirmed redemption of a coupon by a user. One
// record per (coupon, user, order); insert-only.
type CouponUsage struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CouponID primitive.ObjectID `json:"coupon_id" bson:"coupon_id" validate:"required"`
	UserID   primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	OrderID  primitive.ObjectID `json:"order_id" bson:"order_id" validate:"required"`
	UsedAt   time.Time          `json:"used_at" bson:"used_at"`
}
