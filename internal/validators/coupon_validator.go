package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponCreateRequest struct {
	Code              string               `json:"code" validate:"required,coupon_code"`
	Name              string               `json:"name" validate:"required,min=3,max=100"`
	Description       string               `json:"description" validate:"omitempty,max=500"`
	DiscountType      string               `json:"discount_type" validate:"required,oneof=PERCENTAGE FLAT"`
	DiscountValue     float64              `json:"discount_value" validate:"required,gt=0"`
	MaxDiscountAmount *float64             `json:"max_discount_amount" validate:"omitempty,gt=0"`
	MinOrderAmount    float64              `json:"min_order_amount" validate:"omitempty,gte=0"`
	StartDate         time.Time            `json:"start_date" validate:"required"`
	EndDate           time.Time            `json:"end_date" validate:"required"`
	UsageLimit        *int                 `json:"usage_limit" validate:"omitempty,min=1"`
	PerUserLimit      *int                 `json:"per_user_limit" validate:"omitempty,min=1"`
	Subjects          []string             `json:"subjects" validate:"omitempty,dive,min=1"`
	Boards            []string             `json:"boards" validate:"omitempty,dive,min=1"`
	Classes           []string             `json:"classes" validate:"omitempty,dive,min=1"`
	Teachers          []primitive.ObjectID `json:"teachers" validate:"omitempty,dive,object_id"`
	Batches           []primitive.ObjectID `json:"batches" validate:"omitempty,dive,object_id"`
}

type CouponUpdateRequest struct {
	Name              *string    `json:"name" validate:"omitempty,min=3,max=100"`
	Description       *string    `json:"description" validate:"omitempty,max=500"`
	DiscountValue     *float64   `json:"discount_value" validate:"omitempty,gt=0"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" validate:"omitempty,gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount" validate:"omitempty,gte=0"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	UsageLimit        *int       `json:"usage_limit" validate:"omitempty,min=1"`
	PerUserLimit      *int       `json:"per_user_limit" validate:"omitempty,min=1"`
}

type CouponValidateRequest struct {
	Code        string              `json:"code" validate:"required,coupon_code"`
	OrderAmount float64             `json:"order_amount" validate:"required,gt=0"`
	Subject     string              `json:"subject" validate:"omitempty,min=1"`
	Board       string              `json:"board" validate:"omitempty,min=1"`
	Class       string              `json:"class" validate:"omitempty,min=1"`
	TeacherID   *primitive.ObjectID `json:"teacher_id" validate:"omitempty,object_id"`
	BatchID     *primitive.ObjectID `json:"batch_id" validate:"omitempty,object_id"`
}

type CouponApplyRequest struct {
	Code    string             `json:"code" validate:"required,coupon_code"`
	OrderID primitive.ObjectID `json:"order_id" validate:"required,object_id"`
}

func ValidateCouponCreate(req *CouponCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.StartDate.After(req.EndDate) {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "End date must not be before the start date",
		})
	}

	if req.DiscountType == "PERCENTAGE" && req.DiscountValue > 100 {
		errors = append(errors, ValidationError{
			Field:   "discount_value",
			Message: "Percentage discount cannot exceed 100",
		})
	}

	return errors
}

func ValidateCouponUpdate(req *CouponUpdateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		errors = append(errors, ValidationError{
			Field:   "end_date",
			Message: "End date must not be before the start date",
		})
	}

	return errors
}

func ValidateCouponValidate(req *CouponValidateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCouponApply(req *CouponApplyRequest) ValidationErrors {
	return ValidateStruct(req)
}

func (req *CouponUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DiscountValue != nil {
		updates["discount_value"] = *req.DiscountValue
	}
	if req.MaxDiscountAmount != nil {
		updates["max_discount_amount"] = *req.MaxDiscountAmount
	}
	if req.MinOrderAmount != nil {
		updates["min_order_amount"] = *req.MinOrderAmount
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.PerUserLimit != nil {
		updates["per_user_limit"] = *req.PerUserLimit
	}

	return updates
}
