package handlers

import (
	"tutorlink/internal/models"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"
	"tutorlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// ValidateCoupon prices an order against a coupon without redeeming it
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var request validators.CouponValidateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponValidate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}
	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	quote, err := h.couponService.Validate(c.Request.Context(), request.Code, userObjectID, models.OrderCriteria{
		OrderAmount: request.OrderAmount,
		Subject:     request.Subject,
		Board:       request.Board,
		Class:       request.Class,
		TeacherID:   request.TeacherID,
		BatchID:     request.BatchID,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon is valid", quote)
}

// ApplyCoupon redeems a coupon against a confirmed order
func (h *CouponHandler) ApplyCoupon(c *gin.Context) {
	var request validators.CouponApplyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponApply(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return
	}
	userObjectID, ok := userID.(primitive.ObjectID)
	if !ok {
		utils.BadRequestResponse(c, "Invalid user ID")
		return
	}

	if err := h.couponService.Apply(c.Request.Context(), request.Code, userObjectID, request.OrderID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon applied successfully", nil)
}

// CreateCoupon creates a new coupon (admin)
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var request validators.CouponCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	coupon := &models.Coupon{
		Code:              request.Code,
		Name:              request.Name,
		Description:       request.Description,
		DiscountType:      models.DiscountType(request.DiscountType),
		DiscountValue:     request.DiscountValue,
		MaxDiscountAmount: request.MaxDiscountAmount,
		MinOrderAmount:    request.MinOrderAmount,
		StartDate:         request.StartDate,
		EndDate:           request.EndDate,
		IsActive:          true,
		UsageLimit:        request.UsageLimit,
		PerUserLimit:      request.PerUserLimit,
		AppliesTo: models.CouponAppliesTo{
			Subjects: request.Subjects,
			Boards:   request.Boards,
			Classes:  request.Classes,
			Teachers: request.Teachers,
			Batches:  request.Batches,
		},
	}

	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(primitive.ObjectID); ok {
			coupon.CreatedBy = id
		}
	}

	created, err := h.couponService.Create(c.Request.Context(), coupon)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Coupon created successfully", created)
}

// GetCoupon retrieves a coupon by ID (admin)
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	couponID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.Get(c.Request.Context(), couponID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon retrieved successfully", coupon)
}

// ListCoupons lists coupons with pagination (admin)
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.List(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(coupons),
	}
	utils.SuccessResponseWithMeta(c, "Coupons retrieved successfully", coupons, meta)
}

// UpdateCoupon updates mutable coupon fields (admin)
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	couponID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	var request validators.CouponUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCouponUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), couponID, request.ToUpdates())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon updated successfully", coupon)
}

// DeleteCoupon removes a coupon (admin)
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	couponID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), couponID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon deleted successfully", nil)
}

// ToggleCouponStatus flips a coupon between active and inactive (admin)
func (h *CouponHandler) ToggleCouponStatus(c *gin.Context) {
	couponID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.ToggleStatus(c.Request.Context(), couponID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Coupon status updated successfully", coupon)
}
