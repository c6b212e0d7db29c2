package routes

import (
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCouponRoutes sets up routes for coupon validation, redemption and
// administration
func SetupCouponRoutes(r *gin.RouterGroup, couponHandler *handlers.CouponHandler, jwtSecret string) {
	coupons := r.Group("/coupons")
	coupons.Use(middleware.AuthRequired(jwtSecret))
	{
		coupons.POST("/validate", couponHandler.ValidateCoupon)
		coupons.POST("/apply", couponHandler.ApplyCoupon)
	}

	admin := r.Group("/coupons")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.POST("/", couponHandler.CreateCoupon)
		admin.GET("/", couponHandler.ListCoupons)
		admin.GET("/:id", couponHandler.GetCoupon)
		admin.PUT("/:id", couponHandler.UpdateCoupon)
		admin.DELETE("/:id", couponHandler.DeleteCoupon)
		admin.PATCH("/:id/toggle", couponHandler.ToggleCouponStatus)
	}
}
