package routes

import (
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes sets up routes for teacher reviews
func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/teacher/:teacher_id", reviewHandler.GetTeacherReviews)
		reviews.GET("/teacher/:teacher_id/rating", reviewHandler.GetTeacherRating)
	}

	protected := r.Group("/reviews")
	protected.Use(middleware.AuthRequired(jwtSecret))
	{
		protected.POST("/", reviewHandler.CreateReview)
	}
}
