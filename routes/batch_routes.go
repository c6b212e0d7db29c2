package routes

import (
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBatchRoutes sets up routes for class batch management
func SetupBatchRoutes(r *gin.RouterGroup, batchHandler *handlers.BatchHandler, jwtSecret string) {
	// Public discovery routes
	batches := r.Group("/batches")
	{
		batches.GET("/", batchHandler.ListBatches)
		batches.GET("/:id", batchHandler.GetBatch)
		batches.GET("/teacher/:teacher_id", batchHandler.GetTeacherBatches)
	}

	// Teacher-managed routes
	manage := r.Group("/batches")
	manage.Use(middleware.AuthRequired(jwtSecret), middleware.TeacherRequired())
	{
		manage.POST("/", batchHandler.CreateBatch)
		manage.PUT("/:id", batchHandler.UpdateBatch)
		// DELETE deactivates rather than removing, so paid bookings keep a
		// resolvable batch reference.
		manage.DELETE("/:id", batchHandler.DeactivateBatch)
	}
}
