package handlers

import (
	"tutorlink/internal/models"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"
	"tutorlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

type reviewCreateRequest struct {
	TeacherID primitive.ObjectID `json:"teacher_id" validate:"required,object_id"`
	Name      string             `json:"name" validate:"omitempty,max=100"`
	Rating    float64            `json:"rating" validate:"required,min=1,max=5"`
	Review    string             `json:"review" validate:"omitempty,max=1000"`
	Tags      []string           `json:"tags" validate:"omitempty,max=10,dive,min=1"`
}

// CreateReview records a rating for a teacher
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var request reviewCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
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

	review := &models.Review{
		TeacherID: request.TeacherID,
		UserID:    userObjectID,
		Name:      request.Name,
		Rating:    request.Rating,
		Review:    request.Review,
		Tags:      request.Tags,
	}

	created, err := h.reviewService.Create(c.Request.Context(), review)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Review created successfully", created)
}

// GetTeacherReviews lists a teacher's reviews with pagination
func (h *ReviewHandler) GetTeacherReviews(c *gin.Context) {
	teacherID, err := primitive.ObjectIDFromHex(c.Param("teacher_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid teacher ID")
		return
	}

	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.GetByTeacher(c.Request.Context(), teacherID, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(reviews),
	}
	utils.SuccessResponseWithMeta(c, "Reviews retrieved successfully", reviews, meta)
}

// GetTeacherRating returns the average rating and review count for a teacher
func (h *ReviewHandler) GetTeacherRating(c *gin.Context) {
	teacherID, err := primitive.ObjectIDFromHex(c.Param("teacher_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid teacher ID")
		return
	}

	average, count, err := h.reviewService.GetTeacherRating(c.Request.Context(), teacherID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating retrieved successfully", gin.H{
		"average_rating": average,
		"review_count":   count,
	})
}
