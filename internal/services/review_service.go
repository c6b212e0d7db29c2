package services

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByTeacher(ctx context.Context, teacherID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error)
	GetTeacherRating(ctx context.Context, teacherID primitive.ObjectID) (float64, int64, error)
}

type reviewService struct {
	reviews  interfaces.ReviewRepository
	teachers interfaces.TeacherRepository
}

func NewReviewService(reviews interfaces.ReviewRepository, teachers interfaces.TeacherRepository) ReviewService {
	return &reviewService{
		reviews:  reviews,
		teachers: teachers,
	}
}

func (s *reviewService) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if _, err := s.teachers.GetByID(ctx, review.TeacherID); err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewService) GetByTeacher(ctx context.Context, teacherID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Review, int64, error) {
	return s.reviews.GetByTeacher(ctx, teacherID, params)
}

func (s *reviewService) GetTeacherRating(ctx context.Context, teacherID primitive.ObjectID) (float64, int64, error) {
	return s.reviews.GetAverageRating(ctx, teacherID)
}
