package interfaces

import (
	"context"

	"tutorlink/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile repositories are read-mostly collaborators: booking creation only
// needs existence checks, and the teacher repository additionally carries the
// derived schedule view.

type TeacherRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Teacher, error)

	// UpdateSchedule replaces the teacher's aggregated days_of_week and
	// time_of_day, recomputed from all of the teacher's batches.
	UpdateSchedule(ctx context.Context, id primitive.ObjectID, daysOfWeek, timeOfDay []string) error
}

type StudentRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
}

type ParentRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Parent, error)
}
