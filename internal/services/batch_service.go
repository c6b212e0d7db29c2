package services

import (
	"context"

	"tutorlink/internal/models"
	"tutorlink/internal/repositories/interfaces"
	"tutorlink/internal/utils"
	"tutorlink/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BatchService interface {
	Create(ctx context.Context, batch *models.ClassBatch) (*models.ClassBatch, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.ClassBatch, error)
	List(ctx context.Context, filter *models.BatchFilter, params *utils.PaginationParams) ([]*models.ClassBatch, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ClassBatch, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	GetTeacherBatches(ctx context.Context, teacherID primitive.ObjectID) ([]*models.ClassBatch, error)
}

type batchService struct {
	batches  interfaces.BatchRepository
	teachers interfaces.TeacherRepository
	log      *logger.Logger
}

func NewBatchService(batches interfaces.BatchRepository, teachers interfaces.TeacherRepository, log *logger.Logger) BatchService {
	return &batchService{
		batches:  batches,
		teachers: teachers,
		log:      log,
	}
}

func (s *batchService) Create(ctx context.Context, batch *models.ClassBatch) (*models.ClassBatch, error) {
	if _, err := s.teachers.GetByID(ctx, batch.TeacherID); err != nil {
		return nil, err
	}

	batch.IsActive = true
	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	go s.refreshTeacherSchedule(batch.TeacherID)

	return batch, nil
}

func (s *batchService) Get(ctx context.Context, id primitive.ObjectID) (*models.ClassBatch, error) {
	return s.batches.GetByID(ctx, id)
}

func (s *batchService) List(ctx context.Context, filter *models.BatchFilter, params *utils.PaginationParams) ([]*models.ClassBatch, int64, error) {
	return s.batches.List(ctx, filter, params)
}

func (s *batchService) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*models.ClassBatch, error) {
	if err := s.batches.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go s.refreshTeacherSchedule(batch.TeacherID)

	return batch, nil
}

// Deactivate retires a batch without deleting it; existing paid bookings
// keep their seats, new bookings are refused.
func (s *batchService) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.batches.Deactivate(ctx, id); err != nil {
		return err
	}

	go s.refreshTeacherSchedule(batch.TeacherID)

	return nil
}

func (s *batchService) GetTeacherBatches(ctx context.Context, teacherID primitive.ObjectID) ([]*models.ClassBatch, error) {
	return s.batches.GetByTeacher(ctx, teacherID)
}

// refreshTeacherSchedule rebuilds the teacher's aggregated days/times from
// all of their batches. Best-effort and eventually consistent: it runs
// outside any transaction, on its own deadline, and only logs failures.
func (s *batchService) refreshTeacherSchedule(teacherID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), utils.ScheduleRefreshTimeout)
	defer cancel()

	batches, err := s.batches.GetByTeacher(ctx, teacherID)
	if err != nil {
		s.log.WithTeacherID(teacherID).WithError(err).Warn("schedule refresh: failed to load batches")
		return
	}

	var days, times []string
	for _, batch := range batches {
		days = appendUnique(days, batch.Days)
		times = appendUnique(times, batch.Time)
	}

	if err := s.teachers.UpdateSchedule(ctx, teacherID, days, times); err != nil {
		s.log.WithTeacherID(teacherID).WithError(err).Warn("schedule refresh: failed to update teacher")
	}
}

func appendUnique(dst []string, src []string) []string {
	for _, v := range src {
		seen := false
		for _, existing := range dst {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, v)
		}
	}
	return dst
}
