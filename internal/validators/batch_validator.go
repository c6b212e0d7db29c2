package validators

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BatchCreateRequest struct {
	TeacherID       primitive.ObjectID `json:"teacher_id" validate:"required,object_id"`
	Name            string             `json:"name" validate:"required,min=3,max=100"`
	BatchInfo       string             `json:"batch_info" validate:"omitempty,max=500"`
	Subjects        []string           `json:"subjects" validate:"required,min=1,dive,min=1"`
	Boards          []string           `json:"boards" validate:"required,min=1,dive,min=1"`
	Classes         []string           `json:"classes" validate:"required,min=1,dive,min=1"`
	Days            []string           `json:"days" validate:"required,min=1,dive,week_day"`
	Time            []string           `json:"time" validate:"required,min=1,dive,min=1"`
	Fees            float64            `json:"fees" validate:"required,batch_fee"`
	MaximumStudents int                `json:"maximum_students" validate:"required,min=1,max=2"`
	BatchStartDate  time.Time          `json:"batch_start_date" validate:"required"`
	LastEnrolDate   time.Time          `json:"last_enrol_date" validate:"required"`
}

type BatchUpdateRequest struct {
	Name            *string    `json:"name" validate:"omitempty,min=3,max=100"`
	BatchInfo       *string    `json:"batch_info" validate:"omitempty,max=500"`
	Subjects        []string   `json:"subjects" validate:"omitempty,min=1,dive,min=1"`
	Boards          []string   `json:"boards" validate:"omitempty,min=1,dive,min=1"`
	Classes         []string   `json:"classes" validate:"omitempty,min=1,dive,min=1"`
	Days            []string   `json:"days" validate:"omitempty,min=1,dive,week_day"`
	Time            []string   `json:"time" validate:"omitempty,min=1,dive,min=1"`
	Fees            *float64   `json:"fees" validate:"omitempty,batch_fee"`
	MaximumStudents *int       `json:"maximum_students" validate:"omitempty,min=1,max=2"`
	BatchStartDate  *time.Time `json:"batch_start_date"`
	LastEnrolDate   *time.Time `json:"last_enrol_date"`
}

func ValidateBatchCreate(req *BatchCreateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if !req.BatchStartDate.IsZero() && !req.LastEnrolDate.IsZero() && req.LastEnrolDate.After(req.BatchStartDate) {
		errors = append(errors, ValidationError{
			Field:   "last_enrol_date",
			Message: "Last enrolment date must not be after the batch start date",
		})
	}

	return errors
}

func ValidateBatchUpdate(req *BatchUpdateRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.BatchStartDate != nil && req.LastEnrolDate != nil && req.LastEnrolDate.After(*req.BatchStartDate) {
		errors = append(errors, ValidationError{
			Field:   "last_enrol_date",
			Message: "Last enrolment date must not be after the batch start date",
		})
	}

	return errors
}

// ToUpdates converts the populated fields into the update document the
// repository applies. Nil pointers and empty slices are left untouched.
func (req *BatchUpdateRequest) ToUpdates() map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.BatchInfo != nil {
		updates["batch_info"] = *req.BatchInfo
	}
	if len(req.Subjects) > 0 {
		updates["subjects"] = req.Subjects
	}
	if len(req.Boards) > 0 {
		updates["boards"] = req.Boards
	}
	if len(req.Classes) > 0 {
		updates["classes"] = req.Classes
	}
	if len(req.Days) > 0 {
		updates["days"] = req.Days
	}
	if len(req.Time) > 0 {
		updates["time"] = req.Time
	}
	if req.Fees != nil {
		updates["fees"] = *req.Fees
	}
	if req.MaximumStudents != nil {
		updates["maximum_students"] = *req.MaximumStudents
	}
	if req.BatchStartDate != nil {
		updates["batch_start_date"] = *req.BatchStartDate
	}
	if req.LastEnrolDate != nil {
		updates["last_enrol_date"] = *req.LastEnrolDate
	}

	return updates
}
