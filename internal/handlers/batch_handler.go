package handlers

import (
	"strings"

	"tutorlink/internal/models"
	"tutorlink/internal/services"
	"tutorlink/internal/utils"
	"tutorlink/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BatchHandler struct {
	batchService services.BatchService
}

func NewBatchHandler(batchService services.BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
	}
}

// CreateBatch creates a new class batch
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var request validators.BatchCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBatchCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	batch := &models.ClassBatch{
		TeacherID:       request.TeacherID,
		Name:            request.Name,
		BatchInfo:       request.BatchInfo,
		Subjects:        request.Subjects,
		Boards:          request.Boards,
		Classes:         request.Classes,
		Days:            request.Days,
		Time:            request.Time,
		Fees:            request.Fees,
		MaximumStudents: request.MaximumStudents,
		BatchStartDate:  request.BatchStartDate,
		LastEnrolDate:   request.LastEnrolDate,
	}

	created, err := h.batchService.Create(c.Request.Context(), batch)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Batch created successfully", created)
}

// GetBatch retrieves a single batch
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid batch ID")
		return
	}

	batch, err := h.batchService.Get(c.Request.Context(), batchID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Batch retrieved successfully", batch)
}

// ListBatches lists batches filtered by the typed query parameters
func (h *BatchHandler) ListBatches(c *gin.Context) {
	filter, err := parseBatchFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	params := utils.GetPaginationParams(c)

	batches, total, err := h.batchService.List(c.Request.Context(), filter, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	meta := &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Count:      len(batches),
	}
	utils.SuccessResponseWithMeta(c, "Batches retrieved successfully", batches, meta)
}

// GetTeacherBatches lists every batch a teacher runs
func (h *BatchHandler) GetTeacherBatches(c *gin.Context) {
	teacherID, err := primitive.ObjectIDFromHex(c.Param("teacher_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid teacher ID")
		return
	}

	batches, err := h.batchService.GetTeacherBatches(c.Request.Context(), teacherID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Batches retrieved successfully", batches)
}

// UpdateBatch updates mutable batch fields
func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	batchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid batch ID")
		return
	}

	var request validators.BatchUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBatchUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.ToDetails())
		return
	}

	batch, err := h.batchService.Update(c.Request.Context(), batchID, request.ToUpdates())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Batch updated successfully", batch)
}

// DeactivateBatch retires a batch without removing it
func (h *BatchHandler) DeactivateBatch(c *gin.Context) {
	batchID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid batch ID")
		return
	}

	if err := h.batchService.Deactivate(c.Request.Context(), batchID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Batch deactivated successfully", nil)
}

// parseBatchFilter maps the recognised query parameters onto the typed batch
// filter. Unknown parameters are ignored; malformed values are rejected.
func parseBatchFilter(c *gin.Context) (*models.BatchFilter, error) {
	filter := &models.BatchFilter{}

	if v := c.Query("teacher_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, validators.ErrInvalidObjectID
		}
		filter.TeacherID = &id
	}

	if v := c.Query("subjects"); v != "" {
		filter.Subjects = splitCSV(v)
	}
	if v := c.Query("boards"); v != "" {
		filter.Boards = splitCSV(v)
	}
	if v := c.Query("classes"); v != "" {
		filter.Classes = splitCSV(v)
	}

	switch c.Query("is_active") {
	case "true":
		active := true
		filter.IsActive = &active
	case "false":
		active := false
		filter.IsActive = &active
	}

	return filter, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
