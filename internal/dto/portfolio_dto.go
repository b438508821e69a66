package dto

import (
	"encoding/json"
	"time"

	"github.com/tndevelopers2024/scribe-api/internal/models"
)

// ItemCreateRequest carries the category-specific payload for a new entry.
type ItemCreateRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

// ItemUpdateRequest replaces the category-specific payload of an entry.
type ItemUpdateRequest struct {
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

// SubmissionItemResponse is returned to API clients when viewing entries.
type SubmissionItemResponse struct {
	ID         uint                   `json:"id"`
	Category   string                 `json:"category"`
	OwnerID    uint                   `json:"owner_id"`
	Fields     map[string]interface{} `json:"fields"`
	Status     string                 `json:"status"`
	Feedback   string                 `json:"feedback,omitempty"`
	ReviewedBy *uint                  `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time             `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// StudentProfileResponse is the student's full portfolio record.
type StudentProfileResponse struct {
	ID                 uint                                `json:"id"`
	Name               string                              `json:"name"`
	Email              string                              `json:"email"`
	Points             int                                 `json:"points"`
	FacultyID          uint                                `json:"faculty_id"`
	MustChangePassword bool                                `json:"must_change_password"`
	Sections           map[string][]SubmissionItemResponse `json:"sections"`
}

// NewSubmissionItemResponse converts a SubmissionItem model into a DTO.
func NewSubmissionItemResponse(model models.SubmissionItem) SubmissionItemResponse {
	fields := map[string]interface{}{}
	if len(model.Fields) > 0 {
		// Fields was schema-validated on the way in; a decode failure here
		// means corrupted storage, surfaced as an empty payload.
		_ = json.Unmarshal(model.Fields, &fields)
	}

	return SubmissionItemResponse{
		ID:         model.ID,
		Category:   model.Category.String(),
		OwnerID:    model.OwnerID,
		Fields:     fields,
		Status:     model.Status,
		Feedback:   model.Feedback,
		ReviewedBy: model.ReviewedBy,
		ReviewedAt: model.ReviewedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

// NewStudentProfileResponse assembles the profile DTO with one section per
// category, empty sections included.
func NewStudentProfileResponse(student models.Student, items []models.SubmissionItem) StudentProfileResponse {
	sections := make(map[string][]SubmissionItemResponse, len(models.Categories()))
	for _, category := range models.Categories() {
		sections[category.String()] = []SubmissionItemResponse{}
	}

	for _, item := range items {
		key := item.Category.String()
		sections[key] = append(sections[key], NewSubmissionItemResponse(item))
	}

	return StudentProfileResponse{
		ID:                 student.ID,
		Name:               student.Name,
		Email:              student.Email,
		Points:             student.Points,
		FacultyID:          student.FacultyID,
		MustChangePassword: student.MustChangePassword,
		Sections:           sections,
	}
}
