package dto

import "github.com/tndevelopers2024/scribe-api/internal/models"

// StudentSummaryResponse is one row in a faculty's assigned-students view.
type StudentSummaryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Points       int    `json:"points"`
	TotalItems   int    `json:"total_items"`
	PendingTotal int64  `json:"pending_total"`
}

// FacultySummaryResponse is one row in a lead faculty's roster view.
type FacultySummaryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	College      string `json:"college"`
	StudentCount int    `json:"student_count"`
}

// StudentRecordResponse is the faculty-facing view of one student: the full
// portfolio plus the per-category pending counts used for review badges.
type StudentRecordResponse struct {
	Profile       StudentProfileResponse `json:"profile"`
	PendingCounts map[string]int64       `json:"pendingCounts"`
}

// NewStudentSummaryResponse builds a roster row from the student record and
// their entries.
func NewStudentSummaryResponse(student models.Student, items []models.SubmissionItem) StudentSummaryResponse {
	var pending int64
	for _, item := range items {
		// Resubmitted entries await a fresh decision and count as pending
		// work for the reviewer.
		if item.Status == models.SubmissionStatusPending || item.Status == models.SubmissionStatusResubmitted {
			pending++
		}
	}

	return StudentSummaryResponse{
		ID:           student.ID,
		Name:         student.Name,
		Email:        student.Email,
		Points:       student.Points,
		TotalItems:   len(items),
		PendingTotal: pending,
	}
}

// NewFacultySummaryResponse builds a roster row for a lead faculty view.
func NewFacultySummaryResponse(faculty models.Faculty, studentCount int) FacultySummaryResponse {
	return FacultySummaryResponse{
		ID:           faculty.ID,
		Name:         faculty.Name,
		Email:        faculty.Email,
		College:      faculty.College,
		StudentCount: studentCount,
	}
}
