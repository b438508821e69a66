package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionItem represents one portfolio entry owned by a student within a
// fixed category. Fields carries the category-specific payload and stays
// opaque to the lifecycle rules.
type SubmissionItem struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Category   Category       `gorm:"size:64;not null;index:idx_submission_owner_category" json:"category"`
	OwnerID    uint           `gorm:"not null;index:idx_submission_owner_category" json:"owner_id"`
	Fields     datatypes.JSON `gorm:"not null" json:"fields"`
	Status     string         `gorm:"size:32;not null;default:pending" json:"status"`
	Feedback   string         `gorm:"type:text" json:"feedback"`
	ReviewedBy *uint          `json:"reviewed_by"`
	ReviewedAt *time.Time     `json:"reviewed_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Owner      Student        `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

const (
	// SubmissionStatusPending marks an entry awaiting its first review.
	SubmissionStatusPending = "pending"
	// SubmissionStatusApproved marks an entry that scored a point.
	SubmissionStatusApproved = "approved"
	// SubmissionStatusRejected marks an entry returned with reviewer feedback.
	SubmissionStatusRejected = "rejected"
	// SubmissionStatusResubmitted marks a rejected entry the student has
	// explicitly sent back for another review.
	SubmissionStatusResubmitted = "resubmitted"
)

// SubmissionStatuses lists every reachable lifecycle status.
func SubmissionStatuses() []string {
	return []string{
		SubmissionStatusPending,
		SubmissionStatusApproved,
		SubmissionStatusRejected,
		SubmissionStatusResubmitted,
	}
}

// IsApproved reports whether the entry currently counts toward points.
func (s SubmissionItem) IsApproved() bool {
	return s.Status == SubmissionStatusApproved
}

// IsReviewed reports whether the entry carries a completed review decision.
// Pending and resubmitted entries may retain prior feedback for display, but
// that feedback does not imply a finished review.
func (s SubmissionItem) IsReviewed() bool {
	return s.Status == SubmissionStatusApproved || s.Status == SubmissionStatusRejected
}
