package dto

// ReviewRequest is the single mutation point faculty use to change an
// entry's status and attach feedback. Section carries the category name.
// ExpectedStatus, when set, makes the write conditional on the status the
// reviewer last saw.
type ReviewRequest struct {
	StudentID      uint   `json:"studentId" validate:"required,gt=0"`
	Section        string `json:"section" validate:"required"`
	ItemID         uint   `json:"itemId" validate:"required,gt=0"`
	Status         string `json:"status" validate:"required,oneof=approved rejected"`
	Feedback       string `json:"feedback"`
	ExpectedStatus string `json:"expectedStatus" validate:"omitempty,oneof=pending approved rejected resubmitted"`
}
