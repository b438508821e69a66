package models

import "time"

// Faculty role values. A lead faculty oversees the faculty members assigned
// to them within a college, and transitively their students.
const (
	RoleStudent     = "student"
	RoleFaculty     = "faculty"
	RoleLeadFaculty = "lead_faculty"
)

// Faculty represents a reviewer. LeadID links a regular faculty member to the
// lead faculty responsible for them; it is nil for leads themselves.
type Faculty struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:true" json:"must_change_password"`
	Role               string    `gorm:"size:32;not null;default:faculty" json:"role"`
	College            string    `gorm:"size:255" json:"college"`
	LeadID             *uint     `gorm:"index" json:"lead_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsLead reports whether this reviewer holds the lead faculty role.
func (f Faculty) IsLead() bool {
	return f.Role == RoleLeadFaculty
}
