package models

import "time"

// Student represents a portfolio owner. Points is a denormalized cache of the
// approved-entry count, reconciled inside the same transaction as every
// status change.
type Student struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:255;not null" json:"name"`
	Email              string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"size:255;not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:true" json:"must_change_password"`
	Points             int       `gorm:"not null;default:0" json:"points"`
	FacultyID          uint      `gorm:"index" json:"faculty_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
