package dto

// LoginRequest authenticates a student or faculty member by email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse returns the bearer token and first-login flag.
type LoginResponse struct {
	Token              string `json:"token"`
	UserID             uint   `json:"user_id"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	MustChangePassword bool   `json:"must_change_password"`
}

// ChangePasswordRequest rotates the caller's credential; required on first
// login before any other operation is allowed by the client.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
