package dto

// ── auth requests ──

// LoginRequest email+password credentials.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest revokes the caller's refresh token alongside the access
// token from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"omitempty"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ── auth responses ──

// TokenResponse is the access/refresh token pair.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the sanitized identity record.
type UserResponse struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	EmployeeID         string `json:"employee_id,omitempty"`
	MustChangePassword bool   `json:"must_change_password"`
}

// MeResponse is the current caller with their employee profile.
type MeResponse struct {
	User     UserResponse      `json:"user"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
}
