package dto

import "github.com/enlivotechnologies/leads-tracker/internal/model"

// ── auth module DTOs ──

// RegisterRequest creates a login account.
type RegisterRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Email      string `json:"email"       binding:"required,email"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is returned on login and refresh.
type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int              `json:"expires_in"`
	Employee     EmployeeResponse `json:"employee"`
}

// EmployeeResponse is the public view of an Employee.
type EmployeeResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// NewEmployeeResponse maps a model.Employee to its public view.
func NewEmployeeResponse(e *model.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		UserID:   e.UserID,
		Email:    e.Email,
		Name:     e.Name,
		Role:     e.Role,
		IsActive: e.IsActive,
	}
}
