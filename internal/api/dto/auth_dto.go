package dto

import "github.com/luca-defeo/progetto-zoo/internal/domain"

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse reports the outcome; User is present only on success.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserSummary `json:"user,omitempty"`
}

// UserSummary is the login-time view of the caller.
type UserSummary struct {
	ID           int64                `json:"id"`
	Username     string               `json:"username"`
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	Role         domain.Role          `json:"role"`
	OperatorType *domain.OperatorType `json:"operatorType"`
}
