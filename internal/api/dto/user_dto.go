package dto

import "github.com/luca-defeo/progetto-zoo/internal/domain"

// UserRequest is the user create/update payload. Animals and enclosures list
// the ids this user should own after the operation.
type UserRequest struct {
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	Username     string               `json:"username"`
	Password     string               `json:"password,omitempty"`
	Role         domain.Role          `json:"role"`
	OperatorType *domain.OperatorType `json:"operatorType,omitempty"`
	Animals      []int64              `json:"animals,omitempty"`
	Enclosures   []int64              `json:"enclosures,omitempty"`
}

// UserResponse never carries the credential hash.
type UserResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	Username     string               `json:"username"`
	Role         domain.Role          `json:"role"`
	OperatorType *domain.OperatorType `json:"operatorType"`
	Animals      []AnimalResponse     `json:"animals"`
}
