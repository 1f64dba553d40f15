package dto

import "github.com/luca-defeo/progetto-zoo/internal/domain"

// AnimalRequest is the animal create/update payload. User and Enclosure are
// mandatory association ids.
type AnimalRequest struct {
	Name      string                `json:"name"`
	Category  domain.AnimalCategory `json:"category"`
	Weight    float64               `json:"weight"`
	User      int64                 `json:"user"`
	Enclosure int64                 `json:"enclosure"`
}

// AnimalResponse mirrors the stored animal.
type AnimalResponse struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	Category  domain.AnimalCategory `json:"category"`
	Weight    float64               `json:"weight"`
	User      *int64                `json:"user"`
	Enclosure *int64                `json:"enclosure"`
}
