package dto

// EnclosureRequest is the enclosure create/update payload. Animals lists the
// ids housed here after the operation.
type EnclosureRequest struct {
	Name        string  `json:"name"`
	Area        float64 `json:"area"`
	Description string  `json:"description"`
	User        int64   `json:"user"`
	Animals     []int64 `json:"animals,omitempty"`
}

// EnclosureResponse carries the resident animals resolved to full records.
type EnclosureResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Area        float64          `json:"area"`
	Description string           `json:"description"`
	User        *int64           `json:"user"`
	Animals     []AnimalResponse `json:"animals"`
}
