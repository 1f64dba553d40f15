package domain

// Enclosure is a habitat maintained by at most one caretaker user.
// Animals reference the enclosure by foreign key.
type Enclosure struct {
	ID          int64
	Name        string
	Area        float64
	Description string
	UserID      *int64
}
