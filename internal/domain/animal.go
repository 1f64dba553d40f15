package domain

// AnimalCategory enumerates taxonomy groups.
type AnimalCategory string

const (
	CategoryMammal    AnimalCategory = "MAMMAL"
	CategoryBird      AnimalCategory = "BIRD"
	CategoryReptile   AnimalCategory = "REPTILE"
	CategoryAmphibian AnimalCategory = "AMPHIBIAN"
	CategoryFish      AnimalCategory = "FISH"
	CategoryInsect    AnimalCategory = "INSECT"
)

// Animal belongs to at most one caretaker user and one enclosure.
type Animal struct {
	ID          int64
	Name        string
	Category    AnimalCategory
	Weight      float64
	UserID      *int64
	EnclosureID *int64
}
