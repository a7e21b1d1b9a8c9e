package entity

// ProductType categoría simple de producto. Name es único.
type ProductType struct {
	ID   string
	Name string
}
