package model

import "gorm.io/gorm"

// Ingredient carries nothing but its name. Rows are created the first time a
// name is referenced by an allergy list or an imported recipe and are never
// mutated afterwards; orphaned rows are left in place.
type Ingredient struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}
