package model

import "gorm.io/gorm"

// Recipe is a local stub for a recipe owned by the external search API. The
// external id is the identity; title and image are filled in opportunistically
// when the page importer has seen the recipe.
type Recipe struct {
	gorm.Model
	ExternalID  int64 `gorm:"uniqueIndex"`
	Title       string
	ImageURL    string
	SourceURL   string
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;"`
}

// Favorite records that a user saved a recipe. The shopping-cart flag lives on
// the association, not the recipe, so the same recipe can sit in one user's
// cart and not another's.
type Favorite struct {
	gorm.Model
	UserID         uint `gorm:"uniqueIndex:idx_favorite_unique"`
	RecipeID       uint `gorm:"uniqueIndex:idx_favorite_unique"`
	InShoppingCart bool `gorm:"default:false"`

	Recipe Recipe `gorm:"foreignKey:RecipeID"`
}
