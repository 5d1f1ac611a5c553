package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plateful.dev/Plateful/pkg/model"
)

// ResolveIngredient returns the ingredient with the given name, creating it on
// first reference. A concurrent create of the same name lands on the unique
// index; the conflict is swallowed and the existing row is loaded instead.
func (r *Repository) ResolveIngredient(ctx context.Context, name string) (*model.Ingredient, error) {
	return resolveIngredient(r.DB.WithContext(ctx), name)
}

func resolveIngredient(tx *gorm.DB, name string) (*model.Ingredient, error) {
	ingredient := model.Ingredient{Name: name}
	if result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ingredient); result.Error != nil {
		return nil, result.Error
	}

	if ingredient.ID == 0 {
		if result := tx.Where("name = ?", name).First(&ingredient); result.Error != nil {
			return nil, result.Error
		}
	}

	return &ingredient, nil
}
