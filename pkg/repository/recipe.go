package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plateful.dev/Plateful/pkg/model"
)

func resolveRecipe(tx *gorm.DB, externalID int64) (*model.Recipe, error) {
	recipe := model.Recipe{ExternalID: externalID}
	if result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&recipe); result.Error != nil {
		return nil, result.Error
	}

	if recipe.ID == 0 {
		if result := tx.Where("external_id = ?", externalID).First(&recipe); result.Error != nil {
			return nil, result.Error
		}
	}

	return &recipe, nil
}

// SaveImportedRecipe upserts the scraped details for a recipe stub and relinks
// its ingredient rows. Ingredient names go through the same registry the
// allergy reconciler uses.
func (r *Repository) SaveImportedRecipe(ctx context.Context, imported *model.Recipe) (*model.Recipe, error) {
	var saved *model.Recipe

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			UpdateAll: true,
		}).Omit("Ingredients").Create(imported)
		if result.Error != nil {
			return result.Error
		}

		if result := tx.Exec(`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, imported.ID); result.Error != nil {
			return result.Error
		}

		for index := range imported.Ingredients {
			ingredient, err := resolveIngredient(tx, imported.Ingredients[index].Name)
			if err != nil {
				return err
			}

			imported.Ingredients[index] = *ingredient

			result := tx.Exec(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?, ?)`,
				imported.ID, ingredient.ID)
			if result.Error != nil {
				return result.Error
			}
		}

		saved = imported

		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// GetRecipeByExternalID loads a stub together with any imported ingredients.
func (r *Repository) GetRecipeByExternalID(ctx context.Context, externalID int64) (*model.Recipe, error) {
	var recipe model.Recipe

	result := r.DB.WithContext(ctx).
		Preload("Ingredients").
		Where("external_id = ?", externalID).
		First(&recipe)
	if result.Error != nil {
		return nil, result.Error
	}

	return &recipe, nil
}
