package repository

import (
	"context"

	"gorm.io/gorm"

	"plateful.dev/Plateful/pkg/allergy"
	"plateful.dev/Plateful/pkg/model"
)

// SetAllergies replaces the user's allergy set with the ingredients named in
// the free-text input. The join rows and the derived dietary_restrictions
// column are rewritten together; calling it twice leaves only the second
// input's entries. Empty input clears everything.
func (r *Repository) SetAllergies(ctx context.Context, user *model.User, freeText string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return setAllergies(tx, user, freeText)
	})
}

func setAllergies(tx *gorm.DB, user *model.User, freeText string) error {
	if result := tx.Exec(`DELETE FROM allergies WHERE user_id = ?`, user.ID); result.Error != nil {
		return result.Error
	}

	names := allergy.Tokenize(freeText)
	ingredients := make([]model.Ingredient, 0, len(names))

	for _, name := range names {
		ingredient, err := resolveIngredient(tx, name)
		if err != nil {
			return err
		}

		result := tx.Exec(`INSERT INTO allergies (user_id, ingredient_id) VALUES (?, ?)`, user.ID, ingredient.ID)
		if result.Error != nil {
			return result.Error
		}

		ingredients = append(ingredients, *ingredient)
	}

	restrictions := allergy.Restrictions(names)

	result := tx.Model(&model.User{}).Where("id = ?", user.ID).
		Update("dietary_restrictions", restrictions)
	if result.Error != nil {
		return result.Error
	}

	user.Allergies = ingredients
	user.DietaryRestrictions = restrictions

	return nil
}
