package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plateful.dev/Plateful/pkg/model"
)

var ErrFavoriteNotFound = errors.New("recipe not saved by user")

// SaveRecipe records that the user saved the externally sourced recipe. The
// local stub is created on first reference; saving the same recipe twice is a
// no-op thanks to the unique index on (user, recipe).
func (r *Repository) SaveRecipe(ctx context.Context, user *model.User, externalID int64) (*model.Favorite, error) {
	var favorite model.Favorite

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := resolveRecipe(tx, externalID)
		if err != nil {
			return err
		}

		favorite = model.Favorite{UserID: user.ID, RecipeID: recipe.ID}
		if result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite); result.Error != nil {
			return result.Error
		}

		if favorite.ID == 0 {
			result := tx.Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).First(&favorite)
			if result.Error != nil {
				return result.Error
			}
		}

		favorite.Recipe = *recipe

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &favorite, nil
}

// RemoveRecipe deletes the user's favorite for the given external recipe id.
// The shared recipe stub stays behind for other users' favorites.
func (r *Repository) RemoveRecipe(ctx context.Context, user *model.User, externalID int64) error {
	recipe, err := r.getRecipeByExternalID(ctx, externalID)
	if err != nil {
		return err
	}

	result := r.DB.WithContext(ctx).Unscoped().
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ToggleCart flips the shopping-cart flag on an existing favorite and returns
// the new state. A recipe has to be saved before it can be carted.
func (r *Repository) ToggleCart(ctx context.Context, user *model.User, externalID int64) (bool, error) {
	recipe, err := r.getRecipeByExternalID(ctx, externalID)
	if err != nil {
		return false, err
	}

	var favorite model.Favorite

	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).
		First(&favorite)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, ErrFavoriteNotFound
		}

		return false, result.Error
	}

	newState := !favorite.InShoppingCart

	result = r.DB.WithContext(ctx).Model(&model.Favorite{}).Where("id = ?", favorite.ID).
		Update("in_shopping_cart", newState)
	if result.Error != nil {
		return false, result.Error
	}

	return newState, nil
}

// GetFavorites lists the user's saved recipes in save order.
func (r *Repository) GetFavorites(ctx context.Context, user *model.User) ([]*model.Favorite, error) {
	var favorites []*model.Favorite

	result := r.DB.WithContext(ctx).
		Joins("Recipe").
		Where("favorites.user_id = ?", user.ID).
		Order("favorites.created_at").
		Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}

	return favorites, nil
}

// GetShoppingCart lists the saved recipes the user has flagged for the active
// shopping cart.
func (r *Repository) GetShoppingCart(ctx context.Context, user *model.User) ([]*model.Favorite, error) {
	var favorites []*model.Favorite

	result := r.DB.WithContext(ctx).
		Joins("Recipe").
		Where("favorites.user_id = ? AND favorites.in_shopping_cart = ?", user.ID, true).
		Order("favorites.created_at").
		Find(&favorites)
	if result.Error != nil {
		return nil, result.Error
	}

	return favorites, nil
}

func (r *Repository) getRecipeByExternalID(ctx context.Context, externalID int64) (*model.Recipe, error) {
	var recipe model.Recipe

	result := r.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&recipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFavoriteNotFound
		}

		return nil, result.Error
	}

	return &recipe, nil
}
