package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"plateful.dev/Plateful/pkg/model"
)

var (
	ErrUserExists   = errors.New("username/email already taken")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidDiet  = errors.New("unknown diet")
)

type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	ImageURL  string
	Diet      model.Diet
	Allergies string
}

// UpdateParams carries profile edits. Nil fields keep their current value.
type UpdateParams struct {
	Username  *string
	Email     *string
	ImageURL  *string
	Diet      *model.Diet
	Allergies string
}

// RegisterUser hashes the password, creates the user and reconciles the
// free-text allergy list, all in one transaction. A duplicate username or
// email rolls the whole thing back and comes out as ErrUserExists.
func (r *Repository) RegisterUser(ctx context.Context, params RegisterParams) (*model.User, error) {
	if params.Diet == "" {
		params.Diet = model.DietNone
	}

	if !params.Diet.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDiet, params.Diet)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	imageURL := params.ImageURL
	if imageURL == "" {
		imageURL = model.DefaultImageURL
	}

	user := model.User{
		UUID:     uuid.New(),
		Username: params.Username,
		Email:    params.Email,
		Password: string(hashed),
		ImageURL: imageURL,
		Diet:     params.Diet,
	}

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}

		return setAllergies(tx, &user, params.Allergies)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}

		return nil, err
	}

	return &user, nil
}

// UpdateUser applies profile edits and re-reconciles the allergy list. Blank
// scalar fields keep their current value, matching the edit form behaviour.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User, params UpdateParams) error {
	if params.Username != nil {
		user.Username = *params.Username
	}

	if params.Email != nil {
		user.Email = *params.Email
	}

	if params.ImageURL != nil {
		user.ImageURL = *params.ImageURL
	}

	if params.Diet != nil {
		if !params.Diet.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidDiet, *params.Diet)
		}

		user.Diet = *params.Diet
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"username":  user.Username,
				"email":     user.Email,
				"image_url": user.ImageURL,
				"diet":      user.Diet,
			})
		if result.Error != nil {
			return result.Error
		}

		return setAllergies(tx, user, params.Allergies)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}

		return err
	}

	return nil
}

func (r *Repository) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	var user *model.User

	result := r.DB.WithContext(ctx).
		Preload("Allergies").
		Preload("Favorites").
		Preload("Favorites.Recipe").
		Where("username = ?", username).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return user, nil
}

func (r *Repository) GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*model.User, error) {
	var user *model.User

	result := r.DB.WithContext(ctx).
		Preload("Allergies").
		Preload("Favorites").
		Preload("Favorites.Recipe").
		Where("uuid = ?", userUUID).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return user, nil
}

// DeleteUser removes the user together with its allergy and favorite rows.
// The cascade is spelled out here rather than left to the schema; shared
// ingredient and recipe rows stay behind.
func (r *Repository) DeleteUser(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Exec(`DELETE FROM allergies WHERE user_id = ?`, user.ID); result.Error != nil {
			return result.Error
		}

		if result := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&model.Favorite{}); result.Error != nil {
			return result.Error
		}

		return tx.Delete(&model.User{}, user.ID).Error
	})
}
