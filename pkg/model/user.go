package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultImageURL is used for users who register without a profile picture.
const DefaultImageURL = "/static/images/default-pic.png"

type User struct {
	gorm.Model
	UUID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	Username string    `gorm:"uniqueIndex"`
	Email    string    `gorm:"uniqueIndex"`
	Password string
	ImageURL string
	Diet     Diet

	// DietaryRestrictions caches the comma-joined names of the user's allergy
	// ingredients. It is rewritten whenever the allergy set changes and must
	// never be edited on its own.
	DietaryRestrictions string

	Allergies []Ingredient `gorm:"many2many:allergies;"`
	Favorites []Favorite
}

// SerializedUser is the wire form of a user handed to the web layer.
type SerializedUser struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	Username            string   `json:"username"`
	ImageURL            string   `json:"image_url"`
	Diet                Diet     `json:"diet"`
	DietaryRestrictions string   `json:"dietary_restrictions"`
	RecipeIDs           []int64  `json:"recipe_ids"`
	AllergyIDs          []string `json:"allergy_ids"`
}

func (u *User) Serialize() SerializedUser {
	serialized := SerializedUser{
		ID:                  u.UUID.String(),
		Email:               u.Email,
		Username:            u.Username,
		ImageURL:            u.ImageURL,
		Diet:                u.Diet,
		DietaryRestrictions: u.DietaryRestrictions,
		RecipeIDs:           make([]int64, 0, len(u.Favorites)),
		AllergyIDs:          make([]string, 0, len(u.Allergies)),
	}

	for _, favorite := range u.Favorites {
		serialized.RecipeIDs = append(serialized.RecipeIDs, favorite.Recipe.ExternalID)
	}

	for _, ingredient := range u.Allergies {
		serialized.AllergyIDs = append(serialized.AllergyIDs, ingredient.Name)
	}

	return serialized
}
