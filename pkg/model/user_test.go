package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"plateful.dev/Plateful/pkg/model"
)

func TestSerialize(t *testing.T) {
	userUUID := uuid.New()
	user := model.User{
		UUID:                userUUID,
		Username:            "alice",
		Email:               "alice@example.com",
		ImageURL:            model.DefaultImageURL,
		Diet:                model.DietVegan,
		DietaryRestrictions: "peanuts, tree, nuts",
		Allergies: []model.Ingredient{
			{Name: "peanuts"}, {Name: "tree"}, {Name: "nuts"},
		},
		Favorites: []model.Favorite{
			{Recipe: model.Recipe{ExternalID: 654959}},
			{Recipe: model.Recipe{ExternalID: 716429}},
		},
	}

	serialized := user.Serialize()

	assert.Equal(t, userUUID.String(), serialized.ID)
	assert.Equal(t, "alice", serialized.Username)
	assert.Equal(t, model.DietVegan, serialized.Diet)
	assert.Equal(t, []int64{654959, 716429}, serialized.RecipeIDs)
	assert.Equal(t, []string{"peanuts", "tree", "nuts"}, serialized.AllergyIDs)
}

func TestDietValid(t *testing.T) {
	assert.True(t, model.DietNone.Valid())
	assert.True(t, model.DietLactoVegetarian.Valid())
	assert.False(t, model.Diet("carnivore").Valid())
}
