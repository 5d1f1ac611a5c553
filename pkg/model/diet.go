package model

// Diet is the fixed set of dietary classifications a user can pick from. The
// values match what the recipe search API accepts as its diet parameter.
type Diet string

const (
	DietNone            Diet = "none"
	DietVegetarian      Diet = "vegetarian"
	DietLactoVegetarian Diet = "lacto_vegetarian"
	DietOvoVegetarian   Diet = "ovo_vegetarian"
	DietVegan           Diet = "vegan"
	DietPescetarian     Diet = "pescetarian"
	DietPaleo           Diet = "paleo"
	DietLowFodmap       Diet = "low_fodmap"
	DietWhole30         Diet = "whole30"
)

var diets = map[Diet]struct{}{
	DietNone:            {},
	DietVegetarian:      {},
	DietLactoVegetarian: {},
	DietOvoVegetarian:   {},
	DietVegan:           {},
	DietPescetarian:     {},
	DietPaleo:           {},
	DietLowFodmap:       {},
	DietWhole30:         {},
}

func (d Diet) Valid() bool {
	_, found := diets[d]

	return found
}
