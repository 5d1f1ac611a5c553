package integrations

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/integrations/spoonacular"
)

// ErrUpstream marks a failure talking to the third-party recipe source. The
// web layer turns it into a transient-failure response instead of crashing.
var ErrUpstream = spoonacular.ErrUpstream

// RecipeSummary is one search or random result.
type RecipeSummary = spoonacular.RecipeSummary

// RecipeInformation is the detailed view of a single recipe.
type RecipeInformation = spoonacular.RecipeInformation

// SearchQuery carries the user's search parameters.
type SearchQuery = spoonacular.SearchQuery

type Integration interface {
	Random(ctx context.Context, number int) ([]RecipeSummary, error)
	Search(ctx context.Context, query SearchQuery) ([]RecipeSummary, error)
	Information(ctx context.Context, recipeID int64) (*RecipeInformation, error)
	InformationBulk(ctx context.Context, recipeIDs []int64) ([]RecipeInformation, error)
}

var ErrUnknownIntegration = errors.New("unknown recipe integration")

func GetIntegration(name string, conf *configs.Config, logger *zap.Logger) (Integration, error) {
	if name == spoonacular.IntegrationName {
		return spoonacular.New(conf, logger), nil
	}

	return nil, ErrUnknownIntegration
}
