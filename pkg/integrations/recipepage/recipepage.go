// Package recipepage scrapes schema.org Recipe metadata from a recipe's own
// web page, to fill in the local stub for an externally sourced recipe.
package recipepage

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"plateful.dev/Plateful/pkg/model"
)

var ErrNoRecipe = errors.New("no recipe metadata found on page")

type Importer struct {
	logger *zap.Logger
}

func NewImporter(logger *zap.Logger) *Importer {
	return &Importer{logger: logger}
}

// recipeJSON matches the parts of a schema.org Recipe node we care about.
// Image shows up as a string, a list or an ImageObject depending on the site.
type recipeJSON struct {
	Type             json.RawMessage `json:"@type"`
	Graph            []recipeJSON    `json:"@graph"`
	Name             string          `json:"name"`
	Image            json.RawMessage `json:"image"`
	RecipeIngredient []string        `json:"recipeIngredient"`
}

// Import fetches the page and extracts the recipe's title, image and
// ingredient list from its JSON-LD. Ingredient lines are reduced to their
// lowercase words so they line up with the ingredient registry.
func (i *Importer) Import(pageURL string, externalID int64) (*model.Recipe, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Hostname()),
		colly.UserAgent("Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"),
	)

	var (
		errs    error
		scraped *recipeJSON
	)

	collector.OnHTML(`script[type="application/ld+json"]`, func(element *colly.HTMLElement) {
		if scraped != nil {
			return
		}

		var node recipeJSON

		err := json.Unmarshal([]byte(element.Text), &node)
		if multierr.AppendInto(&errs, err) {
			i.logger.Warn("failed to parse JSON-LD block", zap.Error(err))

			return
		}

		if recipe := findRecipeNode(node); recipe != nil {
			i.logger.Info("found recipe metadata", zap.String("name", recipe.Name))
			scraped = recipe
		}
	})

	collector.OnError(func(response *colly.Response, err error) {
		i.logger.Error("error fetching recipe page", zap.String("url", response.Request.URL.String()), zap.Error(err))
		multierr.AppendInto(&errs, err)
	})

	multierr.AppendInto(&errs, collector.Visit(pageURL))
	collector.Wait()

	if scraped == nil {
		if errs != nil {
			return nil, errs
		}

		return nil, ErrNoRecipe
	}

	recipe := model.Recipe{
		ExternalID: externalID,
		Title:      scraped.Name,
		ImageURL:   imageURL(scraped.Image),
		SourceURL:  pageURL,
	}

	seen := make(map[string]struct{})

	for _, line := range scraped.RecipeIngredient {
		name := NormalizeIngredient(line)
		if name == "" {
			continue
		}

		if _, found := seen[name]; found {
			continue
		}

		seen[name] = struct{}{}
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{Name: name})
	}

	return &recipe, nil
}

func findRecipeNode(node recipeJSON) *recipeJSON {
	if isRecipeType(node.Type) {
		return &node
	}

	for index := range node.Graph {
		if found := findRecipeNode(node.Graph[index]); found != nil {
			return found
		}
	}

	return nil
}

// isRecipeType handles both `"@type": "Recipe"` and `"@type": ["Recipe", ...]`.
func isRecipeType(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single == "Recipe"
	}

	var multiple []string
	if err := json.Unmarshal(raw, &multiple); err == nil {
		for _, value := range multiple {
			if value == "Recipe" {
				return true
			}
		}
	}

	return false
}

func imageURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var multiple []string
	if err := json.Unmarshal(raw, &multiple); err == nil && len(multiple) > 0 {
		return multiple[0]
	}

	var object struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &object); err == nil {
		return object.URL
	}

	return ""
}

// NormalizeIngredient reduces an ingredient line like "2 cups All-Purpose
// Flour" to "cups all purpose flour": lowercase words, everything that is not
// a letter treated as a separator.
func NormalizeIngredient(line string) string {
	var (
		words   []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.ToLower(line) {
		if r >= 'a' && r <= 'z' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}

	flush()

	return strings.Join(words, " ")
}
