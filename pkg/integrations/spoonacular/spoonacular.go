package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
)

const IntegrationName = "spoonacular"

var ErrUpstream = errors.New("recipe source unavailable")

// tagPattern strips the HTML markup the API embeds in summaries and
// instructions.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

type RecipeSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image"`
}

type RecipeInformation struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	ImageURL       string   `json:"image"`
	SourceURL      string   `json:"sourceUrl"`
	ReadyInMinutes int      `json:"readyInMinutes"`
	Summary        string   `json:"summary"`
	Instructions   string   `json:"instructions"`
	Ingredients    []string `json:"ingredients"`
}

type SearchQuery struct {
	IncludeIngredients string
	ExcludeIngredients string
	Diet               string
	Number             int
}

type Client struct {
	client *resty.Client
	logger *zap.Logger
}

func New(conf *configs.Config, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(conf.Spoonacular.BaseURL).
		SetTimeout(time.Duration(conf.Spoonacular.Timeout) * time.Second).
		SetQueryParam("apiKey", conf.Spoonacular.APIKey)

	return &Client{client: client, logger: logger}
}

func (c *Client) Random(ctx context.Context, number int) ([]RecipeSummary, error) {
	var result struct {
		Recipes []RecipeSummary `json:"recipes"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("number", strconv.Itoa(number)).
		SetResult(&result).
		Get("/recipes/random")
	if err := c.upstreamError(resp, err, "random"); err != nil {
		return nil, err
	}

	return result.Recipes, nil
}

func (c *Client) Search(ctx context.Context, query SearchQuery) ([]RecipeSummary, error) {
	var result struct {
		Results []RecipeSummary `json:"results"`
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"includeIngredients": query.IncludeIngredients,
			"excludeIngredients": query.ExcludeIngredients,
			"diet":               query.Diet,
			"number":             strconv.Itoa(query.Number),
		}).
		SetResult(&result).
		Get("/recipes/complexSearch")
	if err := c.upstreamError(resp, err, "search"); err != nil {
		return nil, err
	}

	return result.Results, nil
}

func (c *Client) Information(ctx context.Context, recipeID int64) (*RecipeInformation, error) {
	var result informationJSON

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/recipes/%d/information", recipeID))
	if err := c.upstreamError(resp, err, "information"); err != nil {
		return nil, err
	}

	information := result.toInformation()

	return &information, nil
}

func (c *Client) InformationBulk(ctx context.Context, recipeIDs []int64) ([]RecipeInformation, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	var results []informationJSON

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetResult(&results).
		Get("/recipes/informationBulk")
	if err := c.upstreamError(resp, err, "informationBulk"); err != nil {
		return nil, err
	}

	information := make([]RecipeInformation, 0, len(results))
	for _, result := range results {
		information = append(information, result.toInformation())
	}

	return information, nil
}

type informationJSON struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title"`
	Image               string `json:"image"`
	SourceURL           string `json:"sourceUrl"`
	ReadyInMinutes      int    `json:"readyInMinutes"`
	Summary             string `json:"summary"`
	Instructions        string `json:"instructions"`
	ExtendedIngredients []struct {
		Original string `json:"original"`
	} `json:"extendedIngredients"`
}

func (i informationJSON) toInformation() RecipeInformation {
	information := RecipeInformation{
		ID:             i.ID,
		Title:          i.Title,
		ImageURL:       i.Image,
		SourceURL:      i.SourceURL,
		ReadyInMinutes: i.ReadyInMinutes,
		Summary:        StripTags(i.Summary),
		Instructions:   StripTags(i.Instructions),
	}

	for _, ingredient := range i.ExtendedIngredients {
		information.Ingredients = append(information.Ingredients, ingredient.Original)
	}

	return information
}

// StripTags removes HTML markup from API-provided rich text.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

func (c *Client) upstreamError(resp *resty.Response, err error, operation string) error {
	if err != nil {
		c.logger.Error("recipe API request failed", zap.String("operation", operation), zap.Error(err))

		return fmt.Errorf("%w: %s", ErrUpstream, operation)
	}

	if resp.IsError() {
		c.logger.Error("recipe API returned error status",
			zap.String("operation", operation), zap.Int("status", resp.StatusCode()))

		return fmt.Errorf("%w: %s returned %d", ErrUpstream, operation, resp.StatusCode())
	}

	return nil
}
