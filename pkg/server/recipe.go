package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plateful.dev/Plateful/pkg/integrations"
	"plateful.dev/Plateful/pkg/integrations/recipepage"
)

const (
	defaultRandomCount = 16
	defaultSearchCount = 8
)

func (s *Server) randomRecipes(c *gin.Context) {
	number := defaultRandomCount
	if value, err := strconv.Atoi(c.Query("number")); err == nil && value > 0 {
		number = value
	}

	recipes, err := s.integration.Random(c.Request.Context(), number)
	if err != nil {
		s.upstreamFailure(c, "could not get recipes", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (s *Server) searchRecipes(c *gin.Context) {
	query := integrations.SearchQuery{
		IncludeIngredients: c.Query("includeIngredients"),
		ExcludeIngredients: c.Query("excludeIngredients"),
		Diet:               c.Query("diet"),
		Number:             defaultSearchCount,
	}

	if value, err := strconv.Atoi(c.Query("number")); err == nil && value > 0 {
		query.Number = value
	}

	recipes, err := s.integration.Search(c.Request.Context(), query)
	if err != nil {
		s.upstreamFailure(c, "could not get recipes", err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"results": recipes})
}

func (s *Server) recipeInformation(c *gin.Context) {
	recipeID, ok := pathRecipeID(c)
	if !ok {
		return
	}

	information, err := s.integration.Information(c.Request.Context(), recipeID)
	if err != nil {
		s.upstreamFailure(c, "could not get recipe info", err)

		return
	}

	c.JSON(http.StatusOK, information)
}

func (s *Server) bulkRecipeInformation(c *gin.Context) {
	var request struct {
		IDs []int64 `json:"ids"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	information, err := s.integration.InformationBulk(c.Request.Context(), request.IDs)
	if err != nil {
		s.upstreamFailure(c, "could not get recipes info", err)

		return
	}

	c.JSON(http.StatusOK, information)
}

func (s *Server) importRecipe(c *gin.Context) {
	recipeID, ok := pathRecipeID(c)
	if !ok {
		return
	}

	var request struct {
		URL string `binding:"required,url" json:"url"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	imported, err := s.importer.Import(request.URL, recipeID)
	if err != nil {
		if errors.Is(err, recipepage.ErrNoRecipe) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no recipe found at that address"})

			return
		}

		s.logger.Error("error importing recipe page", zap.String("url", request.URL), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not import recipe"})

		return
	}

	saved, err := s.recipes.SaveImportedRecipe(c.Request.Context(), imported)
	if err != nil {
		s.logger.Error("error saving imported recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save recipe"})

		return
	}

	ingredients := make([]string, 0, len(saved.Ingredients))
	for _, ingredient := range saved.Ingredients {
		ingredients = append(ingredients, ingredient.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe_id":   saved.ExternalID,
		"title":       saved.Title,
		"image_url":   saved.ImageURL,
		"source_url":  saved.SourceURL,
		"ingredients": ingredients,
	})
}

func (s *Server) upstreamFailure(c *gin.Context, message string, err error) {
	if errors.Is(err, integrations.ErrUpstream) {
		c.JSON(http.StatusBadGateway, gin.H{"error": message})

		return
	}

	s.logger.Error("unexpected integration error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

func pathRecipeID(c *gin.Context) (int64, bool) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})

		return 0, false
	}

	return recipeID, true
}
