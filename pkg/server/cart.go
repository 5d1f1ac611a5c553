package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plateful.dev/Plateful/pkg/auth"
	"plateful.dev/Plateful/pkg/model"
	"plateful.dev/Plateful/pkg/repository"
)

func (s *Server) savedRecipes(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	favorites, err := s.favorites.GetFavorites(c.Request.Context(), user)
	if err != nil {
		s.logger.Error("error getting favorites", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get saved recipes"})

		return
	}

	information, err := s.integration.InformationBulk(c.Request.Context(), recipeIDs(favorites))
	if err != nil {
		s.upstreamFailure(c, "could not get recipes", err)

		return
	}

	c.JSON(http.StatusOK, information)
}

func (s *Server) saveRecipe(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	var request struct {
		RecipeID int64 `binding:"required" json:"recipe_id"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	favorite, err := s.favorites.SaveRecipe(c.Request.Context(), user, request.RecipeID)
	if err != nil {
		s.logger.Error("error saving recipe", zap.Int64("recipe_id", request.RecipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save recipe"})

		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe_id":        favorite.Recipe.ExternalID,
		"in_shopping_cart": favorite.InShoppingCart,
	})
}

func (s *Server) removeRecipe(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	recipeID, ok := pathRecipeID(c)
	if !ok {
		return
	}

	if err := s.favorites.RemoveRecipe(c.Request.Context(), user, recipeID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not saved"})

			return
		}

		s.logger.Error("error removing recipe", zap.Int64("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove recipe"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "deleted"})
}

func (s *Server) toggleCart(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	recipeID, ok := pathRecipeID(c)
	if !ok {
		return
	}

	inCart, err := s.favorites.ToggleCart(c.Request.Context(), user, recipeID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not saved"})

			return
		}

		s.logger.Error("error toggling cart", zap.Int64("recipe_id", recipeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"in_shopping_cart": inCart})
}

func (s *Server) shoppingCart(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	favorites, err := s.favorites.GetShoppingCart(c.Request.Context(), user)
	if err != nil {
		s.logger.Error("error getting shopping cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get shopping cart"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe_ids": recipeIDs(favorites)})
}

func (s *Server) emailShoppingList(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	favorites, err := s.favorites.GetShoppingCart(c.Request.Context(), user)
	if err != nil {
		s.logger.Error("error getting shopping cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get shopping cart"})

		return
	}

	if len(favorites) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shopping cart is empty"})

		return
	}

	information, err := s.integration.InformationBulk(c.Request.Context(), recipeIDs(favorites))
	if err != nil {
		s.upstreamFailure(c, "could not get recipes", err)

		return
	}

	if err := s.mailer.SendShoppingList(c.Request.Context(), user, information); err != nil {
		s.logger.Error("error sending shopping list", zap.String("username", user.Username), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not send shopping list"})

		return
	}

	c.JSON(http.StatusAccepted, gin.H{"result": "sent"})
}

func recipeIDs(favorites []*model.Favorite) []int64 {
	ids := make([]int64, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.Recipe.ExternalID)
	}

	return ids
}
