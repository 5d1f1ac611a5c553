package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/integrations"
	"plateful.dev/Plateful/pkg/model"
	"plateful.dev/Plateful/pkg/repository"
)

type userRepository interface {
	RegisterUser(ctx context.Context, params repository.RegisterParams) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User, params repository.UpdateParams) error
	DeleteUser(ctx context.Context, user *model.User) error
}

type favoriteRepository interface {
	SaveRecipe(ctx context.Context, user *model.User, externalID int64) (*model.Favorite, error)
	RemoveRecipe(ctx context.Context, user *model.User, externalID int64) error
	ToggleCart(ctx context.Context, user *model.User, externalID int64) (bool, error)
	GetFavorites(ctx context.Context, user *model.User) ([]*model.Favorite, error)
	GetShoppingCart(ctx context.Context, user *model.User) ([]*model.Favorite, error)
}

type recipeRepository interface {
	SaveImportedRecipe(ctx context.Context, imported *model.Recipe) (*model.Recipe, error)
}

type authManager interface {
	Authenticate(ctx context.Context, username string, password string) (*model.User, error)
	IssueToken(user *model.User) (string, error)
	Middleware() gin.HandlerFunc
}

type recipeImporter interface {
	Import(pageURL string, externalID int64) (*model.Recipe, error)
}

type shoppingListMailer interface {
	SendShoppingList(ctx context.Context, user *model.User, recipes []integrations.RecipeInformation) error
}

// Store is the slice of the repository the web layer depends on.
type Store interface {
	userRepository
	favoriteRepository
	recipeRepository
}

type Server struct {
	conf        *configs.Config
	logger      *zap.Logger
	users       userRepository
	favorites   favoriteRepository
	recipes     recipeRepository
	auth        authManager
	integration integrations.Integration
	importer    recipeImporter
	mailer      shoppingListMailer
}

func New(conf *configs.Config, store Store, auth authManager,
	integration integrations.Integration, importer recipeImporter,
	mailer shoppingListMailer, logger *zap.Logger,
) *Server {
	return &Server{
		conf:        conf,
		logger:      logger,
		users:       store,
		favorites:   store,
		recipes:     store,
		auth:        auth,
		integration: integration,
		importer:    importer,
		mailer:      mailer,
	}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())

	authGroup := router.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)

	recipes := router.Group("/recipes")
	recipes.GET("/random", s.randomRecipes)
	recipes.GET("/search", s.searchRecipes)
	recipes.GET("/information/:id", s.recipeInformation)
	recipes.POST("/info", s.bulkRecipeInformation)
	recipes.POST("/import/:id", s.auth.Middleware(), s.importRecipe)

	users := router.Group("/users/current", s.auth.Middleware())
	users.GET("", s.currentUser)
	users.PATCH("", s.updateUser)
	users.DELETE("", s.deleteUser)
	users.GET("/recipes", s.savedRecipes)
	users.POST("/recipes", s.saveRecipe)
	users.DELETE("/recipes/:id", s.removeRecipe)
	users.GET("/cart", s.shoppingCart)
	users.PATCH("/cart/:id", s.toggleCart)
	users.POST("/cart/email", s.emailShoppingList)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")

	return cors.New(config)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
