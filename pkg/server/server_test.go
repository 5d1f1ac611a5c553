package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/auth"
	"plateful.dev/Plateful/pkg/integrations"
	"plateful.dev/Plateful/pkg/model"
	"plateful.dev/Plateful/pkg/repository"
	"plateful.dev/Plateful/pkg/server"
)

type fakeStore struct {
	registerParams *repository.RegisterParams
	registeredUser *model.User
	registerErr    error

	updateParams *repository.UpdateParams
	updateErr    error
	deleteErr    error
	deletedUser  *model.User

	savedFavorite *model.Favorite
	saveErr       error
	savedID       int64
	removeErr     error
	removedID     int64
	toggleState   bool
	toggleErr     error
	toggledID     int64
	favorites     []*model.Favorite
	favoritesErr  error
	cart          []*model.Favorite
	cartErr       error

	importedRecipe *model.Recipe
	importSaveErr  error
}

func (f *fakeStore) RegisterUser(_ context.Context, params repository.RegisterParams) (*model.User, error) {
	f.registerParams = &params

	return f.registeredUser, f.registerErr
}

func (f *fakeStore) UpdateUser(_ context.Context, user *model.User, params repository.UpdateParams) error {
	f.updateParams = &params
	if f.updateErr != nil {
		return f.updateErr
	}

	if params.Username != nil {
		user.Username = *params.Username
	}

	if params.Diet != nil {
		user.Diet = *params.Diet
	}

	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, user *model.User) error {
	f.deletedUser = user

	return f.deleteErr
}

func (f *fakeStore) SaveRecipe(_ context.Context, _ *model.User, externalID int64) (*model.Favorite, error) {
	f.savedID = externalID

	return f.savedFavorite, f.saveErr
}

func (f *fakeStore) RemoveRecipe(_ context.Context, _ *model.User, externalID int64) error {
	f.removedID = externalID

	return f.removeErr
}

func (f *fakeStore) ToggleCart(_ context.Context, _ *model.User, externalID int64) (bool, error) {
	f.toggledID = externalID

	return f.toggleState, f.toggleErr
}

func (f *fakeStore) GetFavorites(_ context.Context, _ *model.User) ([]*model.Favorite, error) {
	return f.favorites, f.favoritesErr
}

func (f *fakeStore) GetShoppingCart(_ context.Context, _ *model.User) ([]*model.Favorite, error) {
	return f.cart, f.cartErr
}

func (f *fakeStore) SaveImportedRecipe(_ context.Context, imported *model.Recipe) (*model.Recipe, error) {
	f.importedRecipe = imported
	if f.importSaveErr != nil {
		return nil, f.importSaveErr
	}

	return imported, nil
}

type fakeAuth struct {
	session     *model.User
	authedUser  *model.User
	authErr     error
	token       string
	tokenErr    error
	lastTokened *model.User
	lastAuthArg string
}

func (f *fakeAuth) Authenticate(_ context.Context, username string, _ string) (*model.User, error) {
	f.lastAuthArg = username

	return f.authedUser, f.authErr
}

func (f *fakeAuth) IssueToken(user *model.User) (string, error) {
	f.lastTokened = user

	return f.token, f.tokenErr
}

func (f *fakeAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if f.session == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		ctx := context.WithValue(c.Request.Context(), auth.UserKey{}, f.session)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

type fakeIntegration struct {
	random      []integrations.RecipeSummary
	results     []integrations.RecipeSummary
	information *integrations.RecipeInformation
	bulk        []integrations.RecipeInformation
	err         error

	lastNumber  int
	lastQuery   integrations.SearchQuery
	lastBulkIDs []int64
}

func (f *fakeIntegration) Random(_ context.Context, number int) ([]integrations.RecipeSummary, error) {
	f.lastNumber = number

	return f.random, f.err
}

func (f *fakeIntegration) Search(_ context.Context, query integrations.SearchQuery) ([]integrations.RecipeSummary, error) {
	f.lastQuery = query

	return f.results, f.err
}

func (f *fakeIntegration) Information(_ context.Context, recipeID int64) (*integrations.RecipeInformation, error) {
	f.lastBulkIDs = []int64{recipeID}

	return f.information, f.err
}

func (f *fakeIntegration) InformationBulk(_ context.Context, recipeIDs []int64) ([]integrations.RecipeInformation, error) {
	f.lastBulkIDs = recipeIDs

	return f.bulk, f.err
}

type fakeImporter struct {
	recipe *model.Recipe
	err    error
	gotURL string
	gotID  int64
}

func (f *fakeImporter) Import(pageURL string, externalID int64) (*model.Recipe, error) {
	f.gotURL = pageURL
	f.gotID = externalID

	return f.recipe, f.err
}

type fakeMailer struct {
	err      error
	sentTo   *model.User
	sentList []integrations.RecipeInformation
}

func (f *fakeMailer) SendShoppingList(_ context.Context, user *model.User, recipes []integrations.RecipeInformation) error {
	f.sentTo = user
	f.sentList = recipes

	return f.err
}

type ServerTestSuite struct {
	suite.Suite
	store        *fakeStore
	authMgr      *fakeAuth
	integration  *fakeIntegration
	importer     *fakeImporter
	mailer       *fakeMailer
	router       *gin.Engine
	observedLogs *observer.ObservedLogs
	user         *model.User
}

func (suite *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.user = &model.User{
		Model:    gorm.Model{ID: 7},
		UUID:     uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		ImageURL: model.DefaultImageURL,
		Diet:     model.DietVegan,
	}

	suite.store = &fakeStore{}
	suite.authMgr = &fakeAuth{token: "test-token"}
	suite.integration = &fakeIntegration{}
	suite.importer = &fakeImporter{}
	suite.mailer = &fakeMailer{}

	observedZapCore, observedLogs := observer.New(zap.InfoLevel)
	suite.observedLogs = observedLogs

	service := server.New(&configs.Config{}, suite.store, suite.authMgr,
		suite.integration, suite.importer, suite.mailer, zap.New(observedZapCore))
	suite.router = service.Router()
}

func (suite *ServerTestSuite) logIn() {
	suite.authMgr.session = suite.user
}

func (suite *ServerTestSuite) do(method string, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	return recorder
}
