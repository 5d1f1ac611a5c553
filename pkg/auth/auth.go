package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"plateful.dev/Plateful/configs"
	"plateful.dev/Plateful/pkg/model"
	"plateful.dev/Plateful/pkg/repository"
)

// UserKey marks the authenticated user in the request context.
type UserKey struct{}

// ErrInvalidCredentials covers both an unknown username and a wrong password,
// so a caller cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

type userStore interface {
	GetUserByName(ctx context.Context, username string) (*model.User, error)
}

type Manager struct {
	conf   *configs.Config
	store  userStore
	logger *zap.Logger
}

func NewAuthManager(conf *configs.Config, store userStore, logger *zap.Logger) *Manager {
	return &Manager{conf: conf, store: store, logger: logger}
}

// Authenticate looks the user up by exact username and verifies the password
// against the stored bcrypt hash.
func (a *Manager) Authenticate(ctx context.Context, username string, password string) (*model.User, error) {
	user, err := a.store.GetUserByName(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			a.logger.Error("error looking up user", zap.String("username", username), zap.Error(err))
		}

		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken mints an HMAC-signed bearer token for the user.
func (a *Manager) IssueToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.UUID.String(),
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(time.Duration(a.conf.Auth.TokenExpiry) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(a.conf.Auth.SecretKey))
}

// Middleware parses the Authorization header, verifies the token and loads the
// user into the request context. Requests without a valid token get a 401.
func (a *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, err := a.extractTokenFromHeader(c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

			return
		}

		keyFunc := func(token *jwt.Token) (interface{}, error) {
			_, ok := token.Method.(*jwt.SigningMethodHMAC)
			if !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return []byte(a.conf.Auth.SecretKey), nil
		}

		token, err := jwt.ParseWithClaims(*accessToken, jwt.MapClaims{}, keyFunc)
		if err != nil {
			a.logger.Error("error parsing token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		claims, found := token.Claims.(jwt.MapClaims)
		if !found || !token.Valid {
			a.logger.Error("invalid token", zap.Any("claims", claims))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		username, found := claims["username"].(string)
		if !found {
			a.logger.Error("unable to get username from token", zap.Any("claims", claims))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})

			return
		}

		user, err := a.store.GetUserByName(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})

				return
			}

			a.logger.Error("error authenticating user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "error authenticating user"})

			return
		}

		ctx := context.WithValue(c.Request.Context(), UserKey{}, user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserFromContext returns the user the middleware stashed for this request.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey{}).(*model.User)

	return user, ok
}

func (a *Manager) extractTokenFromHeader(header http.Header) (*string, error) {
	authorization := header.Get("Authorization")
	if len(authorization) == 0 {
		a.logger.Error("No authorization header found")

		return nil, errors.New("authorization header not found")
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found {
		return nil, errors.New("authorization format must be Bearer {token}")
	}

	return &token, nil
}
