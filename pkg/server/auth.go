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

type registerRequest struct {
	Username  string     `binding:"required"              json:"username"`
	Email     string     `binding:"required,email"        json:"email"`
	Password  string     `binding:"required,min=6"        json:"password"`
	ImageURL  string     `json:"image_url"`
	Diet      model.Diet `json:"diet"`
	Allergies string     `json:"allergies"`
}

type loginRequest struct {
	Username string `binding:"required" json:"username"`
	Password string `binding:"required" json:"password"`
}

type sessionResponse struct {
	Token string               `json:"token"`
	User  model.SerializedUser `json:"user"`
}

func (s *Server) register(c *gin.Context) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	user, err := s.users.RegisterUser(c.Request.Context(), repository.RegisterParams{
		Username:  request.Username,
		Email:     request.Email,
		Password:  request.Password,
		ImageURL:  request.ImageURL,
		Diet:      request.Diet,
		Allergies: request.Allergies,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "username/email already taken"})
		case errors.Is(err, repository.ErrInvalidDiet):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			s.logger.Error("error registering user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register user"})
		}

		return
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		s.logger.Error("error issuing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})

		return
	}

	c.JSON(http.StatusCreated, sessionResponse{Token: token, User: user.Serialize()})
}

func (s *Server) login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	user, err := s.auth.Authenticate(c.Request.Context(), request.Username, request.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})

			return
		}

		s.logger.Error("error authenticating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})

		return
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		s.logger.Error("error issuing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})

		return
	}

	c.JSON(http.StatusOK, sessionResponse{Token: token, User: user.Serialize()})
}
