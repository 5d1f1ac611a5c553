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

type updateRequest struct {
	Username  *string     `json:"username"`
	Email     *string     `binding:"omitempty,email" json:"email"`
	ImageURL  *string     `json:"image_url"`
	Diet      *model.Diet `json:"diet"`
	Allergies string      `json:"allergies"`

	// Password is the user's current password, required to confirm the edit.
	Password string `binding:"required" json:"password"`
}

func (s *Server) currentUser(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	c.JSON(http.StatusOK, user.Serialize())
}

func (s *Server) updateUser(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	var request updateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if _, err := s.auth.Authenticate(c.Request.Context(), user.Username, request.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})

		return
	}

	err := s.users.UpdateUser(c.Request.Context(), user, repository.UpdateParams{
		Username:  request.Username,
		Email:     request.Email,
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
			s.logger.Error("error updating user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update user"})
		}

		return
	}

	c.JSON(http.StatusOK, user.Serialize())
}

func (s *Server) deleteUser(c *gin.Context) {
	user, ok := auth.UserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})

		return
	}

	if err := s.users.DeleteUser(c.Request.Context(), user); err != nil {
		s.logger.Error("error deleting user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})

		return
	}

	c.Status(http.StatusNoContent)
}
