package handlers

import (
	"net/http"
	"strings"
	"time"

	"abcbus/internal/http/middleware"
	"abcbus/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user account and returns a signed token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, "validation_error",
			"username, email and a password of at least 6 characters are required", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to hash password", nil)
		return
	}

	repo := repositories.UserRepo{}
	id, err := repo.Create(req.Username, req.Email, string(hash), strings.TrimSpace(req.Phone))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := h.signToken(id)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to create token", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"userId":  id,
	})
}

// Login verifies credentials and returns a signed token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepo{}
	user, hash, err := repo.GetCredentialsByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials", "code": "unauthorized"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials", "code": "unauthorized"})
		return
	}

	token, err := h.signToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to create token", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"userId":  user.ID,
	})
}

func (h *Handler) signToken(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(h.Env.JWTSecret))
}

func (h *Handler) userID(c *gin.Context) int64 {
	return middleware.GetUserID(c)
}
