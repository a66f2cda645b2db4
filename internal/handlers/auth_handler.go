package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trending-api/internal/auth"
	"trending-api/internal/logging"
	"trending-api/internal/models"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login handles POST /api/login against the configured admin account.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Username and password are required.",
		})
		return
	}

	if err := auth.CheckCredentials(h.Security, req.Username, req.Password); err != nil {
		logging.Ctx(c.Request.Context()).Warn().Str("username", req.Username).Msg("Failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid username or password",
		})
		return
	}

	token, err := auth.GenerateToken(req.Username, req.Username, string(models.RoleAdmin))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   req.Username,
		Username: req.Username,
		Message:  "Login successful",
	})
}
