package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hero-quest-backend/internal/models"
	"hero-quest-backend/internal/services"
)

type AuthHandler struct {
	redisService *services.RedisService
	jwtService   *services.JWTService
}

func NewAuthHandler(redisService *services.RedisService, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		redisService: redisService,
		jwtService:   jwtService,
	}
}

// Login issues a token for the presented address and opens a session. The
// address is treated as an opaque caller identity; proving control of it
// is the deployment's concern (a gateway, a signature check, a bot token),
// not this service's.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	session := &models.UserSession{
		Address:      req.Address,
		SessionID:    models.GenerateSessionID(),
		CreatedAt:    time.Now(),
		LastAccessed: time.Now(),
	}

	if err := h.redisService.StoreUserSession(session, services.TTLUserSession); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	token, err := h.jwtService.GenerateToken(req.Address, session.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"address":    req.Address,
		"session_id": session.SessionID,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	address := c.GetString("address")
	sessionID := c.GetString("session_id")

	if err := h.redisService.DeleteUserSession(address, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
