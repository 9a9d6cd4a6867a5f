package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hero-quest-backend/internal/models"
	"hero-quest-backend/internal/services"
)

// AdminHandler exposes the admin-gated operations. Authorization lives in
// the game service: the caller's address must be in the admin set.
type AdminHandler struct {
	gameService *services.GameService
}

func NewAdminHandler(gameService *services.GameService) *AdminHandler {
	return &AdminHandler{
		gameService: gameService,
	}
}

func (h *AdminHandler) CertifyRound(c *gin.Context) {
	caller := c.GetString("address")

	n, ok := roundParam(c)
	if !ok {
		return
	}

	var req models.CertifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.gameService.CertifyRound(c.Request.Context(), caller, req.Address, n, req.Points)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"address":       account.Address,
			"round":         n,
			"finish_time":   account.Round(n).FinishTime,
			"point":         account.Point,
			"game_finished": account.GameFinished,
		},
	})
}

func (h *AdminHandler) GrantCredit(c *gin.Context) {
	caller := c.GetString("address")

	var req models.GrantCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	account, err := h.gameService.AdminGrantCredit(c.Request.Context(), caller, req.Address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": gin.H{
			"address": account.Address,
			"credits": account.Credits,
		},
	})
}
