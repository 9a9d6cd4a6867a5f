package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hero-quest-backend/internal/models"
	"hero-quest-backend/internal/services"
)

type PlayerHandler struct {
	gameService *services.GameService
}

func NewPlayerHandler(gameService *services.GameService) *PlayerHandler {
	return &PlayerHandler{
		gameService: gameService,
	}
}

func roundParam(c *gin.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round number"})
		return 0, false
	}
	return n, true
}

func (h *PlayerHandler) Register(c *gin.Context) {
	address := c.GetString("address")

	var req models.RegisterRequest
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

	account, err := h.gameService.Register(c.Request.Context(), address, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"player": gin.H{
			"address":    account.Address,
			"name":       account.Name,
			"credits":    account.Credits,
			"created_at": account.CreatedAt,
		},
	})
}

func (h *PlayerHandler) PlayRound(c *gin.Context) {
	address := c.GetString("address")

	n, ok := roundParam(c)
	if !ok {
		return
	}

	account, err := h.gameService.PlayRound(c.Request.Context(), address, n)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": models.PlayRoundResponse{
			Round:        n,
			PlayTime:     account.Round(n).PlayTime,
			CreditsLeft:  account.Credits,
			CurrentRound: account.CurrentRound,
		},
	})
}

func (h *PlayerHandler) OpenTreasure(c *gin.Context) {
	address := c.GetString("address")

	n, ok := roundParam(c)
	if !ok {
		return
	}

	reward, account, err := h.gameService.OpenTreasure(c.Request.Context(), address, n)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": models.TreasureResponse{
			Round:  n,
			Reward: reward,
			Gold:   account.Gold,
		},
	})
}

func (h *PlayerHandler) ClaimCredit(c *gin.Context) {
	address := c.GetString("address")

	account, err := h.gameService.ClaimPeriodicCredit(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result": models.ClaimResponse{
			Credits:       account.Credits,
			LastClaimTime: account.LastClaimTime,
		},
	})
}

func (h *PlayerHandler) GetPlayerInfo(c *gin.Context) {
	address := c.GetString("address")
	if target := c.Query("address"); target != "" {
		address = target
	}

	info, err := h.gameService.GetPlayerInfo(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"player":  info,
	})
}

func (h *PlayerHandler) GetCredit(c *gin.Context) {
	address := c.GetString("address")

	credits, err := h.gameService.GetPlayerCredit(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"credits": credits,
	})
}

func (h *PlayerHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.gameService.Leaderboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to build leaderboard",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": entries,
		"count":       len(entries),
	})
}

func (h *PlayerHandler) GetLedger(c *gin.Context) {
	address := c.GetString("address")

	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	entries, err := h.gameService.GetLedger(c.Request.Context(), address, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get ledger",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ledger":  entries,
		"count":   len(entries),
	})
}
