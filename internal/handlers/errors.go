package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hero-quest-backend/internal/models"
)

// respondError maps an operation failure to an HTTP status. Every game
// error has a specific kind; anything unrecognized is a server fault.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrAccountNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAccountExists),
		errors.Is(err, models.ErrRoundAlreadyPlayed),
		errors.Is(err, models.ErrPreviousRoundNotCertified),
		errors.Is(err, models.ErrRoundNotPlayed),
		errors.Is(err, models.ErrInsufficientCredits),
		errors.Is(err, models.ErrTreasureAlreadyOpened),
		errors.Is(err, models.ErrTooEarlyToClaim):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidRound):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
