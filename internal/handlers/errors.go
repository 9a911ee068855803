package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskup-dev/taskup/internal/ledger"
	"github.com/taskup-dev/taskup/internal/services"
)

// respondError maps the service error taxonomy to HTTP statuses. Ledger
// rejections are user-facing validation failures; anything unrecognized is a
// storage fault and stays opaque.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to perform this action"})
	case errors.Is(err, ledger.ErrInsufficientResource),
		errors.Is(err, ledger.ErrInsufficientBudget),
		errors.Is(err, ledger.ErrBudgetBelowUsed):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
