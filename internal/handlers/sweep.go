package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SweepHandler triggers the deadline sweep from an external scheduler.
// It is authenticated by a shared secret, not a user session.
type SweepHandler struct {
	sweeper *workflow.SweepService
	secret  string
}

func NewSweepHandler(sweeper *workflow.SweepService, secret string) *SweepHandler {
	return &SweepHandler{sweeper: sweeper, secret: secret}
}

func (h *SweepHandler) Trigger(ctx *gin.Context) {
	if h.secret == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Cron secret is not configured"})
		return
	}

	authHeader := ctx.GetHeader("Authorization")
	expected := "Bearer " + h.secret

	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(expected)) != 1 {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.sweeper.Run(time.Now())

	if err != nil {
		zap.L().Error("deadline sweep failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
