package handlers

import (
	"net/http"

	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a workflow error to an HTTP status. Anything outside
// the domain taxonomy is treated as an internal error: logged with the
// fallback message and hidden from the caller.
func respondError(ctx *gin.Context, err error, fallback string) {
	switch {
	case workflow.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case workflow.IsForbidden(err):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case workflow.IsConflict(err):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case workflow.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.L().Error(fallback, zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
