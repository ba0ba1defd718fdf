package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/infrastructure/logger"
)

func statusFor(err error) int {
	switch {
	case apperror.IsAuth(err), apperror.IsConfig(err):
		return http.StatusBadRequest
	case apperror.IsTransport(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.GetLogger().WithField("path", ctx.FullPath()).WithField("error", err).Error("request failed")
	}
	ctx.JSON(status, gin.H{"error": apperror.Message(err)})
}
