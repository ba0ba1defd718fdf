package http

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"linkedin-autoposter/domain/apperror"
	"linkedin-autoposter/infrastructure/logger"
	"linkedin-autoposter/usecase"
)

type ILinkedInOAuthHandler interface {
	GetAuthURL(ctx *gin.Context)
	Callback(ctx *gin.Context)
	Status(ctx *gin.Context)
	Disconnect(ctx *gin.Context)
}

type linkedInOAuthHandler struct {
	oauth usecase.IOAuthUsecase
}

func NewLinkedInOAuthHandler(oauth usecase.IOAuthUsecase) ILinkedInOAuthHandler {
	return &linkedInOAuthHandler{oauth: oauth}
}

// GetAuthURL returns the LinkedIn consent URL (user must approve in browser)
func (h *linkedInOAuthHandler) GetAuthURL(ctx *gin.Context) {
	res, err := h.oauth.AuthorizationURL(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (h *linkedInOAuthHandler) Callback(ctx *gin.Context) {
	popup := ctx.Query("frontend") == "1"
	if providerErr := ctx.Query("error"); providerErr != "" {
		msg := ctx.Query("error_description")
		if msg == "" {
			msg = providerErr
		}
		logger.GetLogger().WithField("error", providerErr).Warn("LinkedIn authorization denied")
		h.respond(ctx, popup, http.StatusBadRequest, (&apperror.AuthError{Message: msg}).Error())
		return
	}

	status, err := h.oauth.Connect(ctx.Request.Context(), ctx.Query("code"), ctx.Query("state"))
	if err != nil {
		if popup {
			h.respond(ctx, popup, statusFor(err), apperror.Message(err))
			return
		}
		writeError(ctx, err)
		return
	}
	if popup {
		h.respond(ctx, popup, http.StatusOK, "Connected to LinkedIn. You can close this window.")
		return
	}
	ctx.JSON(http.StatusOK, status)
}

var popupPage = template.Must(template.New("popup").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>LinkedIn Autoposter</title></head>
<body><p>{{.Message}}</p>
<script>
if (window.opener) { window.opener.postMessage({source: "linkedin-autoposter", success: {{.Success}}}, "*"); window.close(); }
</script></body></html>`))

func (h *linkedInOAuthHandler) respond(ctx *gin.Context, popup bool, status int, msg string) {
	if !popup {
		ctx.JSON(status, gin.H{"error": msg})
		return
	}
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(status)
	if err := popupPage.Execute(ctx.Writer, gin.H{"Message": msg, "Success": status == http.StatusOK}); err != nil {
		_, _ = fmt.Fprint(ctx.Writer, template.HTMLEscapeString(msg))
	}
}

func (h *linkedInOAuthHandler) Status(ctx *gin.Context) {
	status, err := h.oauth.Status(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

func (h *linkedInOAuthHandler) Disconnect(ctx *gin.Context) {
	if err := h.oauth.Disconnect(ctx.Request.Context()); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"connected": false})
}
