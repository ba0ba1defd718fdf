package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/usecase"
)

const secretMask = "********"

type ISettingsHandler interface {
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type SettingsHandler struct {
	settings usecase.ISettingsUsecase
}

func NewSettingsHandler(uc usecase.ISettingsUsecase) ISettingsHandler {
	return &SettingsHandler{settings: uc}
}

func (h *SettingsHandler) Get(ctx *gin.Context) {
	s, err := h.settings.Get(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, masked(s))
}

func (h *SettingsHandler) Update(ctx *gin.Context) {
	var req dto.SettingsUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// the masked placeholder round-trips from Get unchanged
	if req.ClientSecret != nil && strings.Trim(*req.ClientSecret, "*") == "" {
		req.ClientSecret = nil
	}
	s, err := h.settings.Update(ctx.Request.Context(), req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, masked(s))
}

func masked(s model.Settings) model.Settings {
	if s.Credentials.ClientSecret != "" {
		s.Credentials.ClientSecret = secretMask
	}
	return s
}
