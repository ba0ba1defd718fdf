package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"linkedin-autoposter/domain/dto"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/logger"
	"linkedin-autoposter/usecase"
)

type IShareHandler interface {
	ContentEvent(ctx *gin.Context)
	GetShareStatus(ctx *gin.Context)
	SetDisabled(ctx *gin.Context)
	TestPost(ctx *gin.Context)
}

type ShareHandler struct {
	autopost usecase.IAutopostUsecase
}

func NewShareHandler(uc usecase.IAutopostUsecase) IShareHandler {
	return &ShareHandler{autopost: uc}
}

// ContentEvent receives every content state change from the host CMS.
func (h *ShareHandler) ContentEvent(ctx *gin.Context) {
	var ev model.PublishEvent
	if err := ctx.ShouldBindJSON(&ev); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	out, err := h.autopost.OnPublish(ctx.Request.Context(), ev)
	if err != nil {
		logger.GetLogger().WithField("item_id", ev.Item.ID).WithField("error", err.Error()).Warn("publish event failed")
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, out)
}

func (h *ShareHandler) GetShareStatus(ctx *gin.Context) {
	itemID := ctx.Param("itemId")
	status, err := h.autopost.Record(ctx.Request.Context(), itemID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

func (h *ShareHandler) SetDisabled(ctx *gin.Context) {
	itemID := ctx.Param("itemId")
	var req dto.DisableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.autopost.SetDisabled(ctx.Request.Context(), itemID, req.Disabled); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item_id": itemID, "disabled": req.Disabled})
}

func (h *ShareHandler) TestPost(ctx *gin.Context) {
	res, err := h.autopost.SendTestPost(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
