package handlers

import (
	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type NewsHandler struct {
	newsService services.NewsService
	Helper      *helper.HTTPHelper
}

func NewNewsHandler(newsService services.NewsService, h *helper.HTTPHelper) *NewsHandler {
	return &NewsHandler{newsService: newsService, Helper: h}
}

func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req models.CreateNewsRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	news, err := h.newsService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "News created", news)
}

func (h *NewsHandler) UpdateNews(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CreateNewsRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	news, err := h.newsService.Update(c.Request.Context(), id, req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "News updated", news)
}

func (h *NewsHandler) DeleteNews(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.newsService.Delete(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "News deleted", h.Helper.EmptyJsonMap())
}

// GetNews lists drafts too; it is mounted behind the publisher gate.
func (h *NewsHandler) GetNews(c *gin.Context) {
	h.list(c, false)
}

func (h *NewsHandler) GetPublicNews(c *gin.Context) {
	h.list(c, true)
}

func (h *NewsHandler) list(c *gin.Context, public bool) {
	var params models.NewsListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query", err.Error())
		return
	}
	params.Clamp()

	items, total, err := h.newsService.List(c.Request.Context(), params, public)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPaged(c, "News loaded", items, params.Limit, params.Page, total)
}

func (h *NewsHandler) GetPublicNewsBySlug(c *gin.Context) {
	news, err := h.newsService.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "News loaded", news)
}
