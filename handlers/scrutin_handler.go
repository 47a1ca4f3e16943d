package handlers

import (
	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type ScrutinHandler struct {
	scrutinService services.ScrutinService
	Helper         *helper.HTTPHelper
}

func NewScrutinHandler(scrutinService services.ScrutinService, h *helper.HTTPHelper) *ScrutinHandler {
	return &ScrutinHandler{scrutinService: scrutinService, Helper: h}
}

func (h *ScrutinHandler) CreateScrutin(c *gin.Context) {
	var req models.CreateScrutinRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	scrutin, err := h.scrutinService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Scrutin opened", scrutin)
}

func (h *ScrutinHandler) GetScrutins(c *gin.Context) {
	openOnly := c.Query("open") == "1" || c.Query("open") == "true"

	items, err := h.scrutinService.List(c.Request.Context(), openOnly)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Scrutins loaded", items)
}

func (h *ScrutinHandler) GetResults(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	results, err := h.scrutinService.Results(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Results loaded", results)
}

func (h *ScrutinHandler) CastBallot(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CastBallotRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	results, err := h.scrutinService.Cast(c.Request.Context(), id, req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Ballot recorded", results)
}

func (h *ScrutinHandler) CloseScrutin(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.scrutinService.Close(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Scrutin closed", h.Helper.EmptyJsonMap())
}
