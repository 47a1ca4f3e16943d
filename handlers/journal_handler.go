package handlers

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"bdl-cms/consolidated"
	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type JournalHandler struct {
	journalService services.JournalService
	Helper         *helper.HTTPHelper
}

func NewJournalHandler(journalService services.JournalService, h *helper.HTTPHelper) *JournalHandler {
	return &JournalHandler{journalService: journalService, Helper: h}
}

func (h *JournalHandler) CreateEntry(c *gin.Context) {
	var req models.CreateJournalRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.journalService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Journal entry published", entry)
}

func (h *JournalHandler) GetEntries(c *gin.Context) {
	var params models.JournalListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query", err.Error())
		return
	}
	params.Clamp()

	entries, total, err := h.journalService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPaged(c, "Journal entries loaded", entries, params.Limit, params.Page, total)
}

func (h *JournalHandler) GetEntry(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	entry, err := h.journalService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Journal entry loaded", entry)
}

func (h *JournalHandler) GetEntryByNor(c *gin.Context) {
	entry, err := h.journalService.GetByNor(c.Request.Context(), c.Param("nor"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Journal entry loaded", entry)
}

func (h *JournalHandler) AmendEntry(c *gin.Context) {
	h.updateEntry(c, h.journalService.Amend, "Journal entry amended")
}

func (h *JournalHandler) OverwriteEntry(c *gin.Context) {
	h.updateEntry(c, h.journalService.Overwrite, "Journal entry overwritten")
}

func (h *JournalHandler) updateEntry(c *gin.Context, update func(context.Context, uint, models.AmendJournalRequest, models.Session) (*models.JournalEntry, error), message string) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.AmendJournalRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	entry, err := update(c.Request.Context(), id, req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, message, entry)
}

func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.journalService.Delete(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Journal entry deleted", h.Helper.EmptyJsonMap())
}

func consolidatedOptions(c *gin.Context) (consolidated.Options, error) {
	var params models.ConsolidatedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return consolidated.Options{}, err
	}
	return consolidated.Options{
		Collapsed:   consolidated.ParseCollapseState(params.Collapsed),
		ShowHistory: params.History,
		Tracked:     params.Tracked,
	}, nil
}

// GetConsolidated returns the view tree of an entry; collapse, history and
// tracking come from the query string.
func (h *JournalHandler) GetConsolidated(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	opts, err := consolidatedOptions(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid query", err.Error())
		return
	}

	view, err := h.journalService.Consolidated(c.Request.Context(), id, opts)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Consolidated view loaded", view)
}

var errorPage = template.Must(template.New("error").Parse(
	`<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8"><title>{{.}}</title></head><body><p>{{.}}</p></body></html>`))

// ConsolidatedPage serves the HTML reading view of the entry with the given NOR.
func (h *JournalHandler) ConsolidatedPage(c *gin.Context) {
	opts, err := consolidatedOptions(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, "Requête invalide")
		return
	}

	page, err := h.journalService.ConsolidatedHTML(c.Request.Context(), c.Param("nor"), opts)
	if err != nil {
		status := h.Helper.GetStatusCode(err)
		if status == http.StatusNotFound {
			h.errorPage(c, status, "Texte introuvable")
			return
		}
		c.Error(err)
		h.errorPage(c, status, "Erreur interne")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (h *JournalHandler) errorPage(c *gin.Context, status int, message string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := errorPage.Execute(c.Writer, message); err != nil {
		c.Error(err)
	}
}
