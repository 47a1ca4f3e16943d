package handlers

import (
	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type DocumentHandler struct {
	documentService services.DocumentService
	Helper          *helper.HTTPHelper
}

func NewDocumentHandler(documentService services.DocumentService, h *helper.HTTPHelper) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, Helper: h}
}

func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req models.CreateDocumentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Document created", doc)
}

func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CreateDocumentRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), id, req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document updated", doc)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document deleted", h.Helper.EmptyJsonMap())
}

func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Documents loaded", docs)
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document loaded", doc)
}

func (h *DocumentHandler) GetCategories(c *gin.Context) {
	categories, err := h.documentService.Categories(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Categories loaded", categories)
}
