package handlers

import (
	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type SurveyHandler struct {
	surveyService services.SurveyService
	Helper        *helper.HTTPHelper
}

func NewSurveyHandler(surveyService services.SurveyService, h *helper.HTTPHelper) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService, Helper: h}
}

func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req models.CreateSurveyRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Survey created", survey)
}

func (h *SurveyHandler) GetSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List(c.Request.Context(), true)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Surveys loaded", surveys)
}

func (h *SurveyHandler) GetAllSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List(c.Request.Context(), false)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Surveys loaded", surveys)
}

func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Survey loaded", survey)
}

func (h *SurveyHandler) SetActive(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.SetSurveyActiveRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	if err := h.surveyService.SetActive(c.Request.Context(), id, *req.Active, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Survey updated", gin.H{"id": id, "active": *req.Active})
}

func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.surveyService.Delete(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Survey deleted", h.Helper.EmptyJsonMap())
}

func (h *SurveyHandler) Respond(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.SurveyResponseRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	if err := h.surveyService.Respond(c.Request.Context(), id, req, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Response recorded", h.Helper.EmptyJsonMap())
}

func (h *SurveyHandler) GetResults(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	results, err := h.surveyService.Results(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Results loaded", results)
}
