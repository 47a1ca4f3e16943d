package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type EventHandler struct {
	eventService services.EventService
	Helper       *helper.HTTPHelper
}

func NewEventHandler(eventService services.EventService, h *helper.HTTPHelper) *EventHandler {
	return &EventHandler{eventService: eventService, Helper: h}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Event created", event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Event updated", event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Event deleted", h.Helper.EmptyJsonMap())
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Event loaded", event)
}

func (h *EventHandler) GetUpcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	events, err := h.eventService.Upcoming(c.Request.Context(), limit)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Events loaded", events)
}

func (h *EventHandler) GetCalendar(c *gin.Context) {
	var params models.CalendarParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Invalid query", err.Error())
		return
	}

	grid, err := h.eventService.Month(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Calendar loaded", grid)
}

func (h *EventHandler) GetICS(c *gin.Context) {
	ics, err := h.eventService.ICS(c.Request.Context())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="agenda-bdl.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
