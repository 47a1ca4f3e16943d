package handlers

import (
	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
	"bdl-cms/middleware"
	"bdl-cms/models"
	"bdl-cms/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req, middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Register success", response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Login success", response)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	session := middleware.CurrentSession(c)

	user, err := h.authService.GetUserByID(c.Request.Context(), session.UserID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", gin.H{
		"user":    user,
		"session": session,
	})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Users loaded", users)
}

func (h *AuthHandler) SetRole(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.SetRoleRequest
	if !h.Helper.BindAndValidate(c, &req) {
		return
	}

	if err := h.authService.SetRole(c.Request.Context(), id, req.Role, middleware.CurrentSession(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Role updated", gin.H{"id": id, "role": req.Role})
}
