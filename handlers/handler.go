package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"bdl-cms/helper"
)

// parseID reads a numeric path parameter, answering 400 when it is invalid.
func parseID(c *gin.Context, h *helper.HTTPHelper, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		h.SendBadRequest(c, "Invalid "+name, h.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
