package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetUpdate(c *gin.Context) {
	c.JSON(http.StatusOK, h.latestUpdate())
}
