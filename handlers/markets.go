package handlers

import (
	"net/http"

	"cryptomaster/market"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, market.Search(c.Query("q")))
}
