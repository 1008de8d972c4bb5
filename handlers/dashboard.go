package handlers

import (
	"net/http"

	"cryptomaster/market"

	"github.com/gin-gonic/gin"
)

func (h *Handler) DashboardPage(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard", h.newPage(h.localizer(c), "/dashboard", market.SamplePortfolio()))
}

func (h *Handler) GetDashboard(c *gin.Context) {
	p := market.SamplePortfolio()
	c.JSON(http.StatusOK, gin.H{
		"current_value": p.CurrentValue(),
		"growth":        p.Growth(),
		"portfolio":     p,
	})
}
