package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AnalysisPage refreshes the analysis when the cached one is stale and renders it.
func (h *Handler) AnalysisPage(c *gin.Context) {
	ctx := c.Request.Context()
	coins := coinsParam(c)

	if _, err := h.query.Refetch(ctx, coins); err != nil {
		log.Warn().Err(err).Msg("analysis refresh failed, rendering cached state")
	}

	l := h.localizer(c)
	p := h.newPage(l, "/analysis", h.query.Snapshot(ctx, coins))
	p.Toast = toastFor(l, c.Query("toast"), false)
	c.HTML(http.StatusOK, "analysis", p)
}

// RunAnalysisPage is the form target of the "run analysis" button.
func (h *Handler) RunAnalysisPage(c *gin.Context) {
	if _, err := h.query.Run(c.Request.Context(), coinsParam(c)); err != nil {
		c.Redirect(http.StatusSeeOther, "/analysis")
		return
	}
	c.Redirect(http.StatusSeeOther, "/analysis?toast=analysisStarted")
}
