package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"cryptomaster/market"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func (h *Handler) WelcomePage(c *gin.Context) {
	l := h.localizer(c)
	p := h.newPage(l, "/welcome", market.WelcomeChart())
	p.Toast = toastFor(l, c.Query("toast"), false)
	c.HTML(http.StatusOK, "welcome", p)
}

func (h *Handler) MarketsPage(c *gin.Context) {
	query := c.Query("q")
	data := struct {
		Query string
		Coins []market.Coin
	}{
		Query: query,
		Coins: market.Search(query),
	}
	c.HTML(http.StatusOK, "markets", h.newPage(h.localizer(c), "/markets", data))
}

func (h *Handler) NotFoundPage(c *gin.Context) {
	log.Warn().Str("path", c.Request.URL.Path).Msg("404: route not found")
	c.HTML(http.StatusNotFound, "notfound", h.newPage(h.localizer(c), c.Request.URL.Path, nil))
}

// ToggleLanguagePage flips the stored language and returns to the page the form was posted from.
func (h *Handler) ToggleLanguagePage(c *gin.Context) {
	if _, err := h.locale.Toggle(); err != nil {
		log.Error().Err(err).Msg("toggle language failed")
	}
	c.Redirect(http.StatusSeeOther, safeNext(c.PostForm("next")))
}

// safeNext only allows local absolute paths as redirect targets.
func safeNext(next string) string {
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/dashboard"
	}
	return u.Path
}
